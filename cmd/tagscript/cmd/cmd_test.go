package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/msto63/tagscript/foundation/tag"
	"github.com/msto63/tagscript/pkg/core/version"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) result {
	t.Helper()

	cfg := writeFile(t, t.TempDir(), "tagscript.toml", "[general]\nlog_level = \"error\"\nlocale = \"en\"\n")

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append([]string{"--config", cfg}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)

	code := 0
	if err := root.Execute(); err != nil {
		code = exitCode(err)
	}
	return result{stdout: out.String(), stderr: errOut.String(), code: code}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.tag", "[a x=\"1\"]\n[b]\n")
	one := writeFile(t, dir, "one.tag", "[a]")
	bad := writeFile(t, dir, "bad.tag", "[a]\n[b c!]\n")
	missing := filepath.Join(dir, "missing.tag")

	tests := []struct {
		name string
		args []string
		want []string
		code int
	}{
		{"valid", []string{good}, []string{good + ": OK (2 tags)"}, 0},
		{"singular", []string{one}, []string{one + ": OK (1 tag)"}, 0},
		{"syntax error", []string{good, bad}, []string{good + ": OK (2 tags)", bad + ":2: Invalid character.", "1 file failed"}, 1},
		{"missing file", []string{missing}, []string{missing + ": Tag file " + missing + " not found."}, 3},
		{"german", []string{"--locale", "de", bad}, []string{bad + ":2: Ungültiges Zeichen.", "1 Datei fehlerhaft"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, append([]string{"check"}, tt.args...)...)
			if res.code != tt.code {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", res.code, tt.code, res.stdout, res.stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(res.stdout, w) {
					t.Errorf("stdout missing %q:\n%s", w, res.stdout)
				}
			}
		})
	}
}

func TestCheckRequiresFile(t *testing.T) {
	res := run(t, "check")
	if res.code == 0 {
		t.Error("check without files succeeded")
	}
}

func TestDump(t *testing.T) {
	file := writeFile(t, t.TempDir(), "doc.tag", "[page title=\"Intro\"]\n[text value=\"say \\\"hi\\\"\" v=\"2\"]\n")

	want := tag.DocumentView{
		File: file,
		Tags: []tag.View{
			{Name: "page", Line: 1, Properties: []tag.Property{{Name: "title", Value: "Intro"}}},
			{Name: "text", Line: 2, Properties: []tag.Property{{Name: "value", Value: `say "hi"`}, {Name: "v", Value: "2"}}},
		},
	}

	t.Run("text", func(t *testing.T) {
		res := run(t, "dump", file)
		if res.code != 0 {
			t.Fatalf("exit code = %d: %s", res.code, res.stderr)
		}
		wantText := "   1: [page title=\"Intro\"]\n   2: [text value=\"say \\\"hi\\\"\" v=\"2\"]\n"
		if res.stdout != wantText {
			t.Errorf("stdout = %q, want %q", res.stdout, wantText)
		}
	})

	t.Run("json", func(t *testing.T) {
		res := run(t, "dump", "--format", "json", file)
		if res.code != 0 {
			t.Fatalf("exit code = %d: %s", res.code, res.stderr)
		}
		var got tag.DocumentView
		if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("JSON mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		res := run(t, "dump", "-f", "yaml", file)
		if res.code != 0 {
			t.Fatalf("exit code = %d: %s", res.code, res.stderr)
		}
		var got tag.DocumentView
		if err := yaml.Unmarshal([]byte(res.stdout), &got); err != nil {
			t.Fatalf("invalid YAML: %v\n%s", err, res.stdout)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("YAML mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		res := run(t, "dump", "--format", "xml", file)
		if res.code != 2 {
			t.Errorf("exit code = %d, want 2", res.code)
		}
	})
}

func TestDumpFailure(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bad.tag", "[a")
	res := run(t, "dump", file)
	if res.code != 1 {
		t.Errorf("exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stderr, file+":1: Unexpected EOF") {
		t.Errorf("stderr missing diagnostic:\n%s", res.stderr)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want empty", res.stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "bad.toml", "[general]\nlog_format = \"xml\"\n")

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs([]string{"--config", cfg, "check", "x.tag"})
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()
	if err == nil {
		t.Fatal("Execute() with invalid config succeeded")
	}
	if exitCode(err) != 2 {
		t.Errorf("exit code = %d, want 2", exitCode(err))
	}
}

func TestVersion(t *testing.T) {
	res := run(t, "version")
	if res.code != 0 {
		t.Fatalf("exit code = %d", res.code)
	}
	if !strings.HasPrefix(res.stdout, "tagscript v"+version.Toolkit+"\n") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{"a\nb", `"a\nb"`},
		{`a\b`, `"a\\b"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output missing %q:\n%s", want, buf.String())
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "tagscript.toml", "[general]\nlog_level = \"error\"\nlocale = \"en\"\n\n[watch]\ndebounce = \"20ms\"\n")
	file := writeFile(t, dir, "doc.tag", "[a]")

	var out, errOut syncBuffer
	root := NewRootCommand()
	root.SetArgs([]string{"--config", cfg, "watch", file})
	root.SetOut(&out)
	root.SetErr(&errOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitFor(t, &out, file+": OK (1 tag)")
	waitFor(t, &out, "Watching 1 file(s).")

	if err := os.WriteFile(file, []byte("[a]\n[b c!]"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &out, file+" changed, checking again.")
	waitFor(t, &out, file+":2: Invalid character.")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
