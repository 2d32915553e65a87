// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     cmd
// Description: CLI command that prints the parsed tags of a document
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	"github.com/msto63/tagscript/foundation/tag"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string

	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Prints the parsed tags of a document",
		Long: `Parses FILE and prints its tags in document order.

Formats:
  text   one tag per line with its source line (default)
  json   the document as JSON
  yaml   the document as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.newStore()
			if err := st.LoadFile(cmd.Context(), args[0]); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), st.Diagnostic(args[0], err))
				return mdwerror.Wrap(errReported, "dump failed").WithCode(mdwerror.GetCode(err))
			}
			return writeDocument(cmd.OutOrStdout(), st.Document(), format)
		},
	}

	dumpCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return dumpCmd
}

// writeDocument renders doc in the given format
func writeDocument(w io.Writer, doc tag.Document, format string) error {
	switch strings.ToLower(format) {
	case "text":
		return writeText(w, doc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return mdwerror.New(fmt.Sprintf("unknown format %q", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("format", format)
	}
}

// writeText prints "line: [name prop="value" ...]" per tag
func writeText(w io.Writer, doc tag.Document) error {
	for _, t := range doc.Tags() {
		var b strings.Builder
		fmt.Fprintf(&b, "%4d: [%s", t.Line(), t.Name())
		for _, p := range t.Properties() {
			fmt.Fprintf(&b, " %s=%s", p.Name, quote(p.Value))
		}
		b.WriteString("]\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// quote writes a value with the escapes the tag syntax understands
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
