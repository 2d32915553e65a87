package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Minute})
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Error("Get() on empty cache returned ok")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get() = %v, %v, want 1, true", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get() after Delete() returned ok")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 2", hits, misses)
	}
	if rate < 33 || rate > 34 {
		t.Errorf("hit rate = %v, want ~33.3", rate)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](Config{TTL: time.Minute})
	defer c.Close()

	c.SetWithTTL("short", "x", time.Nanosecond)
	c.SetWithTTL("forever", "y", -1)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry returned")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without expiry missing")
	}

	c.SetWithTTL("short", "x", time.Nanosecond)
	time.Sleep(time.Millisecond)
	c.cleanup()
	if c.Size() != 1 {
		t.Errorf("Size() after cleanup = %d, want 1", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)

	// overwriting an existing key does not evict
	c.Set("b", 3)
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}

	c.Set("c", 4)
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry was not evicted")
	}
	if v, _ := c.Get("b"); v != 3 {
		t.Errorf("Get(b) = %d, want 3", v)
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("new entry missing")
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[string](Config{})
	defer c.Close()

	calls := 0
	fn := func() (string, error) {
		calls++
		return "v", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		if err != nil || v != "v" {
			t.Fatalf("GetOrSet() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("other", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("other"); ok {
		t.Error("failed GetOrSet() stored a value")
	}
}

func TestCache_ClearAndClose(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Set("a", 1)
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear() = %d", c.Size())
	}
	c.Close()
	c.Close()
}
