package logger

import "testing"

func TestCollectorKeepsRecent(t *testing.T) {
	c := NewCollector(3)
	c.Add("warn", "one", nil)
	c.Add("error", "two", nil)

	got := c.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Message != "one" || got[1].Message != "two" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestCollectorWraps(t *testing.T) {
	c := NewCollector(3)
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		c.Add("warn", m, nil)
	}

	got := c.Recent()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Message != "c" || got[2].Message != "e" {
		t.Fatalf("expected oldest-first window c..e, got %v", got)
	}
}
