package service

import (
	"reflect"
	"testing"
)

func TestHistory_RecordDedupsAndCaps(t *testing.T) {
	h := newHistory(t)

	for _, q := range []string{"cats", "dogs", "birds", "CATS", "shoes", "nature", "forest"} {
		if err := h.Record(q); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}

	want := []string{"forest", "nature", "shoes", "CATS", "birds"}
	if got := h.Recent(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("Recent = %v, want %v", got, want)
	}
	if got := h.Recent(2); !reflect.DeepEqual(got, want[:2]) {
		t.Fatalf("Recent(2) = %v, want %v", got, want[:2])
	}
}

func TestHistory_RecordIgnoresBlank(t *testing.T) {
	h := newHistory(t)
	if err := h.Record("  "); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := h.Recent(0); len(got) != 0 {
		t.Fatalf("Recent = %v, want empty", got)
	}
}

func TestHistory_Suggest(t *testing.T) {
	h := newHistory(t)
	for _, q := range []string{"cat toys", "cats", "dogs", "scatter"} {
		if err := h.Record(q); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	// History is now: scatter, dogs, cats, cat toys

	got := h.Suggest("cat", 0)
	if len(got) != 3 {
		t.Fatalf("Suggest(cat) = %v, want 3 matches", got)
	}
	if got[0] != "cats" {
		t.Fatalf("best match = %q, want cats", got[0])
	}
	for _, s := range got {
		if s == "dogs" {
			t.Fatalf("Suggest(cat) included dogs: %v", got)
		}
	}

	if got := h.Suggest("CAT", 1); len(got) != 1 || got[0] != "cats" {
		t.Fatalf("Suggest(CAT, 1) = %v, want [cats]", got)
	}

	if got := h.Suggest("", 2); !reflect.DeepEqual(got, []string{"scatter", "dogs"}) {
		t.Fatalf("Suggest(\"\") = %v, want recent entries", got)
	}

	if got := h.Suggest("zebra", 0); len(got) != 0 {
		t.Fatalf("Suggest(zebra) = %v, want none", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := newHistory(t)
	_ = h.Record("cats")
	if err := h.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := h.Recent(0); len(got) != 0 {
		t.Fatalf("Recent after Clear = %v", got)
	}
}
