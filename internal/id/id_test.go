package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("star")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(got, "star-") {
		t.Errorf("expected prefix %q, got %q", "star-", got)
	}

	// NanoID default length is 21 characters plus "star-".
	if len(got) != len("star-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate("tag")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate("user")
	if !strings.HasPrefix(got, "user-") {
		t.Errorf("expected prefix %q, got %q", "user-", got)
	}
}
