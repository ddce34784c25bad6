package id

import "testing"

func TestRandomGenerator(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator(8)
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(first) != 16 {
		t.Fatalf("expected 16 hex chars, got %d", len(first))
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}

	if id, _ := NewRandomGenerator(0).NewID(); len(id) != 2*defaultSize {
		t.Fatalf("expected default size id, got %q", id)
	}
}
