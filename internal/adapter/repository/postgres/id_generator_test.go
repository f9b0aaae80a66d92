package postgres

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorIsMonotonic(t *testing.T) {
	g := NewULIDGenerator()

	prev := g.Generate()
	if _, err := ulid.ParseStrict(prev); err != nil {
		t.Fatalf("expected valid ULID, got %q: %v", prev, err)
	}

	for i := 0; i < 1000; i++ {
		next := g.Generate()
		if next <= prev {
			t.Fatalf("expected %s > %s", next, prev)
		}
		prev = next
	}
}
