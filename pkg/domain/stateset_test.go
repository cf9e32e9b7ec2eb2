package domain_test

import (
	"testing"

	"github.com/aretw0/multistate/pkg/domain"
)

func TestStateSet_Operations(t *testing.T) {
	a := domain.NewState("a", "A")
	b := domain.NewState("b", "B")
	c := domain.NewState("c", "C")

	ab := domain.NewStateSet(a, b)
	bc := domain.NewStateSet(b, c)

	t.Run("Union", func(t *testing.T) {
		u := ab.Union(bc)
		if len(u) != 3 {
			t.Fatalf("expected 3 states, got %d", len(u))
		}
		if len(ab) != 2 || len(bc) != 2 {
			t.Error("Union mutated an input set")
		}
	})

	t.Run("Subtract", func(t *testing.T) {
		d := ab.Subtract(bc)
		if len(d) != 1 || !d.Contains("a") {
			t.Fatalf("expected {a}, got %v", d.IDs())
		}
	})

	t.Run("Intersect", func(t *testing.T) {
		i := ab.Intersect(bc)
		if len(i) != 1 || !i.Contains("b") {
			t.Fatalf("expected {b}, got %v", i.IDs())
		}
	})

	t.Run("SubsetAndEqual", func(t *testing.T) {
		if !domain.NewStateSet(a).SubsetOf(ab) {
			t.Error("{a} should be subset of {a,b}")
		}
		if ab.SubsetOf(bc) {
			t.Error("{a,b} is not a subset of {b,c}")
		}
		if !ab.Equal(domain.NewStateSet(b, a)) {
			t.Error("sets with the same IDs must be equal")
		}
	})

	t.Run("Clone", func(t *testing.T) {
		cl := ab.Clone()
		cl.Remove("a")
		if !ab.Contains("a") {
			t.Error("Clone shares storage with the original")
		}
	})
}

func TestStateSet_KeyIsCanonical(t *testing.T) {
	a := domain.NewState("a", "A")
	b := domain.NewState("b", "B")

	k1 := domain.NewStateSet(a, b).Key()
	k2 := domain.NewStateSet(b, a).Key()
	if k1 != k2 {
		t.Fatalf("key depends on insertion order: %q vs %q", k1, k2)
	}
	if k1 == domain.NewStateSet(a).Key() {
		t.Fatal("different sets share a key")
	}
}

func TestState_IdentityByID(t *testing.T) {
	// Two values with the same ID denote the same state; payload is
	// irrelevant to set membership.
	s1 := domain.NewState("x", "First")
	s2 := domain.NewState("x", "Second")
	s2.Blocking = true

	ss := domain.NewStateSet(s1)
	ss.Add(s2)
	if len(ss) != 1 {
		t.Fatalf("states with equal IDs must collapse, got %d entries", len(ss))
	}
}
