package galaxy

import (
	"testing"

	"starmap-server/internal/rng"
)

func TestNameGenerator_Deterministic(t *testing.T) {
	a := newNameGenerator()
	b := newNameGenerator()
	ra := rng.New(9)
	rb := rng.New(9)

	for i := 0; i < 50; i++ {
		if na, nb := a.next(ra), b.next(rb); na != nb {
			t.Fatalf("name %d: %q vs %q with the same seed", i, na, nb)
		}
	}
}

func TestNameGenerator_UniqueUnderCollisions(t *testing.T) {
	g := newNameGenerator()
	r := rng.New(9)

	// Far more names than root/designation combinations, forcing collisions.
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		name := g.next(r)
		if name == "" {
			t.Fatal("generator produced an empty name")
		}
		if seen[name] {
			t.Fatalf("duplicate name %q after %d draws", name, i+1)
		}
		seen[name] = true
	}
}

func TestNameGenerator_CollisionConsumesNoExtraDraws(t *testing.T) {
	g := newNameGenerator()
	r := rng.New(9)

	for i := 0; i < 200; i++ {
		g.next(r)
	}
	if want := int64(400); r.Draws() != want {
		t.Errorf("Draws() after 200 names = %d, want %d (two per name)", r.Draws(), want)
	}
}
