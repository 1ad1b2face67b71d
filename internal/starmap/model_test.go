package starmap

import (
	"math"
	"testing"

	"starmap-server/internal/shared/errors"
)

func newTestModel(t *testing.T, stars ...*Star) *Model {
	t.Helper()
	m := New(1000, 1000)
	for _, s := range stars {
		if err := m.AddStar(s); err != nil {
			t.Fatalf("AddStar(%d): %v", s.ID, err)
		}
	}
	return m
}

func TestAddStar_DuplicateID(t *testing.T) {
	m := newTestModel(t, &Star{ID: 1})
	err := m.AddStar(&Star{ID: 1})
	if err == nil {
		t.Fatal("AddStar with duplicate id returned nil error")
	}
	if errors.GetType(err) != errors.ErrorTypeConflict {
		t.Errorf("error type = %v, want conflict", errors.GetType(err))
	}
}

func TestLink_CreatesWormholeAndAdjacency(t *testing.T) {
	m := newTestModel(t,
		&Star{ID: 0, X: 0, Y: 0},
		&Star{ID: 1, X: 3, Y: 4},
	)

	wh, err := m.Link(0, 1)
	if err != nil {
		t.Fatalf("Link(0, 1): %v", err)
	}
	if math.Abs(wh.Distance-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", wh.Distance)
	}

	a, _ := m.StarByID(0)
	b, _ := m.StarByID(1)
	if len(a.Links) != 1 || a.Links[0] != 1 {
		t.Errorf("star 0 links = %v, want [1]", a.Links)
	}
	if len(b.Links) != 1 || b.Links[0] != 0 {
		t.Errorf("star 1 links = %v, want [0]", b.Links)
	}
	if len(m.Wormholes()) != 1 {
		t.Errorf("wormhole count = %d, want 1", len(m.Wormholes()))
	}
}

func TestLink_SelfRejected(t *testing.T) {
	m := newTestModel(t, &Star{ID: 0})
	if _, err := m.Link(0, 0); !errors.IsValidation(err) {
		t.Errorf("Link(0, 0) error = %v, want validation error", err)
	}
}

func TestLink_MissingStar(t *testing.T) {
	m := newTestModel(t, &Star{ID: 0})
	if _, err := m.Link(0, 99); !errors.IsNotFound(err) {
		t.Errorf("Link(0, 99) error = %v, want not found error", err)
	}
}

func TestLink_DuplicateEdgeIgnored(t *testing.T) {
	m := newTestModel(t,
		&Star{ID: 0, X: 0, Y: 0},
		&Star{ID: 1, X: 10, Y: 0},
	)

	if _, err := m.Link(0, 1); err != nil {
		t.Fatalf("Link(0, 1): %v", err)
	}
	if _, err := m.Link(1, 0); err != nil {
		t.Fatalf("Link(1, 0): %v", err)
	}

	if n := len(m.Wormholes()); n != 1 {
		t.Errorf("wormhole count after duplicate link = %d, want 1", n)
	}
	a, _ := m.StarByID(0)
	if len(a.Links) != 1 {
		t.Errorf("star 0 links = %v, want single entry", a.Links)
	}
}

func TestSetStars_RebuildsIndex(t *testing.T) {
	m := newTestModel(t, &Star{ID: 5})

	m.SetStars([]Star{
		{ID: 2, Name: "Vega", X: 100, Y: 100, Links: []int{9}},
		{ID: 0, Name: "Altair", X: 50, Y: 50},
	})

	if m.StarCount() != 2 {
		t.Fatalf("StarCount() = %d, want 2", m.StarCount())
	}
	if _, ok := m.StarByID(5); ok {
		t.Error("star 5 survived SetStars")
	}

	stars := m.Stars()
	if stars[0].ID != 0 || stars[1].ID != 2 {
		t.Errorf("Stars() order = [%d, %d], want [0, 2]", stars[0].ID, stars[1].ID)
	}
	if len(stars[1].Links) != 0 {
		t.Errorf("persisted links leaked into index: %v", stars[1].Links)
	}
	if len(m.Wormholes()) != 0 {
		t.Error("wormholes survived SetStars")
	}
}

func TestSetWormholes_DropsDanglingEdge(t *testing.T) {
	m := New(1000, 1000)
	m.SetStars([]Star{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 30, Y: 40},
	})

	m.SetWormholes([]Wormhole{
		{StarA: 0, StarB: 1},
		{StarA: 0, StarB: 42},
		{StarA: 77, StarB: 1},
	})

	whs := m.Wormholes()
	if len(whs) != 1 {
		t.Fatalf("wormhole count = %d, want 1 (dangling edges dropped)", len(whs))
	}
	if whs[0].StarA != 0 || whs[0].StarB != 1 {
		t.Errorf("surviving edge = (%d,%d), want (0,1)", whs[0].StarA, whs[0].StarB)
	}
	if math.Abs(whs[0].Distance-50) > 1e-9 {
		t.Errorf("rebuilt distance = %v, want 50", whs[0].Distance)
	}
}

func TestBuildSectors_RequiresOriginalSize(t *testing.T) {
	m := New(1000, 1000)
	m.SetStars([]Star{{ID: 0, X: 10, Y: 10}})

	if err := m.BuildSectors(0); !errors.IsValidation(err) {
		t.Errorf("BuildSectors(0) error = %v, want validation error", err)
	}
	if err := m.BuildSectors(10); !errors.IsValidation(err) {
		t.Errorf("BuildSectors(10) error = %v, want validation error", err)
	}
}

func TestBuildSectors_AssignsStarsByPosition(t *testing.T) {
	m := New(1000, 1000)
	m.SetStars([]Star{
		{ID: 0, X: 100, Y: 100},
		{ID: 1, X: 900, Y: 100},
		{ID: 2, X: 100, Y: 900},
		{ID: 3, X: 999.9, Y: 999.9},
	})

	if err := m.BuildSectors(2); err != nil {
		t.Fatalf("BuildSectors(2): %v", err)
	}

	cases := []struct {
		id       int
		row, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 0},
		{3, 1, 1},
	}
	for _, tc := range cases {
		star, _ := m.StarByID(tc.id)
		if star.SectorRow != tc.row || star.SectorCol != tc.col {
			t.Errorf("star %d sector = (%d,%d), want (%d,%d)",
				tc.id, star.SectorRow, star.SectorCol, tc.row, tc.col)
		}
		sec := m.SectorAt(tc.row, tc.col)
		if len(sec.StarIDs) != 1 || sec.StarIDs[0] != tc.id {
			t.Errorf("sector (%d,%d) stars = %v, want [%d]", tc.row, tc.col, sec.StarIDs, tc.id)
		}
	}

	if m.MapSize() != 2 {
		t.Errorf("MapSize() = %d, want 2", m.MapSize())
	}
}

func TestMutations(t *testing.T) {
	m := newTestModel(t, &Star{ID: 0})

	if err := m.AssignOwner(0, "player-1"); err != nil {
		t.Fatalf("AssignOwner: %v", err)
	}
	if err := m.AddShip(0, "scout"); err != nil {
		t.Fatalf("AddShip: %v", err)
	}
	if err := m.AddShip(0, "frigate"); err != nil {
		t.Fatalf("AddShip: %v", err)
	}
	if err := m.RemoveShip(0, "scout"); err != nil {
		t.Fatalf("RemoveShip: %v", err)
	}
	if err := m.AttachEconomy(0, Economy{Credits: 100, Industry: 5}); err != nil {
		t.Fatalf("AttachEconomy: %v", err)
	}

	star, _ := m.StarByID(0)
	if star.Owner != "player-1" {
		t.Errorf("Owner = %q, want \"player-1\"", star.Owner)
	}
	if len(star.Ships) != 1 || star.Ships[0] != "frigate" {
		t.Errorf("Ships = %v, want [frigate]", star.Ships)
	}
	if star.Economy == nil || star.Economy.Credits != 100 {
		t.Errorf("Economy = %+v, want credits 100", star.Economy)
	}
}

func TestMutations_MissingStar(t *testing.T) {
	m := New(1000, 1000)

	if err := m.AssignOwner(9, "p"); !errors.IsNotFound(err) {
		t.Errorf("AssignOwner(9) error = %v, want not found", err)
	}
	if err := m.AddShip(9, "s"); !errors.IsNotFound(err) {
		t.Errorf("AddShip(9) error = %v, want not found", err)
	}
	if err := m.RemoveShip(9, "s"); !errors.IsNotFound(err) {
		t.Errorf("RemoveShip(9) error = %v, want not found", err)
	}
	if err := m.AttachEconomy(9, Economy{}); !errors.IsNotFound(err) {
		t.Errorf("AttachEconomy(9) error = %v, want not found", err)
	}
}

func TestComponentCount(t *testing.T) {
	m := newTestModel(t,
		&Star{ID: 0}, &Star{ID: 1}, &Star{ID: 2}, &Star{ID: 3},
	)

	if n := m.ComponentCount(); n != 4 {
		t.Errorf("ComponentCount() with no edges = %d, want 4", n)
	}

	m.Link(0, 1)
	m.Link(2, 3)
	if n := m.ComponentCount(); n != 2 {
		t.Errorf("ComponentCount() = %d, want 2", n)
	}
	if m.Connected() {
		t.Error("Connected() = true with two components")
	}

	m.Link(1, 2)
	if !m.Connected() {
		t.Error("Connected() = false after joining components")
	}
}

func TestConnected_EmptyMap(t *testing.T) {
	if !New(1000, 1000).Connected() {
		t.Error("empty map reported as disconnected")
	}
}
