package starmap

import (
	"math"
	"testing"
)

func TestBuildGrid_Shape(t *testing.T) {
	sectors := BuildGrid(5, 1000, 1000)

	if len(sectors) != 25 {
		t.Fatalf("len(sectors) = %d, want 25", len(sectors))
	}

	for i, sec := range sectors {
		wantRow := i / 5
		wantCol := i % 5
		if sec.Row != wantRow || sec.Col != wantCol {
			t.Errorf("sector %d = (%d,%d), want (%d,%d)", i, sec.Row, sec.Col, wantRow, wantCol)
		}
	}
}

func TestBuildGrid_TilesExtentWithoutGaps(t *testing.T) {
	sectors := BuildGrid(4, 800, 600)

	for _, sec := range sectors {
		if math.Abs(sec.Width-200) > 1e-9 {
			t.Errorf("sector (%d,%d) width = %v, want 200", sec.Row, sec.Col, sec.Width)
		}
		if math.Abs(sec.Height-150) > 1e-9 {
			t.Errorf("sector (%d,%d) height = %v, want 150", sec.Row, sec.Col, sec.Height)
		}
		if wantX := float64(sec.Col) * 200; math.Abs(sec.X-wantX) > 1e-9 {
			t.Errorf("sector (%d,%d) x = %v, want %v", sec.Row, sec.Col, sec.X, wantX)
		}
		if wantY := float64(sec.Row) * 150; math.Abs(sec.Y-wantY) > 1e-9 {
			t.Errorf("sector (%d,%d) y = %v, want %v", sec.Row, sec.Col, sec.Y, wantY)
		}
	}

	last := sectors[len(sectors)-1]
	if math.Abs(last.X+last.Width-800) > 1e-9 || math.Abs(last.Y+last.Height-600) > 1e-9 {
		t.Errorf("last sector ends at (%v,%v), want (800,600)", last.X+last.Width, last.Y+last.Height)
	}
}

func TestBuildGrid_SingleSector(t *testing.T) {
	sectors := BuildGrid(1, 1000, 1000)
	if len(sectors) != 1 {
		t.Fatalf("len(sectors) = %d, want 1", len(sectors))
	}
	if sectors[0].Width != 1000 || sectors[0].Height != 1000 {
		t.Errorf("sector extent = %vx%v, want 1000x1000", sectors[0].Width, sectors[0].Height)
	}
}

func TestSector_Center(t *testing.T) {
	sec := &Sector{X: 100, Y: 200, Width: 50, Height: 80}
	if sec.CenterX() != 125 {
		t.Errorf("CenterX() = %v, want 125", sec.CenterX())
	}
	if sec.CenterY() != 240 {
		t.Errorf("CenterY() = %v, want 240", sec.CenterY())
	}
}
