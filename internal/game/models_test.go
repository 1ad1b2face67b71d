package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"starmap-server/internal/galaxy"
)

func generatedSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	result, err := galaxy.Generate(galaxy.Config{Seed: 12345, MapSize: 5, DensityMin: 3, DensityMax: 7})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	width, height := result.Model.Extent()
	game := &Game{
		ID:            uuid.New(),
		Name:          "round-trip",
		Seed:          12345,
		MapSize:       5,
		DensityMin:    3,
		DensityMax:    7,
		WorldWidth:    width,
		WorldHeight:   height,
		StarCount:     result.Model.StarCount(),
		WormholeCount: len(result.Model.Wormholes()),
	}
	return snapshotOf(game, result)
}

func TestSnapshot_RebuildRoundTrip(t *testing.T) {
	snapshot := generatedSnapshot(t)

	loaded, err := snapshot.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	model := loaded.Model
	if model.StarCount() != snapshot.Game.StarCount {
		t.Errorf("StarCount() = %d, want %d", model.StarCount(), snapshot.Game.StarCount)
	}
	if n := len(model.Wormholes()); n != snapshot.Game.WormholeCount {
		t.Errorf("wormhole count = %d, want %d", n, snapshot.Game.WormholeCount)
	}
	if model.MapSize() != snapshot.Game.MapSize {
		t.Errorf("MapSize() = %d, want %d", model.MapSize(), snapshot.Game.MapSize)
	}

	for _, record := range snapshot.Stars {
		star, ok := model.StarByID(record.ID)
		if !ok {
			t.Fatalf("star %d lost in rebuild", record.ID)
		}
		if star.Name != record.Name || star.X != record.X || star.Y != record.Y || star.Z != record.Z {
			t.Errorf("star %d = %+v, want %+v", record.ID, star, record)
		}
		if star.SectorRow != record.SectorRow || star.SectorCol != record.SectorCol {
			t.Errorf("star %d rebuilt into sector (%d,%d), was (%d,%d)",
				record.ID, star.SectorRow, star.SectorCol, record.SectorRow, record.SectorCol)
		}
	}

	if len(loaded.Starts) != len(snapshot.Starts) {
		t.Errorf("start count = %d, want %d", len(loaded.Starts), len(snapshot.Starts))
	}
}

func TestSnapshot_RebuildRestoresAdjacency(t *testing.T) {
	snapshot := generatedSnapshot(t)

	loaded, err := snapshot.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	for _, wh := range snapshot.Wormholes {
		a, _ := loaded.Model.StarByID(wh.StarA)
		found := false
		for _, next := range a.Links {
			if next == wh.StarB {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rebuilt star %d missing link to %d", wh.StarA, wh.StarB)
		}
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	snapshot := generatedSnapshot(t)

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	redone, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(data) != string(redone) {
		t.Error("snapshot changed across a JSON round trip")
	}
}

func TestSnapshot_RebuildInvalidMapSize(t *testing.T) {
	snapshot := generatedSnapshot(t)
	snapshot.Game.MapSize = 0

	if _, err := snapshot.Rebuild(); err == nil {
		t.Error("Rebuild with map size 0 returned nil error")
	}
}
