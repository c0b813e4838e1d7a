package parley

import (
	"errors"
	"testing"
)

func stringTiles(values map[Spot]string) map[Spot]any {
	tiles := make(map[Spot]any, len(values))
	for spot, value := range values {
		tiles[spot] = value
	}
	return tiles
}

func stringTileText(tile any) Line {
	return SplitLine(tile.(string))
}

func TestMeshMove(t *testing.T) {
	t.Run("SkipsGaps", func(t *testing.T) {
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "a",
			{Y: 0, X: 2}: "b",
		})
		point := Point{}
		m := NewMeshMutate(MeshConfig{}, tiles, &point)

		if err := m.Move(0); err != nil {
			t.Fatal(err)
		}
		if m.CurSpot() != (Spot{Y: 0, X: 2}) {
			t.Errorf("landed on %v", m.CurSpot())
		}
	})

	t.Run("Vertical", func(t *testing.T) {
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "a",
			{Y: 1, X: 0}: "b",
		})
		point := Point{}
		m := NewMeshMutate(MeshConfig{}, tiles, &point)

		if err := m.Move(90); err != nil {
			t.Fatal(err)
		}
		if m.CurSpot() != (Spot{Y: 1, X: 0}) {
			t.Errorf("landed on %v", m.CurSpot())
		}
		if err := m.Move(-90); err != nil {
			t.Fatal(err)
		}
		if m.CurSpot() != (Spot{Y: 0, X: 0}) {
			t.Errorf("landed on %v", m.CurSpot())
		}
	})

	t.Run("WrapsAtEdge", func(t *testing.T) {
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "a",
			{Y: 0, X: 1}: "b",
			{Y: 0, X: 2}: "c",
		})
		point := Point{Y: 0, X: 2}
		m := NewMeshMutate(MeshConfig{}, tiles, &point)

		if err := m.Move(0); err != nil {
			t.Fatal(err)
		}
		if m.CurSpot() != (Spot{Y: 0, X: 0}) {
			t.Errorf("expected wrap to far end, landed on %v", m.CurSpot())
		}
	})

	t.Run("RigidStops", func(t *testing.T) {
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "a",
			{Y: 0, X: 1}: "b",
		})
		point := Point{Y: 0, X: 1}
		m := NewMeshMutate(MeshConfig{Rigid: true}, tiles, &point)

		err := m.Move(0)
		if !errors.Is(err, ErrInsufficientSpace) {
			t.Errorf("expected ErrInsufficientSpace, got %v", err)
		}
		if m.CurSpot() != (Spot{Y: 0, X: 1}) {
			t.Errorf("cursor moved to %v", m.CurSpot())
		}
	})

	t.Run("ScoutBlocks", func(t *testing.T) {
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "a",
			{Y: 0, X: 1}: "b",
			{Y: 0, X: 2}: "c",
		})
		point := Point{}
		scout := func(spot Spot) bool { return spot.X != 1 }
		m := NewMeshMutate(MeshConfig{Scout: scout}, tiles, &point)

		if err := m.Move(0); err != nil {
			t.Fatal(err)
		}
		if m.CurSpot() != (Spot{Y: 0, X: 2}) {
			t.Errorf("expected the scouted spot skipped, landed on %v", m.CurSpot())
		}
	})
}

func TestMeshCreate(t *testing.T) {
	created := map[Spot]string{}
	create := func(spot Spot) (any, error) {
		value := "tile"
		created[spot] = value
		return value, nil
	}
	point := Point{}
	m := NewMeshMutate(MeshConfig{Create: create}, map[Spot]any{}, &point)

	if len(m.Tiles()) != 1 {
		t.Fatalf("expected the starting tile created, have %d", len(m.Tiles()))
	}
	if err := m.Move(0); err != nil {
		t.Fatal(err)
	}
	if m.CurSpot() != (Spot{Y: 0, X: 1}) {
		t.Errorf("landed on %v", m.CurSpot())
	}
	if len(m.Tiles()) != 2 {
		t.Errorf("expected a tile created on the way, have %d", len(m.Tiles()))
	}
}

func TestMeshSearch(t *testing.T) {
	setup := func(cfg MeshConfig) *MeshMutate {
		cfg.Score = FuzzySearch(stringTileText)
		tiles := stringTiles(map[Spot]string{
			{Y: 0, X: 0}: "alpha",
			{Y: 1, X: 0}: "beta",
			{Y: 2, X: 0}: "gamma",
		})
		point := Point{}
		return NewMeshMutate(cfg, tiles, &point)
	}

	t.Run("FiltersVision", func(t *testing.T) {
		m := setup(MeshConfig{})
		if err := m.SearchInsert([]string{"b"}); err != nil {
			t.Fatal(err)
		}
		if len(m.Vision()) != 1 {
			t.Fatalf("expected 1 visible, have %d", len(m.Vision()))
		}
		if m.CurSpot() != (Spot{Y: 1, X: 0}) {
			t.Errorf("expected the match under the cursor, got %v", m.CurSpot())
		}
	})

	t.Run("DeleteResetsToIdentity", func(t *testing.T) {
		m := setup(MeshConfig{})
		if err := m.Move(90); err != nil {
			t.Fatal(err)
		}
		if err := m.SearchInsert([]string{"b"}); err != nil {
			t.Fatal(err)
		}
		if err := m.SearchDelete(1); err != nil {
			t.Fatal(err)
		}
		if len(m.Vision()) != 3 {
			t.Errorf("expected identity vision, have %d", len(m.Vision()))
		}
		// the cursor returns to where the search began
		if m.CurSpot() != (Spot{Y: 1, X: 0}) {
			t.Errorf("cursor at %v", m.CurSpot())
		}
	})

	t.Run("InvalidRollsBack", func(t *testing.T) {
		m := setup(MeshConfig{})
		err := m.SearchInsert([]string{"z"})
		if !errors.Is(err, ErrInvalidSearchArgument) {
			t.Fatalf("expected ErrInvalidSearchArgument, got %v", err)
		}
		if len(m.SearchLine()) != 0 {
			t.Errorf("search line kept the bad rune: %v", m.SearchLine())
		}
	})

	t.Run("InconsequentialRollsBack", func(t *testing.T) {
		m := setup(MeshConfig{})
		err := m.SearchInsert([]string{"a"})
		if !errors.Is(err, ErrInconsequentialSearchArgument) {
			t.Fatalf("expected ErrInconsequentialSearchArgument, got %v", err)
		}
	})

	t.Run("PermitTracksIgnoreIndex", func(t *testing.T) {
		m := setup(MeshConfig{Permit: true})
		if err := m.SearchInsert([]string{"b"}); err != nil {
			t.Fatal(err)
		}
		if err := m.SearchInsert([]string{"z"}); err != nil {
			t.Fatal(err)
		}
		ignore := m.SearchIgnoreIndex()
		if ignore == nil {
			t.Fatal("expected an ignore index")
		}
		if *ignore != 1 {
			t.Errorf("ignore index %d, want 1", *ignore)
		}
		// the bad suffix stays on the line
		if got := JoinLine(m.SearchLine()); got != "bz" {
			t.Errorf("search line %q", got)
		}
	})
}
