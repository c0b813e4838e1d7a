package parley

import (
	"fmt"
	"sort"
)

// Scorer ranks a tile against the search line. ok=false excludes the
// tile from the visible set entirely.
type Scorer func(argument Line, tile any) (float64, bool)

// MeshConfig carries the pluggable behaviors of a mesh.
type MeshConfig struct {
	// Score ranks tiles during search. nil disables searching.
	Score Scorer
	// Scout reports whether a spot is valid to move onto. nil allows
	// all.
	Scout func(Spot) bool
	// Rigid forbids wrap-around movement at the edges.
	Rigid bool
	// Permit swallows invalid search keystrokes instead of rejecting
	// them, tracking where the invalid suffix begins.
	Permit bool
	// Create materializes a tile for a new spot. nil return prevents
	// creation; an error rejects it.
	Create func(Spot) (any, error)
	// Clean wipes all other tiles whenever a new one is created, for
	// infinite single-value meshes.
	Clean bool
}

// MeshMutate edits a 2D collection of tiles with a cursor, procedural
// creation and incremental fuzzy filtering. vision maps each visible
// spot to the real spot it shows; outside an active search it is the
// identity.
type MeshMutate struct {
	cfg    MeshConfig
	tiles  map[Spot]any
	vision map[Spot]Spot
	point  *Point

	searchMutate      *TextMutate
	searchIgnoreIndex *int
	searchPointCache  *Point
}

// NewMeshMutate wraps tiles and a cursor point. The tile under the
// cursor is created immediately when absent and a creator exists.
func NewMeshMutate(cfg MeshConfig, tiles map[Spot]any, point *Point) *MeshMutate {
	searchLines := Lines{{}}
	searchPoint := &Point{Y: 0, X: 0}

	m := &MeshMutate{
		cfg:          cfg,
		tiles:        tiles,
		vision:       make(map[Spot]Spot, len(tiles)),
		point:        point,
		searchMutate: NewTextMutate(&searchLines, searchPoint),
	}
	for spot := range tiles {
		m.vision[spot] = spot
	}
	m.Insert(m.VisSpot())
	return m
}

// Tiles is the real tile collection.
func (m *MeshMutate) Tiles() map[Spot]any {
	return m.tiles
}

// Vision maps visible spots to real spots.
func (m *MeshMutate) Vision() map[Spot]Spot {
	return m.vision
}

// Point is the cursor in visible coordinates.
func (m *MeshMutate) Point() *Point {
	return m.point
}

// VisSpot is the cursor's visible spot.
func (m *MeshMutate) VisSpot() Spot {
	return Spot{Y: m.point.Y, X: m.point.X}
}

// CurSpot is the cursor's real spot, accounting for vision.
func (m *MeshMutate) CurSpot() Spot {
	return m.vision[m.VisSpot()]
}

// CurTile is the tile under the cursor.
func (m *MeshMutate) CurTile() any {
	return m.tiles[m.CurSpot()]
}

// SearchMutate is the text mutate holding the search line.
func (m *MeshMutate) SearchMutate() *TextMutate {
	return m.searchMutate
}

// SearchLine is the active search argument.
func (m *MeshMutate) SearchLine() Line {
	return m.searchMutate.Lines()[m.searchMutate.Point().Y]
}

// SearchIgnoreIndex is the flat index where the ignored (invalid)
// suffix of the search line begins, or nil. Only set in Permit mode.
func (m *MeshMutate) SearchIgnoreIndex() *int {
	return m.searchIgnoreIndex
}

type meshState struct {
	tiles       map[Spot]any
	vision      map[Spot]Spot
	point       Point
	search      State
	ignoreIndex *int
}

func (m *MeshMutate) State() State {
	tiles := make(map[Spot]any, len(m.tiles))
	for spot, tile := range m.tiles {
		tiles[spot] = tile
	}
	vision := make(map[Spot]Spot, len(m.vision))
	for vis, cur := range m.vision {
		vision[vis] = cur
	}
	return meshState{
		tiles:       tiles,
		vision:      vision,
		point:       *m.point,
		search:      m.searchMutate.State(),
		ignoreIndex: m.searchIgnoreIndex,
	}
}

func (m *MeshMutate) Restore(state State) {
	s := state.(meshState)
	clear(m.tiles)
	for spot, tile := range s.tiles {
		m.tiles[spot] = tile
	}
	clear(m.vision)
	for vis, cur := range s.vision {
		m.vision[vis] = cur
	}
	*m.point = s.point
	m.searchMutate.Restore(s.search)
	m.searchIgnoreIndex = s.ignoreIndex
}

func (m *MeshMutate) searching() bool {
	return len(m.SearchLine()) > 0
}

// Insert fetches the tile at spot, creating it when absent. Fails
// while a search filter is active.
func (m *MeshMutate) Insert(spot Spot) (any, error) {
	if m.searching() {
		return nil, fmt.Errorf("insert %v: %w", spot, ErrSearching)
	}
	if tile, ok := m.tiles[spot]; ok {
		return tile, nil
	}
	if m.cfg.Create == nil {
		return nil, nil
	}
	tile, err := m.cfg.Create(spot)
	if err != nil {
		return nil, err
	}
	if m.cfg.Clean {
		clear(m.tiles)
		clear(m.vision)
	}
	if tile != nil {
		m.tiles[spot] = tile
		m.vision[spot] = spot
	}
	return tile, nil
}

// Delete removes the tile at spot, returning it when it existed. Fails
// while a search filter is active.
func (m *MeshMutate) Delete(spot Spot) (any, error) {
	if m.searching() {
		return nil, fmt.Errorf("delete %v: %w", spot, ErrSearching)
	}
	tile, ok := m.tiles[spot]
	if !ok {
		return nil, nil
	}
	delete(m.tiles, spot)
	delete(m.vision, spot)
	return tile, nil
}

func spotNeighbors(origin Spot, radius int) []Point {
	var points []Point
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			if abs(i) != radius && abs(j) != radius {
				continue
			}
			points = append(points, Point{Y: origin.Y + i, X: origin.X + j})
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Move moves the cursor to the nearest visible tile toward direction
// (degrees, 0 is right). With a creator present an absent adjacent
// spot is materialized first. When nothing lies within the 90 degree
// window the move wraps around to the far side, unless rigid.
func (m *MeshMutate) Move(direction float64) error {
	oldSpot := m.VisSpot()

	var finSpot *Spot
	if !m.searching() && m.cfg.Create != nil {
		origin := Point(oldSpot)
		next, ok := pointDirectional(false, origin, direction, spotNeighbors(oldSpot, 1), 90, false)
		if !ok {
			next = origin
		}
		newSpot := Spot(next)
		if _, exists := m.tiles[newSpot]; !exists {
			tile, err := m.Insert(newSpot)
			if err != nil {
				return err
			}
			if tile != nil {
				finSpot = &newSpot
			}
		}
	}

	if finSpot == nil {
		var maySpots []Point
		for vis := range m.vision {
			if m.cfg.Scout != nil && !m.cfg.Scout(vis) {
				continue
			}
			maySpots = append(maySpots, Point(vis))
		}
		origin := Point(oldSpot)
		target, ok := pointDirectional(false, origin, direction, maySpots, 90, false)
		if !ok {
			if m.cfg.Rigid {
				return fmt.Errorf("move %v: %w", direction, ErrInsufficientSpace)
			}
			direction = reverseDirection(direction)
			target, _ = pointDirectional(true, origin, direction, maySpots, 90, true)
		}
		spot := Spot(target)
		finSpot = &spot
	}

	m.point.Y = finSpot.Y
	m.point.X = finSpot.X
	return nil
}

// searchSetup scores every tile, compacts the ranked matches along the
// vertical axis and rebuilds vision visible-to-real. Returns the new
// cursor spot, which shows the top-ranked tile.
func (m *MeshMutate) searchSetup(argument Line) (Spot, error) {
	if m.searchPointCache == nil {
		cache := *m.point
		m.searchPointCache = &cache
	}

	type asset struct {
		score float64
		spot  Spot
	}
	var assets []asset
	for spot, tile := range m.tiles {
		score, ok := m.cfg.Score(argument, tile)
		if !ok {
			continue
		}
		assets = append(assets, asset{score: score, spot: spot})
	}

	if len(assets) == 0 {
		return Spot{}, fmt.Errorf("search %q: %w", JoinLine(argument), ErrInvalidSearchArgument)
	}

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].score != assets[j].score {
			return assets[i].score > assets[j].score
		}
		if assets[i].spot.Y != assets[j].spot.Y {
			return assets[i].spot.Y > assets[j].spot.Y
		}
		return assets[i].spot.X > assets[j].spot.X
	})

	oldSpots := make([]Spot, len(assets))
	for i, a := range assets {
		oldSpots[i] = a.spot
	}

	same := len(oldSpots) == len(m.vision)
	if same {
		seen := make(map[Spot]bool, len(m.vision))
		for _, cur := range m.vision {
			seen[cur] = true
		}
		for _, spot := range oldSpots {
			if !seen[spot] {
				same = false
				break
			}
		}
	}
	if same {
		return Spot{}, fmt.Errorf("search %q: %w", JoinLine(argument), ErrInconsequentialSearchArgument)
	}

	pairs := squeezeSpots(0, oldSpots, 0)

	clear(m.vision)
	for _, pair := range pairs {
		m.vision[pair[1]] = pair[0]
	}

	return pairs[0][1], nil
}

// searchReset returns vision to the identity and restores the cursor
// position cached when the search began.
func (m *MeshMutate) searchReset() Spot {
	clear(m.vision)
	for spot := range m.tiles {
		m.vision[spot] = spot
	}
	point := m.searchPointCache
	m.searchPointCache = nil
	if point == nil {
		return m.VisSpot()
	}
	return Spot{Y: point.Y, X: point.X}
}

func (m *MeshMutate) searchExecute(act func() error) error {
	if m.cfg.Score == nil {
		return nil
	}

	state := m.State()

	if err := act(); err != nil {
		return err
	}

	argument := m.SearchLine()

	var point Spot
	var err error
	if len(argument) > 0 {
		point, err = m.searchSetup(argument)
	} else {
		point = m.searchReset()
	}
	if err != nil {
		if m.cfg.Permit {
			if m.searchIgnoreIndex == nil {
				prior := state.(meshState).search.(textState)
				index := PointToIndex(prior.lines, prior.point)
				m.searchIgnoreIndex = &index
			}
			return nil
		}
		m.Restore(state)
		return err
	}

	m.searchIgnoreIndex = nil
	m.point.Y = point.Y
	m.point.X = point.X
	return nil
}

// SearchInsert appends runes to the search line and refilters.
func (m *MeshMutate) SearchInsert(runes []string) error {
	return m.searchExecute(func() error {
		m.searchMutate.Insert(runes)
		return m.searchMutate.MoveX(len(runes))
	})
}

// SearchDelete removes size runes off the search line's tail and
// refilters; an emptied line resets vision to the identity.
func (m *MeshMutate) SearchDelete(size int) error {
	return m.searchExecute(func() error {
		if err := m.searchMutate.MoveX(-size); err != nil {
			return err
		}
		return m.searchMutate.Delete(size)
	})
}
