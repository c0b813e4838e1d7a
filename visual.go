package parley

import "sort"

// Region is a drawable block: lines plus the logical point among them.
type Region struct {
	Lines Lines
	Point Point
}

func (r *Region) copy() *Region {
	return &Region{Lines: CopyLines(r.Lines), Point: r.Point}
}

// Funnels are pure in-place transforms on shape data, applied before
// (enter) or after (leave) conversion to drawable lines.
type (
	TextFunnel func(lines *Lines, point *Point)
	MeshFunnel func(tiles map[Spot]*Region, point *Point)
	LineFunnel func(tiles *[]*Region, index *int)
)

// Visual turns mutable state into drawable (Lines, Point) output. The
// fetched data is deep-copied first, so funnels and formatting never
// touch live state.
type Visual interface {
	Get(enter, leave bool) (Lines, *Point)
}

// TextVisual passes text state through unchanged, modulo funnels.
type TextVisual struct {
	get   func() (Lines, *Point)
	enter TextFunnel
	leave TextFunnel
}

func NewTextVisual(get func() (Lines, *Point), enter, leave TextFunnel) *TextVisual {
	return &TextVisual{get: get, enter: enter, leave: leave}
}

func (v *TextVisual) Get(enter, leave bool) (Lines, *Point) {
	lines, point := v.get()
	lines = CopyLines(lines)
	if point != nil {
		p := *point
		point = &p
	}
	if enter && v.enter != nil {
		v.enter(&lines, point)
	}
	if leave && v.leave != nil {
		v.leave(&lines, point)
	}
	return lines, point
}

// MeshVisual concatenates each mesh row's tiles horizontally and
// stacks rows vertically, higher rows above lower ones, tracking where
// the pointed tile's own point lands in the merged output.
type MeshVisual struct {
	get   func(enter, leave bool) (map[Spot]*Region, Point)
	enter MeshFunnel
	leave TextFunnel
}

func NewMeshVisual(get func(enter, leave bool) (map[Spot]*Region, Point), enter MeshFunnel, leave TextFunnel) *MeshVisual {
	return &MeshVisual{get: get, enter: enter, leave: leave}
}

func formatMesh(tiles map[Spot]*Region, point Point) (Lines, *Point) {
	spots := make([]Spot, 0, len(tiles))
	for spot := range tiles {
		spots = append(spots, spot)
	}
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Y != spots[j].Y {
			return spots[i].Y < spots[j].Y
		}
		return spots[i].X < spots[j].X
	})

	mainY, mainX := point.Y, point.X

	var done Lines
	var memo Lines
	memoY := 0
	started := false

	finY, finX := 0, 0

	for _, spot := range spots {
		tile := tiles[spot]
		if !started || spot.Y != memoY {
			// rows stack in reverse: each finished row block goes
			// above the ones already done
			if spot.Y <= mainY {
				finY += len(memo)
			}
			done = append(append(Lines{}, memo...), done...)
			memoY = spot.Y
			memo = nil
			started = true
		}
		if spot.Y == mainY && spot.X == mainX {
			finY += len(tile.Lines) - tile.Point.Y
			extX := 0
			if tile.Point.Y < len(memo) {
				extX = len(memo[tile.Point.Y])
			}
			finX = extX + tile.Point.X
		}
		for i, tileLine := range tile.Lines {
			if i >= len(memo) {
				memo = append(memo, Line{})
			}
			memo[i] = append(memo[i], tileLine...)
		}
	}
	done = append(append(Lines{}, memo...), done...)

	finY = len(done) - finY

	return done, &Point{Y: finY, X: finX}
}

func (v *MeshVisual) Get(enter, leave bool) (Lines, *Point) {
	tiles, point := v.get(enter, leave)
	copied := make(map[Spot]*Region, len(tiles))
	for spot, tile := range tiles {
		copied[spot] = tile.copy()
	}
	if enter && v.enter != nil {
		v.enter(copied, &point)
	}
	lines, outPoint := formatMesh(copied, point)
	if leave && v.leave != nil {
		v.leave(&lines, outPoint)
	}
	return lines, outPoint
}

// LineVisual concatenates an ordered list of regions vertically,
// merging the last row of one with the first row of the next, tracking
// the cumulative offset of the active region's point.
type LineVisual struct {
	get   func(enter, leave bool) ([]*Region, int)
	enter LineFunnel
	leave TextFunnel
}

func NewLineVisual(get func(enter, leave bool) ([]*Region, int), enter LineFunnel, leave TextFunnel) *LineVisual {
	return &LineVisual{get: get, enter: enter, leave: leave}
}

func formatLine(tiles []*Region, index int) (Lines, *Point) {
	finY, finX := 0, 0

	lines := Lines{{}}
	for i, tile := range tiles {
		if i < index {
			finY += len(tile.Lines) - 1
		} else if i == index {
			finY += tile.Point.Y
			finX = tile.Point.X
			if finY == 0 {
				finX += len(lines[0])
			}
		}
		if len(tile.Lines) == 0 {
			continue
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], tile.Lines[0]...)
		lines = append(lines, tile.Lines[1:]...)
	}

	return lines, &Point{Y: finY, X: finX}
}

func (v *LineVisual) Get(enter, leave bool) (Lines, *Point) {
	tiles, index := v.get(enter, leave)
	copied := make([]*Region, len(tiles))
	for i, tile := range tiles {
		copied[i] = tile.copy()
	}
	if enter && v.enter != nil {
		v.enter(&copied, &index)
	}
	lines, point := formatLine(copied, index)
	if leave && v.leave != nil {
		v.leave(&lines, point)
	}
	return lines, point
}
