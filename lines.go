package parley

import (
	"math"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// The drawable data model. A Line is an ordered sequence of
// single-display-cell strings; a cell is one grapheme cluster,
// possibly wrapped in SGR styling. Lines stack vertically.
type (
	Line  = []string
	Lines = []Line
)

// Point is a zero-offset (row, col) address into Lines.
type Point struct {
	Y, X int
}

const lineSep = "\r\n"

var sgrPattern = regexp.MustCompile(`((?:\x1b\[[0-?]*m)+)`)

var sgrResets = map[string]bool{
	"\x1b[0m":  true,
	"\x1b[22m": true, "\x1b[23m": true, "\x1b[24m": true, "\x1b[25m": true,
	"\x1b[26m": true, "\x1b[27m": true, "\x1b[28m": true,
	"\x1b[39m": true, "\x1b[49m": true, "\x1b[50m": true, "\x1b[54m": true,
	"\x1b[55m": true, "\x1b[59m": true, "\x1b[65m": true, "\x1b[75m": true,
}

// splitCells breaks plain text into display cells.
func splitCells(text string) []string {
	var cells []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cells = append(cells, g.Str())
	}
	return cells
}

// SplitLine breaks one styled line into cells. SGR runs attach to the
// cell that follows them, except reset codes, which attach to the cell
// before so a span closes with the content it styled.
func SplitLine(value string) Line {
	parts := sgrPattern.Split(value, -1)
	codes := sgrPattern.FindAllString(value, -1)

	buffer := splitCells(parts[0])

	for i, part := range parts[1:] {
		code := codes[i]
		if part == "" {
			if len(buffer) > 0 {
				buffer[len(buffer)-1] += code
			}
			continue
		}
		cells := splitCells(part)
		if sgrResets[code] && len(buffer) > 0 {
			buffer[len(buffer)-1] += code
		} else {
			cells[0] = code + cells[0]
		}
		buffer = append(buffer, cells...)
	}

	return buffer
}

// SplitLines breaks styled multi-line text on CRLF boundaries.
func SplitLines(value string) Lines {
	values := strings.Split(value, lineSep)
	lines := make(Lines, len(values))
	for i, v := range values {
		lines[i] = SplitLine(v)
	}
	return lines
}

// JoinLine flattens a line back into a string.
func JoinLine(line Line) string {
	return strings.Join(line, "")
}

// JoinLines flattens lines back into CRLF-separated text.
func JoinLines(lines Lines) string {
	values := make([]string, len(lines))
	for i, line := range lines {
		values[i] = JoinLine(line)
	}
	return strings.Join(values, lineSep)
}

// CleanText strips SGR runs out of styled text.
func CleanText(value string) string {
	return sgrPattern.ReplaceAllString(value, "")
}

// CopyLine returns an independent copy.
func CopyLine(line Line) Line {
	return append(Line(nil), line...)
}

// CopyLines returns a deep, independent copy.
func CopyLines(lines Lines) Lines {
	out := make(Lines, len(lines))
	for i, line := range lines {
		out[i] = CopyLine(line)
	}
	return out
}

// MergeLines concatenates regions vertically, merging the last row of
// one with the first row of the next. The inputs are copied.
func MergeLines(main Lines, rest ...Lines) Lines {
	out := CopyLines(main)
	if len(out) == 0 {
		out = Lines{{}}
	}
	for _, lines := range rest {
		lines = CopyLines(lines)
		if len(lines) == 0 {
			continue
		}
		out[len(out)-1] = append(out[len(out)-1], lines[0]...)
		out = append(out, lines[1:]...)
	}
	return out
}

// CheckLines reports whether lines hold any content at all.
func CheckLines(lines Lines) bool {
	if len(lines) > 1 {
		return true
	}
	for _, line := range lines {
		if len(line) > 0 {
			return true
		}
	}
	return false
}

// PaintRune wraps one cell in a color span.
func PaintRune(color, rune_ string) string {
	if color == "" {
		return rune_
	}
	return color + rune_ + "\x1b[0m"
}

// PaintText paints every cell of plain text.
func PaintText(color, value string) string {
	if color == "" {
		return value
	}
	var b strings.Builder
	for _, cell := range splitCells(value) {
		b.WriteString(PaintRune(color, cell))
	}
	return b.String()
}

// PaintLine paints the cells of a line in place, limited to the
// [enter, leave] index range when either bound is non-negative.
func PaintLine(color string, line Line, enter, leave int) {
	for i := range line {
		if enter >= 0 && i < enter {
			continue
		}
		if leave >= 0 && i > leave {
			continue
		}
		line[i] = PaintRune(color, line[i])
	}
}

// PointToIndex flattens a point into an index over the whole buffer,
// each line boundary counting as one unit.
func PointToIndex(lines Lines, point Point) int {
	index := point.X
	for _, line := range lines[:point.Y] {
		index += len(line) + 1
	}
	return index
}

// IndexToPoint is the inverse of PointToIndex.
func IndexToPoint(lines Lines, index int) Point {
	y := 0
	x := index
	for _, line := range lines {
		size := len(line) + 1
		index -= size
		if index < 0 {
			break
		}
		y++
		x = index
	}
	return Point{Y: y, X: x}
}

// directional geometry used by mesh movement

// floored modulo, non-negative for positive divisors
func pymod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

func pointDistance(origin, target Point) float64 {
	dy := float64(target.Y - origin.Y)
	dx := float64(target.X - origin.X)
	return math.Sqrt(dy*dy + dx*dx)
}

func pointLineDistance(slope, intercept float64, target Point) float64 {
	return math.Abs(-slope*float64(target.X)+float64(target.Y)-intercept) / math.Hypot(slope, 1)
}

func pointDirection(origin, target Point) float64 {
	dy := float64(target.Y - origin.Y)
	dx := float64(target.X - origin.X)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// pointDirectional picks the best target within the ±window cone of
// direction. Score is perpendicular distance to the direction ray plus
// euclidean distance; ignoreLine negates the ray distance, which shifts
// preference to the far end (wrap-around selection). Returns origin and
// false when nothing qualifies.
func pointDirectional(useMax bool, origin Point, direction float64, targets []Point, window float64, ignoreLine bool) (Point, bool) {
	angle := pymod(direction, 180) * math.Pi / 180
	slope := math.Tan(angle)
	intercept := float64(origin.Y) - slope*float64(origin.X)

	score := func(target Point) float64 {
		lineDist := pointLineDistance(slope, intercept, target)
		if ignoreLine {
			lineDist *= -1
		}
		return lineDist + pointDistance(origin, target)
	}

	found := false
	var best Point
	var bestScore float64
	for _, target := range targets {
		if target == origin {
			continue
		}
		if math.Abs(pointDirection(origin, target)-direction) >= window {
			continue
		}
		s := score(target)
		if !found || (useMax && s > bestScore) || (!useMax && s < bestScore) {
			found = true
			best = target
			bestScore = s
		}
	}
	if !found {
		return origin, false
	}
	return best, true
}

func reverseDirection(direction float64) float64 {
	direction = pymod(direction, 360) - 180
	if direction > -180 {
		return direction
	}
	return direction + 360
}

// Spot is an integer (row, col) key into a mesh.
type Spot struct {
	Y, X int
}

func (s Spot) axis(axis int) int {
	if axis == 1 {
		return s.X
	}
	return s.Y
}

func spotOn(axis, a, o int) Spot {
	if axis == 1 {
		return Spot{Y: o, X: a}
	}
	return Spot{Y: a, X: o}
}

// squeezeSpots assigns new consecutive coordinates along axis in the
// order the spots arrive (rank order), packing each axis bucket from
// start. Returns old→new pairs.
func squeezeSpots(axis int, spots []Spot, start int) [][2]Spot {
	type bucket struct {
		a    int
		oths []int
	}
	var buckets []*bucket
	index := map[int]*bucket{}
	for _, spot := range spots {
		a := spot.axis(axis)
		b, ok := index[a]
		if !ok {
			b = &bucket{a: a}
			index[a] = b
			buckets = append(buckets, b)
		}
		b.oths = append(b.oths, spot.axis((axis+1)%2))
	}

	var pairs [][2]Spot
	for newA, b := range buckets {
		for i, curO := range b.oths {
			cur := spotOn(axis, b.a, curO)
			next := spotOn(axis, newA, start+i)
			pairs = append(pairs, [2]Spot{cur, next})
		}
	}
	return pairs
}
