package parley

import "fmt"

// Mutate is an editable state model with all-or-nothing rollback. A
// State is a deep, independent copy of the owned structures.
type Mutate interface {
	State() State
	Restore(State)
}

type State any

// TextMutate edits a block of text and a cursor among it, emulating a
// plain text field. All operations splice in place; failed ones leave
// the state untouched.
type TextMutate struct {
	lines *Lines
	point *Point
}

// NewTextMutate wraps lines and a cursor point. Both stay shared: the
// caller reads them back through Lines and Point.
func NewTextMutate(lines *Lines, point *Point) *TextMutate {
	return &TextMutate{lines: lines, point: point}
}

// Lines is the current text.
func (t *TextMutate) Lines() Lines {
	return *t.lines
}

// Point is the current cursor position.
func (t *TextMutate) Point() *Point {
	return t.point
}

type textState struct {
	lines Lines
	point Point
}

func (t *TextMutate) State() State {
	return textState{lines: CopyLines(*t.lines), point: *t.point}
}

func (t *TextMutate) Restore(state State) {
	s := state.(textState)
	*t.lines = CopyLines(s.lines)
	*t.point = s.point
}

func (t *TextMutate) total() int {
	total := len(*t.lines) - 1
	for _, line := range *t.lines {
		total += len(line)
	}
	return total
}

// Insert splices runes at the cursor. The cursor does not move; the
// caller follows up with MoveX.
func (t *TextMutate) Insert(runes []string) {
	line := (*t.lines)[t.point.Y]
	next := make(Line, 0, len(line)+len(runes))
	next = append(next, line[:t.point.X]...)
	next = append(next, runes...)
	next = append(next, line[t.point.X:]...)
	(*t.lines)[t.point.Y] = next
}

// MoveY moves the cursor vertically, clamping the column to the new
// line's length.
func (t *TextMutate) MoveY(size int) error {
	newY := t.point.Y + size
	maxY := len(*t.lines) - 1
	if newY < 0 || newY > maxY {
		return fmt.Errorf("move y %d: %w", size, ErrInsufficientSpace)
	}
	t.point.Y = newY
	if may := len((*t.lines)[newY]); t.point.X > may {
		t.point.X = may
	}
	return nil
}

// MoveX moves the cursor horizontally over the flat index of the whole
// buffer, each line boundary counting as one unit.
func (t *TextMutate) MoveX(size int) error {
	curI := PointToIndex(*t.lines, *t.point)
	newI := curI + size
	if newI < 0 || newI > t.total() {
		return fmt.Errorf("move x %d: %w", size, ErrInsufficientSpace)
	}
	*t.point = IndexToPoint(*t.lines, newI)
	return nil
}

// Delete removes size units ahead of the cursor, merging lines when
// the range crosses their boundaries.
func (t *TextMutate) Delete(size int) error {
	lines := *t.lines
	curI := PointToIndex(lines, *t.point)
	newI := curI + size
	if newI > t.total() {
		return fmt.Errorf("delete %d: %w", size, ErrInsufficientSpace)
	}
	newP := IndexToPoint(lines, newI)

	newX := newP.X
	if newP.Y != t.point.Y {
		merged := CopyLine(lines[t.point.Y])
		newX += len(merged)
		merged = append(merged, lines[newP.Y]...)
		lines = append(lines[:t.point.Y+1], lines[newP.Y+1:]...)
		lines[t.point.Y] = merged
	}

	line := lines[t.point.Y]
	next := make(Line, 0, len(line))
	next = append(next, line[:t.point.X]...)
	next = append(next, line[newX:]...)
	lines[t.point.Y] = next

	*t.lines = lines
	return nil
}

// Newline splits the current line at the cursor and moves it to the
// start of the new line below.
func (t *TextMutate) Newline() {
	lines := *t.lines
	line := lines[t.point.Y]

	rest := CopyLine(line[t.point.X:])
	lines[t.point.Y] = CopyLine(line[:t.point.X])

	pushY := t.point.Y + 1
	lines = append(lines, nil)
	copy(lines[pushY+1:], lines[pushY:])
	lines[pushY] = rest

	*t.lines = lines
	t.point.Y = pushY
	t.point.X = 0
}
