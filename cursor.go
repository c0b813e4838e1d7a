package parley

import (
	"fmt"
	"strconv"
	"sync"
)

// ClearMode denotes how Clear wipes the screen.
type ClearMode int

const (
	// ClearRight wipes right-and-down of the cursor.
	ClearRight ClearMode = iota
	// ClearLeft wipes left-and-up of the cursor.
	ClearLeft
	// ClearFull wipes the whole screen.
	ClearFull
	// ClearExtend wipes the screen and the scrollback.
	ClearExtend
)

// EraseMode denotes how Erase wipes the current line.
type EraseMode int

const (
	// EraseRight wipes right of the cursor.
	EraseRight EraseMode = iota
	// EraseLeft wipes left of the cursor.
	EraseLeft
	// EraseFull wipes the whole line.
	EraseFull
)

// Cursor drives the on-screen cursor over a Terminal. Coordinates are
// 1-offset: top-left is (1, 1). Hide/Show nest through a ref-count so
// only the outermost Hide and innermost Show reach the device.
type Cursor struct {
	term   *Terminal
	hidden *scopeCount
	mu     sync.Mutex
}

func NewCursor(term *Terminal) *Cursor {
	c := &Cursor{term: term}
	c.hidden = newScopeCount(c.hide, c.show)
	return c
}

// Terminal exposes the underlying terminal.
func (c *Cursor) Terminal() *Terminal {
	return c.term
}

// Up moves up by size lines. No effect at the screen edge.
func (c *Cursor) Up(size int) {
	c.term.Send(GetControl('A', size))
}

// Down moves down by size lines.
func (c *Cursor) Down(size int) {
	c.term.Send(GetControl('B', size))
}

// Left moves left by size columns.
func (c *Cursor) Left(size int) {
	c.term.Send(GetControl('D', size))
}

// Right moves right by size columns.
func (c *Cursor) Right(size int) {
	c.term.Send(GetControl('C', size))
}

// Goto moves to an absolute column on the current line.
func (c *Cursor) Goto(x int) {
	c.term.Send(GetControl('G', x))
}

// Last moves up by size lines, to line start.
func (c *Cursor) Last(size int) {
	c.term.Send(GetControl('F', size))
}

// Next moves down by size lines, to line start.
func (c *Cursor) Next(size int) {
	c.term.Send(GetControl('E', size))
}

// Move moves to an absolute (y, x) position.
func (c *Cursor) Move(y, x int) {
	c.term.Send(GetControl('f', y, x))
}

// Clear wipes part of the screen.
func (c *Cursor) Clear(mode ClearMode) {
	c.term.Send(GetControl('J', int(mode)))
}

// Erase wipes part of the current line.
func (c *Cursor) Erase(mode EraseMode) {
	c.term.Send(GetControl('K', int(mode)))
}

// Save stores the current position. Consequent uses overwrite.
func (c *Cursor) Save() {
	c.term.Send(GetEscape('7'))
}

// Load moves to the last saved position.
func (c *Cursor) Load() {
	c.term.Send(GetEscape('8'))
}

func (c *Cursor) hide() {
	c.term.Send(GetControlPrivate('l', 25))
}

func (c *Cursor) show() {
	c.term.Send(GetControlPrivate('h', 25))
}

// Hide makes the cursor invisible until the matching Show.
func (c *Cursor) Hide() {
	c.hidden.Enter()
}

// Show undoes one Hide.
func (c *Cursor) Show() {
	c.hidden.Leave()
}

func (c *Cursor) locate() (int, int, error) {
	if err := c.term.Open(); err != nil {
		return 0, 0, err
	}
	defer c.term.Close()

	c.term.Send(GetControl('n', 6))

	var chunk []rune
	next := func() (rune, bool) {
		for len(chunk) == 0 {
			text, err := c.term.Recv()
			if err != nil || text == "" {
				return 0, false
			}
			chunk = []rune(text)
		}
		r := chunk[0]
		chunk = chunk[1:]
		return r, true
	}

	for {
		token := Parse(next)
		if token == nil {
			return 0, 0, fmt.Errorf("cursor locate: no report")
		}
		seq, ok := token.(Sequence)
		if !ok || seq.Rune != 'R' {
			continue
		}
		if len(seq.Args) < 2 {
			return 0, 0, fmt.Errorf("cursor locate: bad report args %v", seq.Args)
		}
		y, err := strconv.Atoi(seq.Args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("cursor locate: %w", err)
		}
		x, err := strconv.Atoi(seq.Args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("cursor locate: %w", err)
		}
		return y, x, nil
	}
}

// Locate queries the device for the current (y, x) position via a
// Device Status Report. Interleaved non-reply tokens are skipped.
func (c *Cursor) Locate() (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locate()
}

const measureLimit = 9999

// Measure returns the maximum (y, x) coordinates by clamping a move to
// an out-of-range position and asking where the cursor landed.
func (c *Cursor) Measure() (int, int, error) {
	c.Hide()
	defer c.Show()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Save()
	defer c.Load()

	c.Move(measureLimit, measureLimit)

	return c.locate()
}
