package parley

import (
	"sync"

	"github.com/mattn/go-runewidth"
)

// wrapRows is the amount of terminal rows needed to show a line of the
// given length when the terminal wraps at limit columns.
func wrapRows(limit, length int) int {
	return length/limit + 1
}

func wrapRowsSum(limit int, sizes []int) int {
	total := 0
	for _, size := range sizes {
		total += wrapRows(limit, size)
	}
	return total
}

// wrapPoint translates a logical (row, col) into the wrapped-row index
// and column the terminal will actually show it at.
func wrapPoint(limit int, sizes []int, curY, curX int) (int, int) {
	reqX := wrapRows(limit, curX)
	usrY := wrapRowsSum(limit, sizes[:curY]) + reqX
	usrX := curX - (reqX-1)*limit
	// count to index
	usrY--
	return usrY, usrX
}

// Origin is the terminal position a live draw region last started at.
type Origin struct {
	Y, X int
}

// Registry tracks the origins of all live draw regions on one terminal
// so each can rebase its addressing when another region scrolls the
// screen. Entries are removed explicitly when a region closes.
type Registry struct {
	mu      sync.Mutex
	entries map[*Origin]struct{}
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[*Origin]struct{})}
}

func (r *Registry) Add(o *Origin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[o] = struct{}{}
}

func (r *Registry) Remove(o *Origin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, o)
}

// Shift rebases every tracked origin up by dy rows after a scroll.
func (r *Registry) Shift(dy int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for o := range r.entries {
		o.Y -= dy
	}
}

var styleReset = GetControl('m', 0)

// Render draws lines at the current cursor position, wrap-aware, and
// places the cursor on a logical point among them. Point coordinates
// here are 0-offset, unlike Cursor's.
type Render struct {
	cursor   *Cursor
	registry *Registry

	mu     sync.Mutex
	memory *Origin
}

// NewRender builds a renderer sharing the given origin registry with
// any other live regions on the same terminal.
func NewRender(cursor *Cursor, registry *Registry) *Render {
	return &Render{cursor: cursor, registry: registry}
}

// Cursor exposes the underlying cursor.
func (r *Render) Cursor() *Cursor {
	return r.cursor
}

// cellExtra is the extra screen width of one cell beyond a single
// column, for wide (East Asian) content.
func cellExtra(cell string) int {
	extra := runewidth.StringWidth(CleanText(cell)) - 1
	if extra < 0 {
		return 0
	}
	return extra
}

func (r *Render) send(lines Lines) {
	term := r.cursor.Terminal()
	for i, line := range lines {
		if i > 0 {
			term.Send(lineSep)
		}
		term.Send(JoinLine(line))
		r.cursor.Erase(EraseRight)
	}
}

func (r *Render) move(sizes []int, memory *Origin, maxX int, point Point) {
	usrY, usrX := point.Y, point.X
	if usrY == 0 {
		usrX += memory.X
	} else {
		usrX++
	}
	usrY, usrX = wrapPoint(maxX, sizes, usrY, usrX)
	usrY += memory.Y
	r.cursor.Move(usrY, usrX)
}

// Draw emits lines at the cursor, erasing each emitted row's tail and,
// when clean, everything below. When the content overflows the bottom
// the terminal scrolls, so every registered origin is rebased upward.
// A non-nil point then gets one absolute cursor move. learn records the
// starting origin for a later Back.
func (r *Render) Draw(lines Lines, point *Point, clean, learn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	curY, curX, err := r.cursor.Locate()
	if err != nil {
		return err
	}
	maxY, maxX, err := r.cursor.Measure()
	if err != nil {
		return err
	}

	if point != nil {
		for _, cell := range lines[point.Y][:point.X] {
			curX += cellExtra(cell)
		}
	}

	memory := &Origin{Y: curY, X: curX}
	if learn {
		if r.memory != nil {
			r.registry.Remove(r.memory)
		}
		r.memory = memory
		r.registry.Add(memory)
	}

	term := r.cursor.Terminal()
	term.Send(styleReset)

	r.send(lines)

	if clean {
		r.cursor.Clear(ClearRight)
	}

	sizes := make([]int, len(lines))
	for i, line := range lines {
		sizes[i] = len(line)
	}
	// the first line starts at the origin column, not column one
	sizes[0] += curX - 1

	totY := wrapRowsSum(maxX, sizes)
	gotY := maxY - curY
	extY := totY - gotY - 1
	if extY < 0 {
		extY = 0
	}
	if extY > 0 {
		r.registry.Shift(extY)
	}

	if point != nil {
		r.move(sizes, memory, maxX, *point)
	}
	return nil
}

// Memory returns the last learnt origin, or nil.
func (r *Render) Memory() *Origin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.memory
}

// Back moves the cursor to the origin of the last learnt draw and
// forgets it.
func (r *Render) Back() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memory == nil {
		return
	}
	r.cursor.Move(r.memory.Y, r.memory.X)
	r.registry.Remove(r.memory)
	r.memory = nil
}

// Close releases the renderer's registry entry.
func (r *Render) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memory != nil {
		r.registry.Remove(r.memory)
		r.memory = nil
	}
}
