package parley

import "sync"

// Sketch produces drawing information on demand. It runs only at draw
// time, after the cursor may have been returned to its origin, so it
// can react to the true baseline.
type Sketch func() (Lines, *Point)

// Screen serializes drawing on one terminal. Every print happens under
// one mutex with the cursor hidden.
type Screen struct {
	render *Render
	mu     *sync.Mutex
}

func NewScreen(render *Render) *Screen {
	return &Screen{render: render, mu: new(sync.Mutex)}
}

// NewScreenShared creates a screen that serializes its prints against
// other screens holding the same mutex. Used when a background drawer
// shares the terminal with the foreground loop.
func NewScreenShared(render *Render, mu *sync.Mutex) *Screen {
	return &Screen{render: render, mu: mu}
}

// Render exposes the underlying renderer.
func (s *Screen) Render() *Render {
	return s.render
}

// Print fetches drawing information from sketch and draws it. When re
// is set the cursor first returns to the previous draw's origin, so the
// new content fully overwrites the old.
func (s *Screen) Print(sketch Sketch, re, clean, learn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor := s.render.Cursor()
	cursor.Hide()
	defer cursor.Show()

	if re {
		s.render.Back()
	}

	lines, point := sketch()

	return s.render.Draw(lines, point, clean, learn)
}

// Close releases the underlying renderer's origin.
func (s *Screen) Close() {
	s.render.Close()
}
