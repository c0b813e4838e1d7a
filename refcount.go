package parley

import "sync"

// scopeCount composes nested enter/leave scopes: only the outermost
// Enter and the matching innermost Leave run the callbacks. Used for
// raw-mode acquisition and cursor hiding so scoped usages nest without
// redundant toggling or premature restoration.
type scopeCount struct {
	mu    sync.Mutex
	size  int
	enter func()
	leave func()
}

func newScopeCount(enter, leave func()) *scopeCount {
	return &scopeCount{enter: enter, leave: leave}
}

func (s *scopeCount) Enter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size++
	if s.size == 1 && s.enter != nil {
		s.enter()
	}
}

func (s *scopeCount) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size--
	if s.size == 0 && s.leave != nil {
		s.leave()
	}
}

// Open reports whether no scope is currently held.
func (s *scopeCount) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size == 0
}
