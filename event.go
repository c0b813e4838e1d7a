package parley

import "sync"

// Event is the closed set of semantic edit events produced from
// terminal input.
type Event int

// EventNone marks the absence of input, used when stage content is
// fetched outside the input loop.
const EventNone Event = -1

const (
	EventInsert Event = iota
	EventArrowLeft
	EventArrowRight
	EventArrowUp
	EventArrowDown
	EventDeleteLeft
	EventDeleteRight
	EventEscape
	EventIndent
	EventEnter
)

var eventNames = map[Event]string{
	EventInsert:      "insert",
	EventArrowLeft:   "arrow_left",
	EventArrowRight:  "arrow_right",
	EventArrowUp:     "arrow_up",
	EventArrowDown:   "arrow_down",
	EventDeleteLeft:  "delete_left",
	EventDeleteRight: "delete_right",
	EventEscape:      "escape",
	EventIndent:      "indent",
	EventEnter:       "enter",
}

func (e Event) String() string {
	return eventNames[e]
}

// mimic normalizes terminal quirks onto canonical tokens. The table is
// acyclic: every substitution lands on a token with no further entry.
func mimic(token Token) Token {
	for {
		switch t := token.(type) {
		case Control:
			if t.Rune == '\n' {
				token = Control{Rune: '\r'}
				continue
			}
		case Escape:
			switch t.Rune {
			case 'f':
				// Alt-f word jump, same as Alt-Right
				token = ParseString("\x1b[1;3C")
				continue
			case 'b':
				token = ParseString("\x1b[1;3D")
				continue
			}
		case Sequence:
			if t.Rune == '~' {
				// Delete key, handled as a forward backspace
				token = Control{Rune: 0x08}
				continue
			}
		}
		return token
	}
}

var controlEvents = map[rune]Event{
	0x7f: EventDeleteLeft,
	0x08: EventDeleteRight,
	0x0d: EventEnter,
	0x09: EventIndent,
	0x10: EventArrowUp,
	0x0e: EventArrowDown,
}

var sequenceEvents = map[rune]Event{
	'A': EventArrowUp,
	'B': EventArrowDown,
	'C': EventArrowRight,
	'D': EventArrowLeft,
}

// classify maps a normalized token onto an event. Unmatched non-text
// tokens are dropped (ok=false).
func classify(token Token) (Event, bool) {
	switch t := token.(type) {
	case Text:
		return EventInsert, true
	case Control:
		event, ok := controlEvents[t.Rune]
		return event, ok
	case Escape:
		if t.Rune == 0 {
			return EventEscape, true
		}
		return 0, false
	case Sequence:
		event, ok := sequenceEvents[t.Rune]
		return event, ok
	}
	return 0, false
}

// Source reads raw terminal input and translates it into events. Token
// assembly switches the terminal to zero-latency poll mode while a
// multi-byte sequence is in flight, and back to blocking once a full
// token exists, which is also how a bare ESC press is told apart from
// the start of a longer sequence.
type Source struct {
	term  *Terminal
	runes []rune
	mu    sync.Mutex
}

func NewSource(term *Terminal) *Source {
	return &Source{term: term}
}

func (s *Source) fill(block bool) error {
	var text string
	var err error
	if block {
		text, err = s.term.Recv()
	} else {
		s.term.Wait(false)
		text, err = s.term.Recv()
		s.term.Wait(true)
	}
	if err != nil {
		return err
	}
	if block && text == "\x1b" {
		// a chunk holding ESC alone is a bare escape press, not the
		// start of a sequence: leave the buffer empty
		return nil
	}
	s.runes = append(s.runes, []rune(text)...)
	return nil
}

func (s *Source) readToken() (Token, error) {
	if len(s.runes) == 0 {
		if err := s.fill(true); err != nil {
			return nil, err
		}
	}

	first := true
	next := func() (rune, bool) {
		if len(s.runes) == 0 {
			if first {
				return 0, false
			}
			if err := s.fill(false); err != nil || len(s.runes) == 0 {
				return 0, false
			}
		}
		first = false
		r := s.runes[0]
		s.runes = s.runes[1:]
		return r, true
	}

	token := Parse(next)
	if token == nil {
		return Escape{}, nil
	}
	return token, nil
}

// Read blocks until one classifiable event arrives and returns it with
// the normalized token that produced it.
func (s *Source) Read() (Event, Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		token, err := s.readToken()
		if err != nil {
			return 0, nil, err
		}
		token = mimic(token)
		event, ok := classify(token)
		if !ok {
			continue
		}
		return event, token, nil
	}
}
