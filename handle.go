package parley

import (
	"errors"
	"fmt"
)

// HookStage flags whether a hook fires before or after a control.
type HookStage int

const (
	// HookEnter fires before the control. Returning ErrVeto skips it.
	HookEnter HookStage = iota
	// HookLeave fires after the control.
	HookLeave
)

// ControlFunc acts on one event's token.
type ControlFunc func(token Token) error

// Binding pairs an event with its control.
type Binding struct {
	Event    Event
	Function ControlFunc
}

// Hook observes control invocation around both stages.
type Hook func(stage HookStage, event Event, token Token) error

// ChainHooks runs hooks in order, stopping on the first error.
func ChainHooks(hooks ...Hook) Hook {
	return func(stage HookStage, event Event, token Token) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			if err := hook(stage, event, token); err != nil {
				return err
			}
		}
		return nil
	}
}

// Handle routes events to controls, wrapped by an optional hook.
type Handle struct {
	unsafe   bool
	hook     Hook
	controls map[Event]ControlFunc
}

// NewHandle makes an empty handle. When unsafe, invoking an event with
// no control is an error instead of a no-op.
func NewHandle(unsafe bool, hook Hook) *Handle {
	return &Handle{
		unsafe:   unsafe,
		hook:     hook,
		controls: make(map[Event]ControlFunc),
	}
}

// Add registers a binding, replacing any prior one for its event.
func (h *Handle) Add(binding Binding) {
	h.controls[binding.Event] = binding.Function
}

// Invoke runs the control registered for the event. The enter hook can
// veto the control with ErrVeto; any state it changed stands. Other
// hook and control errors propagate.
func (h *Handle) Invoke(event Event, token Token) error {
	control, ok := h.controls[event]
	if !ok {
		if h.unsafe {
			return fmt.Errorf("no control for event %v", event)
		}
		return nil
	}

	if h.hook != nil {
		if err := h.hook(HookEnter, event, token); err != nil {
			if errors.Is(err, ErrVeto) {
				return nil
			}
			return err
		}
	}

	if err := control(token); err != nil {
		return err
	}

	if h.hook != nil {
		return h.hook(HookLeave, event, token)
	}
	return nil
}

// Hooks is a hook keyed by stage and event, for callers that only care
// about specific moments. Its Invoke satisfies Hook.
type Hooks struct {
	entries map[hookKey]ControlFunc
}

type hookKey struct {
	stage HookStage
	event Event
}

func NewHooks() *Hooks {
	return &Hooks{entries: make(map[hookKey]ControlFunc)}
}

// Add registers a function for one stage of one event.
func (h *Hooks) Add(stage HookStage, event Event, function ControlFunc) {
	h.entries[hookKey{stage: stage, event: event}] = function
}

func (h *Hooks) Invoke(stage HookStage, event Event, token Token) error {
	function, ok := h.entries[hookKey{stage: stage, event: event}]
	if !ok {
		return nil
	}
	return function(token)
}

func insertCells(token Token) []string {
	if text, ok := token.(Text); ok {
		return []string{string(text.Rune)}
	}
	return nil
}

// submitReady reports whether a multiline edit ends with two empty
// lines under the cursor, the submission gesture.
func submitReady(lines Lines, point Point) bool {
	if point.Y != len(lines)-1 || len(lines) <= 2 {
		return false
	}
	return len(lines[len(lines)-1]) == 0 && len(lines[len(lines)-2]) == 0
}

// TextControls is the standard editing table for a text mutate. Enter
// splits the line, or submits once two trailing empty lines pile up.
func TextControls(m *TextMutate) []Binding {
	return []Binding{
		{EventInsert, func(token Token) error {
			cells := insertCells(token)
			m.Insert(cells)
			return m.MoveX(len(cells))
		}},
		{EventArrowLeft, func(Token) error { return m.MoveX(-1) }},
		{EventArrowRight, func(Token) error { return m.MoveX(1) }},
		{EventArrowUp, func(Token) error { return m.MoveY(-1) }},
		{EventArrowDown, func(Token) error { return m.MoveY(1) }},
		{EventDeleteLeft, func(Token) error {
			if err := m.MoveX(-1); err != nil {
				return err
			}
			return m.Delete(1)
		}},
		{EventDeleteRight, func(Token) error { return m.Delete(1) }},
		{EventEnter, func(Token) error {
			if submitReady(*m.lines, *m.point) {
				trimmed := (*m.lines)[:len(*m.lines)-2]
				*m.lines = trimmed
				y := len(trimmed) - 1
				*m.point = Point{Y: y, X: len(trimmed[y])}
				return ErrTerminate
			}
			m.Newline()
			return nil
		}},
	}
}

// MeshControls is the standard traversal table for a mesh mutate.
// Inserts and deletes feed the search line; enter submits.
func MeshControls(m *MeshMutate) []Binding {
	return []Binding{
		{EventArrowLeft, func(Token) error { return m.Move(180) }},
		{EventArrowRight, func(Token) error { return m.Move(0) }},
		{EventArrowUp, func(Token) error { return m.Move(90) }},
		{EventArrowDown, func(Token) error { return m.Move(-90) }},
		{EventInsert, func(token Token) error { return m.SearchInsert(insertCells(token)) }},
		{EventDeleteLeft, func(Token) error { return m.SearchDelete(1) }},
		{EventEnter, func(Token) error { return ErrTerminate }},
	}
}

// MeshListControls inverts vertical movement so indexes grow downward,
// matching how mirrored list meshes read on screen.
func MeshListControls(m *MeshMutate) []Binding {
	return []Binding{
		{EventArrowUp, func(Token) error { return m.Move(-90) }},
		{EventArrowDown, func(Token) error { return m.Move(90) }},
	}
}
