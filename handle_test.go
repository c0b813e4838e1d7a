package parley

import (
	"errors"
	"strings"
	"testing"
)

func controlFor(controls []Binding, event Event) ControlFunc {
	for _, control := range controls {
		if control.Event == event {
			return control.Function
		}
	}
	return nil
}

func TestHandleInvoke(t *testing.T) {
	t.Run("DispatchesControl", func(t *testing.T) {
		handle := NewHandle(false, nil)
		var got Token
		handle.Add(Binding{EventInsert, func(token Token) error {
			got = token
			return nil
		}})

		if err := handle.Invoke(EventInsert, Text{Rune: 'a'}); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if text, ok := got.(Text); !ok || text.Rune != 'a' {
			t.Errorf("token = %v, want Text{'a'}", got)
		}
	})

	t.Run("MissingControlNoop", func(t *testing.T) {
		handle := NewHandle(false, nil)
		if err := handle.Invoke(EventEnter, nil); err != nil {
			t.Errorf("Invoke() error = %v, want nil", err)
		}
	})

	t.Run("MissingControlUnsafe", func(t *testing.T) {
		handle := NewHandle(true, nil)
		err := handle.Invoke(EventEnter, nil)
		if err == nil || !strings.Contains(err.Error(), "no control") {
			t.Errorf("Invoke() error = %v, want no-control error", err)
		}
	})

	t.Run("EnterVetoSkipsControl", func(t *testing.T) {
		ran := false
		handle := NewHandle(false, func(stage HookStage, event Event, token Token) error {
			if stage == HookEnter {
				return ErrVeto
			}
			return nil
		})
		handle.Add(Binding{EventEnter, func(Token) error {
			ran = true
			return nil
		}})

		if err := handle.Invoke(EventEnter, nil); err != nil {
			t.Errorf("Invoke() error = %v, want nil", err)
		}
		if ran {
			t.Error("control ran despite veto")
		}
	})

	t.Run("EnterErrorPropagates", func(t *testing.T) {
		boom := errors.New("boom")
		ran := false
		handle := NewHandle(false, func(stage HookStage, event Event, token Token) error {
			if stage == HookEnter {
				return boom
			}
			return nil
		})
		handle.Add(Binding{EventEnter, func(Token) error {
			ran = true
			return nil
		}})

		if err := handle.Invoke(EventEnter, nil); !errors.Is(err, boom) {
			t.Errorf("Invoke() error = %v, want boom", err)
		}
		if ran {
			t.Error("control ran despite hook error")
		}
	})

	t.Run("LeaveRunsAfterControl", func(t *testing.T) {
		var order []string
		handle := NewHandle(false, func(stage HookStage, event Event, token Token) error {
			if stage == HookEnter {
				order = append(order, "enter")
			} else {
				order = append(order, "leave")
			}
			return nil
		})
		handle.Add(Binding{EventEnter, func(Token) error {
			order = append(order, "control")
			return nil
		}})

		if err := handle.Invoke(EventEnter, nil); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		want := []string{"enter", "control", "leave"}
		if len(order) != len(want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("order = %v, want %v", order, want)
				break
			}
		}
	})

	t.Run("ControlErrorSkipsLeave", func(t *testing.T) {
		leave := false
		handle := NewHandle(false, func(stage HookStage, event Event, token Token) error {
			if stage == HookLeave {
				leave = true
			}
			return nil
		})
		handle.Add(Binding{EventEnter, func(Token) error { return ErrTerminate }})

		if err := handle.Invoke(EventEnter, nil); !errors.Is(err, ErrTerminate) {
			t.Errorf("Invoke() error = %v, want ErrTerminate", err)
		}
		if leave {
			t.Error("leave hook ran after control error")
		}
	})
}

func TestChainHooks(t *testing.T) {
	t.Run("RunsInOrder", func(t *testing.T) {
		var order []int
		hook := ChainHooks(
			func(HookStage, Event, Token) error { order = append(order, 1); return nil },
			nil,
			func(HookStage, Event, Token) error { order = append(order, 2); return nil },
		)
		if err := hook(HookEnter, EventNone, nil); err != nil {
			t.Fatalf("hook error = %v", err)
		}
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("order = %v, want [1 2]", order)
		}
	})

	t.Run("StopsAtFirstError", func(t *testing.T) {
		reached := false
		hook := ChainHooks(
			func(HookStage, Event, Token) error { return ErrVeto },
			func(HookStage, Event, Token) error { reached = true; return nil },
		)
		if err := hook(HookEnter, EventNone, nil); !errors.Is(err, ErrVeto) {
			t.Errorf("hook error = %v, want ErrVeto", err)
		}
		if reached {
			t.Error("later hook ran after error")
		}
	})
}

func TestHooks(t *testing.T) {
	hooks := NewHooks()
	var hits []string
	hooks.Add(HookEnter, EventEnter, func(Token) error {
		hits = append(hits, "enter")
		return nil
	})

	if err := hooks.Invoke(HookLeave, EventEnter, nil); err != nil {
		t.Errorf("Invoke(leave) error = %v", err)
	}
	if err := hooks.Invoke(HookEnter, EventInsert, nil); err != nil {
		t.Errorf("Invoke(other event) error = %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("hooks fired for wrong keys: %v", hits)
	}

	if err := hooks.Invoke(HookEnter, EventEnter, nil); err != nil {
		t.Errorf("Invoke(enter) error = %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("hits = %v, want one enter", hits)
	}
}

func TestTextControlsEnter(t *testing.T) {
	t.Run("SplitsLine", func(t *testing.T) {
		lines := SplitLines("ab")
		point := Point{Y: 0, X: 1}
		m := NewTextMutate(&lines, &point)
		enter := controlFor(TextControls(m), EventEnter)

		if err := enter(nil); err != nil {
			t.Fatalf("enter error = %v", err)
		}
		if got := JoinLines(lines); got != "a\r\nb" {
			t.Errorf("lines = %q, want %q", got, "a\r\nb")
		}
		if point != (Point{Y: 1, X: 0}) {
			t.Errorf("point = %+v, want {1 0}", point)
		}
	})

	t.Run("SubmitsOnTwoTrailingEmpties", func(t *testing.T) {
		lines := SplitLines("ab\r\n\r\n")
		point := Point{Y: 2, X: 0}
		m := NewTextMutate(&lines, &point)
		enter := controlFor(TextControls(m), EventEnter)

		if err := enter(nil); !errors.Is(err, ErrTerminate) {
			t.Fatalf("enter error = %v, want ErrTerminate", err)
		}
		if got := JoinLines(lines); got != "ab" {
			t.Errorf("lines = %q, want %q", got, "ab")
		}
		if point != (Point{Y: 0, X: 2}) {
			t.Errorf("point = %+v, want {0 2}", point)
		}
	})

	t.Run("SingleBlankStillSplits", func(t *testing.T) {
		lines := SplitLines("ab\r\n")
		point := Point{Y: 1, X: 0}
		m := NewTextMutate(&lines, &point)
		enter := controlFor(TextControls(m), EventEnter)

		if err := enter(nil); err != nil {
			t.Fatalf("enter error = %v", err)
		}
		if got := len(lines); got != 3 {
			t.Errorf("len(lines) = %d, want 3", got)
		}
	})
}
