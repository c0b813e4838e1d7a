package parley

import "testing"

func TestMimic(t *testing.T) {
	t.Run("NewlineToCarriageReturn", func(t *testing.T) {
		token := mimic(Control{Rune: '\n'})
		control, ok := token.(Control)
		if !ok || control.Rune != '\r' {
			t.Errorf("got %#v", token)
		}
	})

	t.Run("AltWordJump", func(t *testing.T) {
		// ESC f lands on the same token as Alt-Right
		token := mimic(Escape{Rune: 'f'})
		want := ParseString("\x1b[1;3C")
		seq, ok := token.(Sequence)
		if !ok {
			t.Fatalf("got %T", token)
		}
		if wantSeq := want.(Sequence); seq.Rune != wantSeq.Rune {
			t.Errorf("got %#v, want %#v", seq, wantSeq)
		}
	})

	t.Run("DeleteKey", func(t *testing.T) {
		token := mimic(ParseString("\x1b[3~"))
		control, ok := token.(Control)
		if !ok || control.Rune != 0x08 {
			t.Errorf("got %#v", token)
		}
	})

	t.Run("PassThrough", func(t *testing.T) {
		token := mimic(Text{Rune: 'x'})
		if text, ok := token.(Text); !ok || text.Rune != 'x' {
			t.Errorf("got %#v", token)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		token  Token
		event  Event
		expect bool
	}{
		{"Text", Text{Rune: 'a'}, EventInsert, true},
		{"Backspace", Control{Rune: 0x7f}, EventDeleteLeft, true},
		{"Enter", Control{Rune: '\r'}, EventEnter, true},
		{"Tab", Control{Rune: '\t'}, EventIndent, true},
		{"ArrowUp", ParseString("\x1b[A"), EventArrowUp, true},
		{"ArrowLeft", ParseString("\x1b[D"), EventArrowLeft, true},
		{"BareEscape", Escape{}, EventEscape, true},
		{"AltLetter", Escape{Rune: 'q'}, 0, false},
		{"UnknownControl", Control{Rune: 0x01}, 0, false},
		{"UnknownSequence", ParseString("\x1b[Z"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := classify(tt.token)
			if ok != tt.expect {
				t.Fatalf("ok = %v, want %v", ok, tt.expect)
			}
			if ok && event != tt.event {
				t.Errorf("event = %v, want %v", event, tt.event)
			}
		})
	}
}

func TestMimicThenClassify(t *testing.T) {
	// the full path a terminal Delete keypress takes
	event, ok := classify(mimic(ParseString("\x1b[3~")))
	if !ok || event != EventDeleteRight {
		t.Errorf("got %v %v", event, ok)
	}
}
