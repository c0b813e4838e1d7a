package parley

import "testing"

func TestParse(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		token := ParseString("a")
		text, ok := token.(Text)
		if !ok {
			t.Fatalf("expected Text, got %T", token)
		}
		if text.Rune != 'a' {
			t.Errorf("expected 'a', got %q", text.Rune)
		}
	})

	t.Run("Control", func(t *testing.T) {
		token := ParseString("\r")
		control, ok := token.(Control)
		if !ok {
			t.Fatalf("expected Control, got %T", token)
		}
		if control.Rune != '\r' {
			t.Errorf("expected CR, got %q", control.Rune)
		}
	})

	t.Run("BareEscape", func(t *testing.T) {
		// a lone ESC with no follow-up runes is its own token
		token := ParseString("\x1b")
		escape, ok := token.(Escape)
		if !ok {
			t.Fatalf("expected Escape, got %T", token)
		}
		if escape.Rune != 0 {
			t.Errorf("expected empty escape, got %q", escape.Rune)
		}
	})

	t.Run("EscapeLetter", func(t *testing.T) {
		token := ParseString("\x1bf")
		escape, ok := token.(Escape)
		if !ok {
			t.Fatalf("expected Escape, got %T", token)
		}
		if escape.Rune != 'f' {
			t.Errorf("expected 'f', got %q", escape.Rune)
		}
	})

	t.Run("Sequence", func(t *testing.T) {
		token := ParseString("\x1b[1;31m")
		seq, ok := token.(Sequence)
		if !ok {
			t.Fatalf("expected Sequence, got %T", token)
		}
		if seq.Rune != 'm' {
			t.Errorf("expected 'm', got %q", seq.Rune)
		}
		if len(seq.Args) != 2 || seq.Args[0] != "1" || seq.Args[1] != "31" {
			t.Errorf("expected [1 31], got %v", seq.Args)
		}
	})

	t.Run("SequenceEmptyArg", func(t *testing.T) {
		token := ParseString("\x1b[;5H")
		seq, ok := token.(Sequence)
		if !ok {
			t.Fatalf("expected Sequence, got %T", token)
		}
		if len(seq.Args) != 2 || seq.Args[0] != "0" || seq.Args[1] != "5" {
			t.Errorf("expected empty arg to default to 0, got %v", seq.Args)
		}
	})

	t.Run("SequenceNoArgs", func(t *testing.T) {
		token := ParseString("\x1b[A")
		seq, ok := token.(Sequence)
		if !ok {
			t.Fatalf("expected Sequence, got %T", token)
		}
		if seq.Rune != 'A' {
			t.Errorf("expected 'A', got %q", seq.Rune)
		}
		if len(seq.Args) != 0 {
			t.Errorf("expected no args, got %v", seq.Args)
		}
	})

	t.Run("SequenceTrail", func(t *testing.T) {
		token := ParseString("\x1b[4 q")
		seq, ok := token.(Sequence)
		if !ok {
			t.Fatalf("expected Sequence, got %T", token)
		}
		if seq.Trail != " " || seq.Rune != 'q' {
			t.Errorf("expected trail %q rune 'q', got %q %q", " ", seq.Trail, seq.Rune)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if token := ParseString(""); token != nil {
			t.Errorf("expected nil, got %#v", token)
		}
	})
}

func TestGetControl(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		expect string
	}{
		{"Plain", GetControl('m', 0), "\x1b[0m"},
		{"Multi", GetControl('m', 38, 5, 12), "\x1b[38;5;12m"},
		{"NoArgs", GetControl('J'), "\x1b[J"},
		{"Private", GetControlPrivate('l', 25), "\x1b[?25l"},
		{"Escape", GetEscape('7'), "\x1b7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expect {
				t.Errorf("got %q, want %q", tt.got, tt.expect)
			}
		})
	}
}

func TestGetControlRoundTrip(t *testing.T) {
	token := ParseString(GetControl('H', 3, 7))
	seq, ok := token.(Sequence)
	if !ok {
		t.Fatalf("expected Sequence, got %T", token)
	}
	if seq.Rune != 'H' || len(seq.Args) != 2 || seq.Args[0] != "3" || seq.Args[1] != "7" {
		t.Errorf("round trip lost data: %#v", seq)
	}
}
