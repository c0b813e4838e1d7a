package parley

import "testing"

func TestStyle(t *testing.T) {
	tests := []struct {
		label string
		name  string
		want  string
	}{
		{"Reset", "reset", "\x1b[0m"},
		{"Strong", "strong", "\x1b[1m"},
		{"Underline", "underline", "\x1b[4m"},
		{"ResetFg", "reset_fg_color", "\x1b[39m"},
		{"Unknown", "sparkle", ""},
	}
	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			if got := Style(test.name); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestColorBasic(t *testing.T) {
	tests := []struct {
		label string
		path  string
		want  string
	}{
		{"Plain", "red", "\x1b[91m"},
		{"Dark", "red.dark", "\x1b[31m"},
		{"Lite", "red.lite", "\x1b[91m"},
		{"Background", "red.bg", "\x1b[101m"},
		{"DarkBackground", "red.dark.bg", "\x1b[41m"},
		{"Unknown", "mauve", ""},
		{"UnknownPart", "red.shiny", ""},
	}
	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			if got := ColorBasic(test.path); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}

	t.Run("BgHelper", func(t *testing.T) {
		if got := ColorBasicBg("blue"); got != "\x1b[104m" {
			t.Errorf("got %q", got)
		}
	})
}

func TestColorExtended(t *testing.T) {
	t.Run("Standard", func(t *testing.T) {
		if got := ColorStandard(12); got != "\x1b[38;5;12m" {
			t.Errorf("got %q", got)
		}
		if got := ColorStandardBg(200); got != "\x1b[48;5;200m" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Full", func(t *testing.T) {
		if got := ColorFull(1, 2, 3); got != "\x1b[38;2;1;2;3m" {
			t.Errorf("got %q", got)
		}
		if got := ColorFullBg(255, 0, 128); got != "\x1b[48;2;255;0;128m" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Hex", func(t *testing.T) {
		if got := ColorHex("#ff0080"); got != "\x1b[38;2;255;0;128m" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("HexInvalid", func(t *testing.T) {
		if got := ColorHex("nope"); got != "" {
			t.Errorf("got %q", got)
		}
	})
}
