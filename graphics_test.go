package parley

import "testing"

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		label string
		value float64
		depth int
		want  string
	}{
		{"Zero", 0, 2, "00:00"},
		{"UnderMinute", 59, 2, "00:59"},
		{"Rounds", 59.6, 2, "01:00"},
		{"MinutesSeconds", 75, 2, "01:15"},
		{"Hours", 3700, 2, "01:01:40"},
		{"ShallowDepth", 5, 1, "05"},
	}
	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			if got := formatSeconds(test.value, test.depth); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	got := expandTemplate("{value}/{total}{unit}", map[string]string{
		"value": "3",
		"total": "10",
		"unit":  "MB",
	})
	if got != "3/10MB" {
		t.Errorf("got %q", got)
	}
}

func TestProgressControlLine(t *testing.T) {
	control := func(value float64) *ProgressControl {
		return NewProgressControl(10, ProgressControlConfig{
			Runes: []string{"-", "="},
			Value: value,
		})
	}

	t.Run("Empty", func(t *testing.T) {
		if got := control(0).line(10); got != "-" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Partial", func(t *testing.T) {
		// five full cells plus the lightest partial rune
		if got := control(5).line(10); got != "=====-" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("HalfCell", func(t *testing.T) {
		if got := control(5.5).line(10); got != "======" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Full", func(t *testing.T) {
		if got := control(10).line(10); got != "==========" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Overshoot", func(t *testing.T) {
		if got := control(12).line(10); got != "==========" {
			t.Errorf("got %q", got)
		}
	})
}

func TestProgressControlInfo(t *testing.T) {
	t.Run("ValueTemplate", func(t *testing.T) {
		control := NewProgressControl(10, ProgressControlConfig{Value: 3})
		if got := CleanText(control.Info()); got != "3/10" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Denominated", func(t *testing.T) {
		control := NewProgressControl(2000, ProgressControlConfig{
			Value:      1000,
			Denominate: func(float64) (float64, string) { return 1000, "MB" },
		})
		if got := CleanText(control.Info()); got != "1/2MB" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("EpilogueOnceDone", func(t *testing.T) {
		control := NewProgressControl(10, ProgressControlConfig{
			Value:        10,
			InfoEpilogue: func(*ProgressControl) string { return "done" },
		})
		if got := CleanText(control.Info()); got != "done" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ExtraAppended", func(t *testing.T) {
		control := NewProgressControl(10, ProgressControlConfig{
			Value:     3,
			InfoExtra: func(*ProgressControl) string { return "eta soon" },
		})
		if got := CleanText(control.Info()); got != "3/10 eta soon" {
			t.Errorf("got %q", got)
		}
	})
}

func TestMultiLineProgress(t *testing.T) {
	a := NewProgressControl(10, ProgressControlConfig{Runes: []string{"#"}, Value: 7})
	b := NewProgressControl(10, ProgressControlConfig{Runes: []string{"*"}, Value: 3})
	m := NewMultiLineProgress([]*ProgressControl{a, b}, MultiLineProgressConfig{Width: 10})

	// the shorter bar overwrites the longer one's head
	got := CleanText(JoinLines(m.frame()))
	want := "! |****####  | 7/10 | 3/10"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if controls := m.Controls(); len(controls) != 2 || controls[0] != a {
		t.Errorf("controls %v", controls)
	}
}

func TestGraphicFreeze(t *testing.T) {
	t.Run("EpilogueReplaces", func(t *testing.T) {
		cfg := SpinConfig{}
		cfg.Epilogue = func() string { return "done" }
		g := NewSpinProgress(cfg)
		if g.isFrozen() {
			t.Fatal("frozen before close")
		}
		g.freeze()
		if !g.isFrozen() {
			t.Fatal("expected frozen")
		}
		if got := CleanText(JoinLines(g.frame())); got != "! done" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("NoEpilogueKeepsLastFrame", func(t *testing.T) {
		cfg := SpinConfig{}
		cfg.PrefixText = "at "
		g := NewSpinProgress(cfg)
		first := CleanText(JoinLines(g.frame()))
		if first != "! at |" {
			t.Fatalf("first frame %q", first)
		}
		g.freeze()
		frozen := CleanText(JoinLines(g.frame()))
		if frozen != "! at /" {
			t.Errorf("frozen frame %q", frozen)
		}
		if again := CleanText(JoinLines(g.frame())); again != frozen {
			t.Errorf("phantasm advanced to %q", again)
		}
	})
}
