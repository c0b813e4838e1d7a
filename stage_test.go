package parley

import "testing"

func TestStageLinesep(t *testing.T) {
	t.Run("SingleEmptyStays", func(t *testing.T) {
		lines := Lines{{}}
		point := Point{}
		stageLinesep(false, false)(&lines, &point)
		if len(lines) != 1 {
			t.Errorf("len(lines) = %d, want 1", len(lines))
		}
	})

	t.Run("ForcedAppends", func(t *testing.T) {
		lines := Lines{{}}
		point := Point{}
		stageLinesep(true, false)(&lines, &point)
		if len(lines) != 2 {
			t.Errorf("len(lines) = %d, want 2", len(lines))
		}
	})

	t.Run("ContentAppends", func(t *testing.T) {
		lines := SplitLines("a")
		point := Point{X: 1}
		stageLinesep(false, false)(&lines, &point)
		if got := JoinLines(lines); got != "a\r\n" {
			t.Errorf("lines = %q, want %q", got, "a\r\n")
		}
		if point != (Point{X: 1}) {
			t.Errorf("point = %+v, want {0 1}", point)
		}
	})

	t.Run("PrependShiftsPoint", func(t *testing.T) {
		lines := SplitLines("a")
		point := Point{X: 1}
		stageLinesep(false, true)(&lines, &point)
		if got := JoinLines(lines); got != "\r\na" {
			t.Errorf("lines = %q, want %q", got, "\r\na")
		}
		if point != (Point{Y: 1, X: 1}) {
			t.Errorf("point = %+v, want {1 1}", point)
		}
	})
}

func TestStageFeed(t *testing.T) {
	t.Run("NilFetchStaysEmpty", func(t *testing.T) {
		feed := newStageFeed(nil)
		feed.update(nil, EventNone, nil)
		lines, point := feed.get()
		if got := JoinLines(lines); got != "" {
			t.Errorf("lines = %q, want empty", got)
		}
		if *point != (Point{}) {
			t.Errorf("point = %+v, want origin", *point)
		}
	})

	t.Run("NilPointDefaultsToEnd", func(t *testing.T) {
		feed := newStageFeed(StaticStageText("ab\r\ncd"))
		feed.update(nil, EventNone, nil)
		_, point := feed.get()
		if *point != (Point{Y: 1, X: 2}) {
			t.Errorf("point = %+v, want {1 2}", *point)
		}
	})

	t.Run("CachesBetweenUpdates", func(t *testing.T) {
		value := "first"
		feed := newStageFeed(func(Widget, Event, Token) (Lines, *Point) {
			return SplitLines(value), nil
		})
		feed.update(nil, EventNone, nil)
		value = "second"
		lines, _ := feed.get()
		if got := JoinLines(lines); got != "first" {
			t.Errorf("lines = %q, want cached %q", got, "first")
		}

		feed.update(nil, EventInsert, Text{Rune: 'x'})
		lines, _ = feed.get()
		if got := JoinLines(lines); got != "second" {
			t.Errorf("lines = %q, want refreshed %q", got, "second")
		}
	})

	t.Run("EmptyFetchNormalized", func(t *testing.T) {
		feed := newStageFeed(func(Widget, Event, Token) (Lines, *Point) {
			return nil, nil
		})
		feed.update(nil, EventNone, nil)
		lines, point := feed.get()
		if len(lines) != 1 || len(lines[0]) != 0 {
			t.Errorf("lines = %v, want one empty line", lines)
		}
		if *point != (Point{}) {
			t.Errorf("point = %+v, want origin", *point)
		}
	})
}
