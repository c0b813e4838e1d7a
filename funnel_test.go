package parley

import (
	"testing"
)

func TestTextMin(t *testing.T) {
	t.Run("HorizontalEnd", func(t *testing.T) {
		lines := Lines{{"a", "b"}}
		point := Point{Y: 0, X: 2}
		textMinHorizontal(JustEnd, 5, " ", &lines, &point)
		if got := JoinLines(lines); got != "   ab" {
			t.Errorf("got %q", got)
		}
		if point.X != 5 {
			t.Errorf("point.X = %d, want 5", point.X)
		}
	})

	t.Run("HorizontalNegativeSize", func(t *testing.T) {
		// negative means the longest line
		lines := Lines{{"a", "b", "c"}, {"x"}}
		point := Point{}
		textMinHorizontal(JustStart, -1, " ", &lines, &point)
		if got := JoinLine(lines[1]); got != "x  " {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Vertical", func(t *testing.T) {
		lines := Lines{{"a", "b"}}
		point := Point{}
		textMinVertical(JustEnd, 3, " ", &lines, &point)
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if point.Y != 2 {
			t.Errorf("point.Y = %d, want 2", point.Y)
		}
		if got := JoinLine(lines[0]); got != "  " {
			t.Errorf("pad width %q", got)
		}
	})

	t.Run("NoPadWhenBigEnough", func(t *testing.T) {
		lines := Lines{{"a", "b", "c"}}
		point := Point{}
		textMinHorizontal(JustEnd, 2, " ", &lines, &point)
		if got := JoinLines(lines); got != "abc" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTextMax(t *testing.T) {
	t.Run("HorizontalKeepsPoint", func(t *testing.T) {
		lines := Lines{SplitLine("abcdefg")}
		point := Point{Y: 0, X: 5}
		textMaxHorizontal(3, &lines, &point)
		if got := JoinLines(lines); got != "efg" {
			t.Errorf("got %q", got)
		}
		if point.X != 1 {
			t.Errorf("point.X = %d, want 1", point.X)
		}
	})

	t.Run("HorizontalAtStart", func(t *testing.T) {
		lines := Lines{SplitLine("abcdefg")}
		point := Point{Y: 0, X: 0}
		textMaxHorizontal(3, &lines, &point)
		if got := JoinLines(lines); got != "abc" {
			t.Errorf("got %q", got)
		}
		if point.X != 0 {
			t.Errorf("point.X = %d, want 0", point.X)
		}
	})

	t.Run("Vertical", func(t *testing.T) {
		lines := SplitLines("a\r\nb\r\nc\r\nd")
		point := Point{Y: 3, X: 0}
		textMaxVertical(2, &lines, &point)
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if got := JoinLines(lines); got != "c\r\nd" {
			t.Errorf("got %q", got)
		}
		if point.Y != 1 {
			t.Errorf("point.Y = %d, want 1", point.Y)
		}
	})
}

func TestTextBloat(t *testing.T) {
	lines := Lines{{"a", "b"}}
	point := Point{}
	textBloatHorizontal(JustStart, 2, ".", &lines, &point)
	if got := JoinLines(lines); got != "ab.." {
		t.Errorf("got %q", got)
	}
}

func TestTextBlock(t *testing.T) {
	lines := SplitLines("....\r\n....\r\n....")
	point := Point{}
	textBlock(Border{
		Top: "-", Bottom: "-", Left: "|", Right: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	}, &lines, &point)
	want := "+--+\r\n|..|\r\n+--+"
	if got := JoinLines(lines); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func region(value string) *Region {
	return &Region{Lines: SplitLines(value)}
}

func TestMeshGridFill(t *testing.T) {
	tiles := map[Spot]*Region{
		{Y: 0, X: 0}: region("aa"),
		{Y: 1, X: 1}: region("b"),
	}
	point := Point{}
	meshGridFill(GridFill{}, tiles, &point)

	if len(tiles) != 4 {
		t.Fatalf("expected the bounding box filled, have %d tiles", len(tiles))
	}
	// every tile in column 0 is as wide as "aa"
	if got := maxLineSize(tiles[Spot{Y: 1, X: 0}].Lines); got != 2 {
		t.Errorf("column width %d, want 2", got)
	}
	// every tile in row 1 is as wide as its column, 1 for column 1
	if got := maxLineSize(tiles[Spot{Y: 1, X: 1}].Lines); got != 1 {
		t.Errorf("column width %d, want 1", got)
	}
}

func TestMeshMax(t *testing.T) {
	build := func() map[Spot]*Region {
		tiles := map[Spot]*Region{}
		for i := 0; i < 5; i++ {
			tiles[Spot{Y: i, X: 0}] = region("x")
		}
		return tiles
	}

	t.Run("WindowAroundPoint", func(t *testing.T) {
		tiles := build()
		point := Point{Y: 2, X: 0}
		MeshMax(0, 3)(tiles, &point)
		if len(tiles) != 3 {
			t.Fatalf("expected 3 tiles, have %d", len(tiles))
		}
		for _, y := range []int{1, 2, 3} {
			if _, ok := tiles[Spot{Y: y, X: 0}]; !ok {
				t.Errorf("missing row %d", y)
			}
		}
	})

	t.Run("ClampsAtEdge", func(t *testing.T) {
		tiles := build()
		point := Point{Y: 4, X: 0}
		MeshMax(0, 3)(tiles, &point)
		for _, y := range []int{2, 3, 4} {
			if _, ok := tiles[Spot{Y: y, X: 0}]; !ok {
				t.Errorf("missing row %d", y)
			}
		}
	})
}

func TestMeshPoint(t *testing.T) {
	tiles := map[Spot]*Region{
		{Y: 0, X: 0}: region("aa"),
		{Y: 1, X: 0}: region("bb"),
	}
	point := Point{Y: 1, X: 0}
	MeshPoint("> ", "  ")(tiles, &point)

	if got := JoinLines(tiles[Spot{Y: 1, X: 0}].Lines); got != "> bb" {
		t.Errorf("focused tile %q", got)
	}
	if got := JoinLines(tiles[Spot{Y: 0, X: 0}].Lines); got != "  aa" {
		t.Errorf("evaded tile %q", got)
	}
	if tiles[Spot{Y: 1, X: 0}].Point.X != 2 {
		t.Errorf("point not shifted past the mark")
	}
}

func TestMeshLight(t *testing.T) {
	tiles := map[Spot]*Region{
		{Y: 0, X: 0}: region("a"),
		{Y: 1, X: 0}: region("b"),
	}
	point := Point{Y: 0, X: 0}
	MeshLight("\x1b[36m", "")(tiles, &point)

	if got := JoinLines(tiles[Spot{Y: 0, X: 0}].Lines); got != "\x1b[36ma\x1b[0m" {
		t.Errorf("focused tile %q", got)
	}
	if got := JoinLines(tiles[Spot{Y: 1, X: 0}].Lines); got != "b" {
		t.Errorf("evaded tile %q", got)
	}
}

func TestMeshFlip(t *testing.T) {
	tiles := map[Spot]*Region{
		{Y: 0, X: 0}: region("a"),
		{Y: 2, X: 1}: region("b"),
	}
	point := Point{Y: 2, X: 1}
	MeshFlip()(tiles, &point)

	if _, ok := tiles[Spot{Y: -2, X: -1}]; !ok {
		t.Error("expected mirrored spot")
	}
	if point.Y != -2 || point.X != -1 {
		t.Errorf("point %v", point)
	}
}

func TestMeshDelimit(t *testing.T) {
	tiles := map[Spot]*Region{
		{Y: 0, X: 0}: region("a"),
		{Y: 0, X: 1}: region("b"),
	}
	point := Point{}
	MeshDelimit(1, "/")(tiles, &point)

	if got := JoinLines(tiles[Spot{Y: 0, X: 0}].Lines); got != "a/" {
		t.Errorf("inner tile %q", got)
	}
	if got := JoinLines(tiles[Spot{Y: 0, X: 1}].Lines); got != "b" {
		t.Errorf("outer tile %q", got)
	}
}

func TestLineDelimit(t *testing.T) {
	tiles := []*Region{region("a"), region("b")}
	index := 0
	LineDelimit("-")(&tiles, &index)

	if len(tiles) != 3 {
		t.Fatalf("expected 3 regions, have %d", len(tiles))
	}
	if got := JoinLines(tiles[1].Lines); got != "-" {
		t.Errorf("delimiter %q", got)
	}
}

func TestChainText(t *testing.T) {
	lines := Lines{{"a"}}
	point := Point{}
	ChainText(
		TextMinHorizontal(JustEnd, 2, " "),
		TextMinHorizontal(JustEnd, 3, "."),
	)(&lines, &point)
	if got := JoinLines(lines); got != ". a" {
		t.Errorf("got %q", got)
	}
}
