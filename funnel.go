package parley

// Funnels transform shape data in place before (enter) or after
// (leave) formatting. Text funnels fit any leave stage; mesh and line
// funnels run on the enter stage of their visual.

// Just denotes the alignment of padding funnels.
type Just int

const (
	// JustStart aligns left or top.
	JustStart Just = iota
	// JustEnd aligns right or bottom.
	JustEnd
	// JustCenter aligns in the middle.
	JustCenter
)

func justSplit(just Just, padding int) (int, int) {
	switch just {
	case JustEnd:
		return padding, 0
	case JustCenter:
		lead := padding / 2
		return lead, padding - lead
	default:
		return 0, padding
	}
}

// ChainText runs text funnels in order.
func ChainText(funnels ...TextFunnel) TextFunnel {
	return func(lines *Lines, point *Point) {
		for _, funnel := range funnels {
			if funnel == nil {
				continue
			}
			funnel(lines, point)
		}
	}
}

// ChainMesh runs mesh funnels in order.
func ChainMesh(funnels ...MeshFunnel) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		for _, funnel := range funnels {
			if funnel == nil {
				continue
			}
			funnel(tiles, point)
		}
	}
}

// TextReplace swaps every cell through the given function.
func TextReplace(replace func(string) string) TextFunnel {
	return func(lines *Lines, point *Point) {
		for _, line := range *lines {
			for i := range line {
				line[i] = replace(line[i])
			}
		}
	}
}

// TextReplaceRune swaps every cell for a fixed rune, for concealed
// input.
func TextReplaceRune(rune_ string) TextFunnel {
	return TextReplace(func(string) string { return rune_ })
}

func maxLineSize(lines Lines) int {
	max := 0
	for _, line := range lines {
		if len(line) > max {
			max = len(line)
		}
	}
	return max
}

func fillCells(rune_ string, size int) Line {
	line := make(Line, size)
	for i := range line {
		line[i] = rune_
	}
	return line
}

func textMinHorizontal(just Just, size int, rune_ string, lines *Lines, point *Point) {
	limit := size
	if limit < 0 {
		limit = maxLineSize(*lines)
	}
	for y, line := range *lines {
		padding := limit - len(line)
		if padding <= 0 {
			continue
		}
		left, right := justSplit(just, padding)
		next := make(Line, 0, limit)
		next = append(next, fillCells(rune_, left)...)
		next = append(next, line...)
		next = append(next, fillCells(rune_, right)...)
		(*lines)[y] = next
		if point != nil && y == point.Y {
			point.X += left
		}
	}
}

// TextMinHorizontal pads every line to at least size cells. A negative
// size means the longest line's length.
func TextMinHorizontal(just Just, size int, rune_ string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textMinHorizontal(just, size, rune_, lines, point)
	}
}

func textMinVertical(just Just, size int, rune_ string, lines *Lines, point *Point) {
	limit := size
	if limit < 0 {
		limit = len(*lines)
	}
	padding := limit - len(*lines)
	if padding <= 0 {
		return
	}
	top, bottom := justSplit(just, padding)
	width := maxLineSize(*lines)

	next := make(Lines, 0, limit)
	for i := 0; i < top; i++ {
		next = append(next, fillCells(rune_, width))
	}
	next = append(next, *lines...)
	for i := 0; i < bottom; i++ {
		next = append(next, fillCells(rune_, width))
	}
	*lines = next

	if point != nil {
		point.Y += top
	}
}

// TextMinVertical pads to at least size lines.
func TextMinVertical(just Just, size int, rune_ string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textMinVertical(just, size, rune_, lines, point)
	}
}

func textMaxHorizontal(size int, lines *Lines, point *Point) {
	curX := point.X
	curLine := (*lines)[point.Y]

	maxMinX := len(curLine) - size
	cutX := size / 2

	minX := curX - cutX
	if minX > maxMinX {
		minX = maxMinX
	}
	if minX < 0 {
		minX = 0
	}
	maxX := minX + size
	if maxX > len(curLine) {
		maxX = len(curLine)
	}
	if maxX < size {
		maxX = size
	}

	for y, line := range *lines {
		hi := maxX
		if hi > len(line) {
			hi = len(line)
		}
		lo := minX
		if lo > hi {
			lo = hi
		}
		(*lines)[y] = CopyLine(line[lo:hi])
	}

	point.X = curX - minX
}

// TextMaxHorizontal clips every line to a size-wide viewport keeping
// the point visible.
func TextMaxHorizontal(size int) TextFunnel {
	return func(lines *Lines, point *Point) {
		textMaxHorizontal(size, lines, point)
	}
}

func textMaxVertical(size int, lines *Lines, point *Point) {
	curY := point.Y

	maxMinY := len(*lines) - size
	cutY := size / 2

	minY := curY - cutY
	if minY > maxMinY {
		minY = maxMinY
	}
	if minY < 0 {
		minY = 0
	}
	maxY := minY + size
	if maxY > len(*lines) {
		maxY = len(*lines)
	}
	if maxY < size {
		maxY = size
	}
	if maxY > len(*lines) {
		maxY = len(*lines)
	}
	if minY > maxY {
		minY = maxY
	}

	*lines = append(Lines{}, (*lines)[minY:maxY]...)
	point.Y = curY - minY
}

// TextMaxVertical clips to a size-tall viewport keeping the point
// visible.
func TextMaxVertical(size int) TextFunnel {
	return func(lines *Lines, point *Point) {
		textMaxVertical(size, lines, point)
	}
}

// TextMaxDynamic clips both axes to sizes fetched at draw time,
// usually the live terminal extents.
func TextMaxDynamic(get func() (int, int)) TextFunnel {
	return func(lines *Lines, point *Point) {
		sizeY, sizeX := get()
		textMaxVertical(sizeY, lines, point)
		textMaxHorizontal(sizeX, lines, point)
	}
}

func textBloatHorizontal(just Just, size int, rune_ string, lines *Lines, point *Point) {
	push := maxLineSize(*lines)
	for i, cell := range splitCells(rune_) {
		textMinHorizontal(just, size+push+i, cell, lines, point)
	}
}

// TextBloatHorizontal grows every line size cells past the longest.
func TextBloatHorizontal(just Just, size int, rune_ string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textBloatHorizontal(just, size, rune_, lines, point)
	}
}

func textBloatVertical(just Just, size int, rune_ string, lines *Lines, point *Point) {
	push := len(*lines)
	for i, cell := range splitCells(rune_) {
		textMinVertical(just, size+push+i, cell, lines, point)
	}
}

// TextBloatVertical grows the line count by size.
func TextBloatVertical(just Just, size int, rune_ string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textBloatVertical(just, size, rune_, lines, point)
	}
}

// Border holds the overwrite runes of TextBlock. Empty entries are
// skipped.
type Border struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

func textBlock(b Border, lines *Lines, point *Point) {
	ls := *lines
	if len(ls) == 0 {
		return
	}
	if b.Top != "" {
		ls[0] = fillCells(b.Top, len(ls[0]))
	}
	if b.Bottom != "" {
		ls[len(ls)-1] = fillCells(b.Bottom, len(ls[len(ls)-1]))
	}
	if b.Left != "" {
		for _, line := range ls {
			if len(line) > 0 {
				line[0] = b.Left
			}
		}
	}
	if b.Right != "" {
		for _, line := range ls {
			if len(line) > 0 {
				line[len(line)-1] = b.Right
			}
		}
	}
	top, bottom := ls[0], ls[len(ls)-1]
	if b.TopLeft != "" && len(top) > 0 {
		top[0] = b.TopLeft
	}
	if b.TopRight != "" && len(top) > 0 {
		top[len(top)-1] = b.TopRight
	}
	if b.BottomLeft != "" && len(bottom) > 0 {
		bottom[0] = b.BottomLeft
	}
	if b.BottomRight != "" && len(bottom) > 0 {
		bottom[len(bottom)-1] = b.BottomRight
	}
}

// TextBlock overwrites the outermost cells with border runes. Bloat
// the content first to avoid overwriting it.
func TextBlock(b Border) TextFunnel {
	return func(lines *Lines, point *Point) {
		textBlock(b, lines, point)
	}
}

func textPaint(color string, lines *Lines, point *Point) {
	if color == "" {
		return
	}
	for _, line := range *lines {
		PaintLine(color, line, -1, -1)
	}
}

// TextPaint paints every cell.
func TextPaint(color string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textPaint(color, lines, point)
	}
}

// TextPaintFunc paints every cell with a color fetched at draw time.
func TextPaintFunc(color func() string) TextFunnel {
	return func(lines *Lines, point *Point) {
		textPaint(color(), lines, point)
	}
}

// MeshDelegate runs a text transform on each tile whose spot passes
// check (nil allows all).
func MeshDelegate(check func(Spot, *Region) bool, apply func(Spot, *Region)) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		for spot, tile := range tiles {
			if check != nil && !check(spot, tile) {
				continue
			}
			apply(spot, tile)
		}
	}
}

// MeshDelimit pads text between tiles along an axis: axis 1 appends
// horizontally, axis 0 vertically. The outermost group stays bare.
func MeshDelimit(axis int, text string) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		maxA := 0
		first := true
		for spot := range tiles {
			if a := spot.axis(axis); first || a > maxA {
				maxA = a
				first = false
			}
		}
		apply := func(spot Spot, tile *Region) {
			if axis == 1 {
				textBloatHorizontal(JustStart, 1, text, &tile.Lines, &tile.Point)
			} else {
				textBloatVertical(JustStart, 1, text, &tile.Lines, &tile.Point)
			}
		}
		check := func(spot Spot, tile *Region) bool {
			return spot.axis(axis) < maxA
		}
		MeshDelegate(check, apply)(tiles, point)
	}
}

// MeshFocal runs a function on every tile flagged with whether it is
// the pointed one.
func MeshFocal(apply func(current bool, tile *Region)) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		main := Spot{Y: point.Y, X: point.X}
		for spot, tile := range tiles {
			apply(spot == main, tile)
		}
	}
}

// MeshLight paints the pointed tile one color and the rest another.
func MeshLight(focusColor, evadeColor string) MeshFunnel {
	return MeshFocal(func(current bool, tile *Region) {
		color := evadeColor
		if current {
			color = focusColor
		}
		textPaint(color, &tile.Lines, &tile.Point)
	})
}

// MeshLightFunc is MeshLight with colors fetched at draw time. A nil
// getter or empty color leaves those tiles unpainted.
func MeshLightFunc(focusColor, evadeColor func() string) MeshFunnel {
	resolve := func(get func() string) string {
		if get == nil {
			return ""
		}
		return get()
	}
	return MeshFocal(func(current bool, tile *Region) {
		var color string
		if current {
			color = resolve(focusColor)
		} else {
			color = resolve(evadeColor)
		}
		textPaint(color, &tile.Lines, &tile.Point)
	})
}

// MeshPoint prepends a marker to the pointed tile's first line and
// another to all others, aligning the rest of each tile's lines.
func MeshPoint(focusMark, evadeMark string) MeshFunnel {
	return MeshFocal(func(current bool, tile *Region) {
		mark := evadeMark
		if current {
			mark = focusMark
		}
		cells := splitCells(mark)
		fill := fillCells(" ", len(cells))
		for i, line := range tile.Lines {
			lead := fill
			if i == 0 {
				lead = cells
			}
			tile.Lines[i] = append(append(Line{}, lead...), line...)
		}
		tile.Point.X += len(cells)
	})
}

// MeshMax keeps at most size tile groups along an axis, scrolling the
// window to keep the pointed group visible.
func MeshMax(axis, size int) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		if len(tiles) == 0 {
			return
		}
		size--

		curA := point.Y
		if axis == 1 {
			curA = point.X
		}

		first := true
		minA, maxA := 0, 0
		for spot := range tiles {
			a := spot.axis(axis)
			if first {
				minA, maxA = a, a
				first = false
				continue
			}
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
		}

		cutA := size / 2

		lo := curA - cutA
		if lo < minA {
			lo = minA
		}
		if lo > maxA-size {
			lo = maxA - size
		}
		hi := lo + size
		if hi > maxA {
			hi = maxA
		}

		for spot := range tiles {
			a := spot.axis(axis)
			if a >= lo && a <= hi {
				continue
			}
			delete(tiles, spot)
		}
	}
}

// MeshMin pads the mesh to at least size groups along an axis by
// filling new tiles from fill (nil fills empty tiles).
func MeshMin(axis, size int, just Just, fill func(Spot) Lines) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		if len(tiles) == 0 {
			return
		}
		oth := (axis + 1) % 2

		first := true
		minA, maxA, minO, maxO := 0, 0, 0, 0
		for spot := range tiles {
			a, o := spot.axis(axis), spot.axis(oth)
			if first {
				minA, maxA, minO, maxO = a, a, o, o
				first = false
				continue
			}
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
			if o < minO {
				minO = o
			}
			if o > maxO {
				maxO = o
			}
		}

		padding := size - (maxA - minA)
		if padding <= 0 {
			return
		}
		lead, trail := justSplit(just, padding)

		place := func(a int) {
			for o := minO; o <= maxO; o++ {
				spot := spotOn(axis, a, o)
				if _, ok := tiles[spot]; ok {
					continue
				}
				var lines Lines
				if fill != nil {
					lines = fill(spot)
				}
				if lines == nil {
					lines = Lines{{}}
				}
				tiles[spot] = &Region{Lines: lines}
			}
		}
		for a := minA - lead; a < minA; a++ {
			place(a)
		}
		for a := maxA + 1; a <= maxA+trail; a++ {
			place(a)
		}
	}
}

// GridFill controls how MeshGridFill aligns and grows tiles.
type GridFill struct {
	JustVertical   Just
	RuneVertical   string
	JustHorizontal Just
	RuneHorizontal string
	MinVertical    int
	MinHorizontal  int
	PushTop        int
	PushBottom     int
	PushLeft       int
	PushRight      int
}

func meshGridFill(cfg GridFill, tiles map[Spot]*Region, point *Point) {
	if len(tiles) == 0 {
		return
	}
	if cfg.RuneVertical == "" {
		cfg.RuneVertical = " "
	}
	if cfg.RuneHorizontal == "" {
		cfg.RuneHorizontal = " "
	}

	sizesVertical := map[int]int{}
	sizesHorizontal := map[int]int{}

	minY, maxY := 0, 0
	minX, maxX := 0, 0
	first := true
	for spot, tile := range tiles {
		if first {
			minY, maxY, minX, maxX = spot.Y, spot.Y, spot.X, spot.X
			first = false
		}
		if spot.Y < minY {
			minY = spot.Y
		}
		if spot.Y > maxY {
			maxY = spot.Y
		}
		if spot.X < minX {
			minX = spot.X
		}
		if spot.X > maxX {
			maxX = spot.X
		}
		sizeV := len(tile.Lines)
		if sizeV < cfg.MinVertical {
			sizeV = cfg.MinVertical
		}
		if sizeV > sizesVertical[spot.Y] {
			sizesVertical[spot.Y] = sizeV
		}
		sizeH := maxLineSize(tile.Lines)
		if sizeH < cfg.MinHorizontal {
			sizeH = cfg.MinHorizontal
		}
		if sizeH > sizesHorizontal[spot.X] {
			sizesHorizontal[spot.X] = sizeH
		}
	}

	for y := maxY + cfg.PushTop; y >= minY-cfg.PushBottom; y-- {
		for x := minX - cfg.PushLeft; x <= maxX+cfg.PushRight; x++ {
			spot := Spot{Y: y, X: x}
			tile, ok := tiles[spot]
			if !ok {
				tile = &Region{Lines: Lines{{}}}
				tiles[spot] = tile
			}
			textMinHorizontal(cfg.JustHorizontal, sizesHorizontal[x], cfg.RuneHorizontal, &tile.Lines, &tile.Point)
			textMinVertical(cfg.JustVertical, sizesVertical[y], cfg.RuneVertical, &tile.Lines, &tile.Point)
		}
	}
}

// MeshGridFill fills the missing spots of the mesh's bounding box and
// grows every tile so rows and columns align.
func MeshGridFill(cfg GridFill) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		meshGridFill(cfg, tiles, point)
	}
}

// GridRunes holds the drawing set of MeshGrid.
type GridRunes struct {
	Horizontal  string
	Vertical    string
	Cross       string
	CrossTop    string
	CrossBottom string
	CrossLeft   string
	CrossRight  string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

// DefaultGridRunes is the usual box-drawing set.
var DefaultGridRunes = GridRunes{
	Horizontal:  "─",
	Vertical:    "│",
	Cross:       "┼",
	CrossTop:    "┬",
	CrossBottom: "┴",
	CrossLeft:   "├",
	CrossRight:  "┤",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// the junction rune left-and-above a spot depends on which of its
// neighbors exist in the original mesh
func gridCorner(runes GridRunes, spots map[Spot]bool, spot Spot) (string, string, string) {
	current := spots[Spot{Y: spot.Y, X: spot.X}]
	top := spots[Spot{Y: spot.Y + 1, X: spot.X}]
	left := spots[Spot{Y: spot.Y, X: spot.X - 1}]
	topLeft := spots[Spot{Y: spot.Y + 1, X: spot.X - 1}]

	runeTop := " "
	if current || top {
		runeTop = runes.Horizontal
	}
	runeLeft := " "
	if current || left {
		runeLeft = runes.Vertical
	}

	var corner string
	switch {
	case top && left:
		corner = runes.Cross
	case current:
		switch {
		case topLeft:
			corner = runes.Cross
		case top:
			corner = runes.CrossLeft
		case left:
			corner = runes.CrossTop
		default:
			corner = runes.TopLeft
		}
	case topLeft:
		switch {
		case top:
			corner = runes.CrossBottom
		case left:
			corner = runes.CrossRight
		default:
			corner = runes.BottomRight
		}
	case top:
		corner = runes.BottomLeft
	case left:
		corner = runes.TopRight
	default:
		corner = " "
	}

	return runeTop, runeLeft, corner
}

// MeshGrid draws box borders around every tile. The color paints the
// grid runes only.
func MeshGrid(runes GridRunes, color string, cfg GridFill) MeshFunnel {
	paint := func(rune_ string) string {
		return PaintRune(color, rune_)
	}

	return func(tiles map[Spot]*Region, point *Point) {
		if len(tiles) == 0 {
			return
		}

		spots := make(map[Spot]bool, len(tiles))
		for spot := range tiles {
			spots[spot] = true
		}

		cfg.PushTop = 0
		cfg.PushBottom = 1
		cfg.PushLeft = 0
		cfg.PushRight = 1
		meshGridFill(cfg, tiles, point)

		minY, maxY, minX, maxX := 0, 0, 0, 0
		first := true
		for spot := range tiles {
			if first {
				minY, maxY, minX, maxX = spot.Y, spot.Y, spot.X, spot.X
				first = false
				continue
			}
			if spot.Y < minY {
				minY = spot.Y
			}
			if spot.Y > maxY {
				maxY = spot.Y
			}
			if spot.X < minX {
				minX = spot.X
			}
			if spot.X > maxX {
				maxX = spot.X
			}
		}

		for spot, tile := range tiles {
			runeTop, runeLeft, corner := gridCorner(runes, spots, spot)
			if spot.Y > minY {
				textBloatVertical(JustEnd, 1, " ", &tile.Lines, &tile.Point)
			}
			textBloatHorizontal(JustEnd, 1, " ", &tile.Lines, &tile.Point)
			textBlock(Border{
				Top:     paint(runeTop),
				Left:    paint(runeLeft),
				TopLeft: paint(corner),
			}, &tile.Lines, &tile.Point)
		}

		// the extra bottom/right groups only carry the closing border:
		// fold their runes into the neighboring tiles, columns before
		// rows, closing corner last
		for y := maxY; y > minY; y-- {
			spot := Spot{Y: y, X: maxX}
			tile := tiles[spot]
			old := tiles[Spot{Y: y, X: maxX - 1}]
			for i := range old.Lines {
				if i >= len(tile.Lines) {
					break
				}
				old.Lines[i] = append(old.Lines[i], tile.Lines[i][0])
			}
			delete(tiles, spot)
		}
		for x := minX; x < maxX; x++ {
			spot := Spot{Y: minY, X: x}
			tile := tiles[spot]
			old := tiles[Spot{Y: minY + 1, X: x}]
			old.Lines = append(old.Lines, tile.Lines[0])
			delete(tiles, spot)
		}
		corner := Spot{Y: minY, X: maxX}
		tile := tiles[corner]
		old := tiles[Spot{Y: minY + 1, X: maxX - 1}]
		last := len(old.Lines) - 1
		old.Lines[last] = append(old.Lines[last], tile.Lines[0][0])
		delete(tiles, corner)
	}
}

// MeshHead adds index labels along an axis, outside the mesh.
func MeshHead(axis int, get func(index int) Lines, just *Just, skip, min int) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		if len(tiles) == 0 {
			return
		}
		oth := (axis + 1) % 2

		first := true
		minA, maxA, minO, maxO := 0, 0, 0, 0
		for spot := range tiles {
			a, o := spot.axis(axis), spot.axis(oth)
			if first {
				minA, maxA, minO, maxO = a, a, o, o
				first = false
				continue
			}
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
			if o < minO {
				minO = o
			}
			if o > maxO {
				maxO = o
			}
		}

		size := maxA - minA + 1
		if size < min {
			size = min
		}

		var all []int
		useJust := JustEnd
		if axis == 1 {
			useJust = JustStart
			for a := minA; a < minA+size; a++ {
				all = append(all, a)
			}
		} else {
			for a := maxA; a > maxA-size; a-- {
				all = append(all, a)
			}
		}
		if just != nil {
			useJust = *just
		}

		curO := maxO + 1
		if useJust == JustEnd {
			curO = minO - 1
		}

		for i, a := range all {
			if i < skip {
				continue
			}
			lines := get(a)
			if lines == nil {
				continue
			}
			tiles[spotOn(axis, a, curO)] = &Region{Lines: lines}
		}
	}
}

// MeshFlip mirrors the mesh coordinates, turning the natural upward y
// growth into screen order.
func MeshFlip() MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		flipped := make(map[Spot]*Region, len(tiles))
		for spot, tile := range tiles {
			flipped[Spot{Y: -spot.Y, X: -spot.X}] = tile
		}
		clear(tiles)
		for spot, tile := range flipped {
			tiles[spot] = tile
		}
		point.Y = -point.Y
		point.X = -point.X
	}
}

// LineDelimit inserts text between consecutive regions.
func LineDelimit(text string) LineFunnel {
	return func(tiles *[]*Region, index *int) {
		main := SplitLines(text)
		limit := len(*tiles)*2 - 1
		for i := 1; i < limit; i += 2 {
			region := &Region{Lines: CopyLines(main)}
			next := append((*tiles)[:i:i], append([]*Region{region}, (*tiles)[i:]...)...)
			*tiles = next
			if *index > i {
				continue
			}
			*index++
		}
	}
}
