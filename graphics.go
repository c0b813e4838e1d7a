package parley

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Interface redraws a stack of live graphics on a fixed period from
// its own goroutine. It gets its own screen over the session's cursor
// and registry, so prompt draws and graphic draws rebase together and
// never interleave.
type Interface struct {
	session *Session
	screen  *Screen
	period  time.Duration
	visual  *LineVisual

	mu    sync.Mutex
	tiles []*Graphic

	stop chan struct{}
	done chan struct{}
}

func NewInterface(session *Session, period time.Duration) *Interface {
	i := &Interface{
		session: session,
		screen:  session.newScreen(),
		period:  period,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	get := func(enter, leave bool) ([]*Region, int) {
		i.mu.Lock()
		tiles := make([]*Graphic, len(i.tiles))
		copy(tiles, i.tiles)
		i.mu.Unlock()
		regions := make([]*Region, 0, len(tiles))
		for _, tile := range tiles {
			regions = append(regions, &Region{Lines: tile.frame()})
		}
		return regions, 0
	}
	i.visual = NewLineVisual(get, LineDelimit(lineSep), nil)
	return i
}

func (i *Interface) attach(g *Graphic) {
	i.mu.Lock()
	i.tiles = append(i.tiles, g)
	i.mu.Unlock()
}

func (i *Interface) frozen() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, tile := range i.tiles {
		if !tile.isFrozen() {
			return false
		}
	}
	return true
}

func (i *Interface) print(fin bool) {
	sketch := func() (Lines, *Point) {
		lines, _ := i.visual.Get(true, true)
		if fin {
			lines = append(lines, Line{})
		}
		return lines, nil
	}
	if err := i.screen.Print(sketch, true, false, true); err != nil {
		logger().Error("graphics print", "err", err)
	}
}

func (i *Interface) cycle() {
	defer close(i.done)
	ticker := time.NewTicker(i.period)
	defer ticker.Stop()
	for {
		i.print(false)
		select {
		case <-i.stop:
			return
		case <-ticker.C:
		}
	}
}

// Start hides the cursor and begins the redraw loop.
func (i *Interface) Start() {
	i.session.cursor.Hide()
	go i.cycle()
}

// Close stops the loop, prints the final frame with a trailing empty
// line and releases the cursor.
func (i *Interface) Close() {
	close(i.stop)
	<-i.done
	i.print(true)
	i.screen.Close()
	i.session.cursor.Show()
}

// Graphics of the same run share one interface; the first Start
// creates it, the last Close tears it down.
var (
	graphicsMu    sync.Mutex
	graphicsIface *Interface
)

// Graphic is one live region: a frame getter framed by a mark, prefix
// and suffix, with an optional epilogue shown once it closes.
type Graphic struct {
	mu       sync.Mutex
	get      func() string
	prefix   func() string
	suffix   func() string
	mark     string
	epilogue func() string
	phantasm Lines
	period   time.Duration
}

// GraphicConfig shapes the frame around a graphic's content.
type GraphicConfig struct {
	// Prefix and Suffix run on every frame around the content.
	Prefix func() string
	Suffix func() string

	// PrefixText and SuffixText are fixed shorthands, ignored when
	// the dynamic variant is set.
	PrefixText string
	SuffixText string

	// Mark is prepended to every frame, painted with MarkColor.
	// Empty values fall back to "! " in the theme's info color.
	Mark      string
	MarkColor string

	// Epilogue replaces the live content on the final frame. Nil
	// freezes whatever was last shown.
	Epilogue func() string

	// Period overrides the graphic's default refresh period.
	Period time.Duration
}

func staticText(dynamic func() string, static string) func() string {
	if dynamic == nil && static != "" {
		return func() string { return static }
	}
	return dynamic
}

func newGraphic(get func() string, cfg GraphicConfig, period time.Duration) *Graphic {
	mark := cfg.Mark
	if mark == "" {
		mark = "! "
	}
	markColor := cfg.MarkColor
	if markColor == "" {
		markColor = CurrentTheme().InfoColor
	}
	if cfg.Period > 0 {
		period = cfg.Period
	}
	return &Graphic{
		get:      get,
		prefix:   staticText(cfg.Prefix, cfg.PrefixText),
		suffix:   staticText(cfg.Suffix, cfg.SuffixText),
		mark:     PaintText(markColor, mark),
		epilogue: cfg.Epilogue,
		period:   period,
	}
}

func (g *Graphic) frame() Lines {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phantasm != nil {
		return CopyLines(g.phantasm)
	}
	return SplitLines(g.compose())
}

// compose runs under g.mu.
func (g *Graphic) compose() string {
	var b strings.Builder
	b.WriteString(g.mark)
	if g.prefix != nil {
		b.WriteString(g.prefix())
	}
	b.WriteString(g.get())
	if g.suffix != nil {
		b.WriteString(g.suffix())
	}
	return b.String()
}

func (g *Graphic) isFrozen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phantasm != nil
}

func (g *Graphic) freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.epilogue != nil {
		g.phantasm = SplitLines(g.mark + g.epilogue())
	} else {
		g.phantasm = SplitLines(g.compose())
	}
}

// Start begins drawing, joining the shared interface or creating it.
func (g *Graphic) Start() {
	graphicsMu.Lock()
	defer graphicsMu.Unlock()
	if graphicsIface == nil {
		graphicsIface = NewInterface(DefaultSession(), g.period)
		graphicsIface.attach(g)
		graphicsIface.Start()
		return
	}
	graphicsIface.attach(g)
}

// Close freezes this graphic's frame. Once every graphic sharing the
// interface is frozen, the interface itself shuts down.
func (g *Graphic) Close() {
	g.freeze()
	graphicsMu.Lock()
	iface := graphicsIface
	if iface == nil || !iface.frozen() {
		graphicsMu.Unlock()
		return
	}
	graphicsIface = nil
	graphicsMu.Unlock()
	iface.Close()
}

// SpinProgress is a spinner for work of unknown size.
type SpinProgress struct {
	*Graphic
	runes []string
	stage int
}

type SpinConfig struct {
	GraphicConfig

	// Runes are cycled through, one per frame.
	Runes []string
}

func NewSpinProgress(cfg SpinConfig) *SpinProgress {
	runes := cfg.Runes
	if len(runes) == 0 {
		runes = []string{"|", "/", "-", "\\"}
	}
	s := &SpinProgress{runes: runes}
	get := func() string {
		rune_ := s.runes[s.stage%len(s.runes)]
		s.stage++
		return rune_
	}
	s.Graphic = newGraphic(get, cfg.GraphicConfig, 200*time.Millisecond)
	return s
}

type progressSample struct {
	time time.Time
	size float64
}

const (
	progressDequeLimitSize = 9999
	progressDequeLimitTime = 3 * time.Second
)

// ProgressControl tracks one progress value and renders its bar line
// and info text. Safe for use from any goroutine.
type ProgressControl struct {
	mu        sync.Mutex
	total     float64
	runes     []string
	color     string
	value     float64
	deque     []progressSample
	firstTime time.Time

	valueTemplate string
	speedTemplate string
	chronTemplate string
	infoDelimit   string
	infoEpilogue  func(*ProgressControl) string
	infoExtra     func(*ProgressControl) string
	infoColor     string
	denominate    func(float64) (float64, string)
}

type ProgressControlConfig struct {
	// Runes subdivide one cell; the last is a full cell.
	Runes []string
	Color string
	Value float64

	// Info templates; {value}, {total}, {unit}, {speed}, {remain} and
	// {elapse} expand per part.
	ValueTemplate string // default "{value}/{total}{unit}"
	SpeedTemplate string // default "{speed}{unit}/s"
	ChronTemplate string // default "{remain}"
	InfoDelimit   string // default " "

	// InfoEpilogue replaces the info once the value reaches the
	// total. InfoExtra is appended while it has not.
	InfoEpilogue func(*ProgressControl) string
	InfoExtra    func(*ProgressControl) string
	InfoColor    string

	// Denominate picks the divisor and unit label for a raw value,
	// for example 1000 and "KB".
	Denominate func(float64) (float64, string)
}

func NewProgressControl(total float64, cfg ProgressControlConfig) *ProgressControl {
	runes := cfg.Runes
	if len(runes) == 0 {
		runes = []string{"━"}
	}
	pick := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}
	infoColor := cfg.InfoColor
	if infoColor == "" {
		infoColor = cfg.Color
	}
	denominate := cfg.Denominate
	if denominate == nil {
		denominate = func(float64) (float64, string) { return 1, "" }
	}
	return &ProgressControl{
		total:         total,
		runes:         runes,
		color:         cfg.Color,
		value:         cfg.Value,
		valueTemplate: pick(cfg.ValueTemplate, "{value}/{total}{unit}"),
		speedTemplate: pick(cfg.SpeedTemplate, "{speed}{unit}/s"),
		chronTemplate: pick(cfg.ChronTemplate, "{remain}"),
		infoDelimit:   pick(cfg.InfoDelimit, " "),
		infoEpilogue:  cfg.InfoEpilogue,
		infoExtra:     cfg.InfoExtra,
		infoColor:     infoColor,
		denominate:    denominate,
	}
}

// Value returns the current progress value.
func (c *ProgressControl) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Move advances the value and records the step for speed estimation.
// Samples older than the deque window are dropped.
func (c *ProgressControl) Move(size float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if c.firstTime.IsZero() {
		c.firstTime = now
	}
	c.value += size
	c.deque = append(c.deque, progressSample{time: now, size: size})
	if len(c.deque) > progressDequeLimitSize {
		c.deque = c.deque[1:]
	}
	for len(c.deque) > 0 && now.Sub(c.deque[0].time) >= progressDequeLimitTime {
		c.deque = c.deque[1:]
	}
}

func (c *ProgressControl) lastSample() (progressSample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.deque) == 0 {
		return progressSample{}, false
	}
	return c.deque[len(c.deque)-1], true
}

// line renders the bar at the given cell width.
func (c *ProgressControl) line(width int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ratio := float64(width) / c.total
	value := math.Min(float64(width), c.value*ratio)
	full := int(math.Floor(value))
	result := strings.Repeat(c.runes[len(c.runes)-1], full)
	if full < width {
		index := int(math.Floor((value - float64(full)) * float64(len(c.runes))))
		if index >= len(c.runes) {
			index = len(c.runes) - 1
		}
		result += c.runes[index]
	}
	return PaintText(c.color, result)
}

func expandTemplate(template string, parts map[string]string) string {
	for key, value := range parts {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}
	return template
}

func formatSeconds(value float64, depth int) string {
	total := int(math.Round(value))
	dividers := []int{60, 60, 24}
	depth = max(0, depth-1)
	var segments []string
	for i, divider := range dividers {
		top, sub := total/divider, total%divider
		width := len(strconv.Itoa(divider))
		segments = append(segments, fmt.Sprintf("%0*d", width, sub))
		if top == 0 && i >= depth {
			break
		}
		total = top
	}
	for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
		segments[l], segments[r] = segments[r], segments[l]
	}
	return strings.Join(segments, ":")
}

func (c *ProgressControl) infoMade() string {
	c.mu.Lock()

	totalDeno, totalUnit := c.denominate(c.total)
	parts := []string{expandTemplate(c.valueTemplate, map[string]string{
		"value": fmt.Sprintf("%.0f", c.value/totalDeno),
		"total": fmt.Sprintf("%.0f", c.total/totalDeno),
		"unit":  totalUnit,
	})}

	if len(c.deque) > 0 {
		oldest := c.deque[0]
		newest := c.deque[len(c.deque)-1]
		var moved float64
		for _, sample := range c.deque {
			moved += sample.size
		}

		elapse := newest.time.Sub(c.firstTime).Seconds()
		elapseText := formatSeconds(elapse, 2)

		span := newest.time.Sub(oldest.time).Seconds()
		var speed float64
		if span > 0 {
			speed = (moved - oldest.size) / span
		}

		remainText := "??:??"
		if speed > 0 {
			remain := math.Max((c.total-c.value)/speed, 0)
			remainText = formatSeconds(remain, 2)
		}

		speedDeno, speedUnit := c.denominate(speed)
		parts = append(parts, expandTemplate(c.speedTemplate, map[string]string{
			"speed": fmt.Sprintf("%.2f", speed/speedDeno),
			"unit":  speedUnit,
		}))
		parts = append(parts, expandTemplate(c.chronTemplate, map[string]string{
			"remain": remainText,
			"elapse": elapseText,
		}))
	}

	extra := c.infoExtra
	c.mu.Unlock()

	if extra != nil {
		if text := extra(c); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, c.infoDelimit)
}

// Info renders the current info text, switching to the epilogue once
// the value reaches the total.
func (c *ProgressControl) Info() string {
	c.mu.Lock()
	done := c.value >= c.total
	epilogue := c.infoEpilogue
	color := c.infoColor
	c.mu.Unlock()

	var info string
	if done && epilogue != nil {
		info = epilogue(c)
	} else {
		info = c.infoMade()
	}
	return PaintText(color, info)
}

// MultiLineProgress overlays several progress controls on one line,
// longest bar at the bottom of the pile, ties broken by recency.
type MultiLineProgress struct {
	*Graphic
	controls []*ProgressControl
}

type MultiLineProgressConfig struct {
	GraphicConfig

	Width      int    // bar width in cells, default 50
	Empty      string // fill for unreached cells, default " "
	PrefixWall string // default "|"
	SuffixWall string // default "|"
}

func multiProgressSuffix(controls []*ProgressControl) func() string {
	return func() string {
		infos := make([]string, len(controls))
		for i, control := range controls {
			infos[i] = control.Info()
		}
		return " " + strings.Join(infos, " | ")
	}
}

func NewMultiLineProgress(controls []*ProgressControl, cfg MultiLineProgressConfig) *MultiLineProgress {
	width := cfg.Width
	if width <= 0 {
		width = 50
	}
	empty := cfg.Empty
	if empty == "" {
		empty = " "
	}
	prefixWall := cfg.PrefixWall
	if prefixWall == "" {
		prefixWall = "|"
	}
	suffixWall := cfg.SuffixWall
	if suffixWall == "" {
		suffixWall = "|"
	}
	if cfg.Suffix == nil && cfg.SuffixText == "" {
		cfg.Suffix = multiProgressSuffix(controls)
	}

	m := &MultiLineProgress{controls: controls}

	type rest struct {
		line Line
		time time.Time
	}
	get := func() string {
		rests := make([]rest, 0, len(controls))
		for _, control := range controls {
			entry := rest{line: SplitLine(control.line(width))}
			if sample, ok := control.lastSample(); ok {
				entry.time = sample.time
			}
			rests = append(rests, entry)
		}
		sort.SliceStable(rests, func(i, j int) bool {
			if len(rests[i].line) != len(rests[j].line) {
				return len(rests[i].line) > len(rests[j].line)
			}
			return rests[i].time.Before(rests[j].time)
		})
		main := fillCells(empty, width)
		for _, entry := range rests {
			copy(main, entry.line)
		}
		return prefixWall + JoinLine(main) + suffixWall
	}

	m.Graphic = newGraphic(get, cfg.GraphicConfig, 100*time.Millisecond)
	return m
}

// Controls exposes the managed controls.
func (m *MultiLineProgress) Controls() []*ProgressControl {
	return m.controls
}

// LineProgress is a MultiLineProgress with a single internal control.
type LineProgress struct {
	*MultiLineProgress
}

type LineProgressConfig struct {
	MultiLineProgressConfig
	Control ProgressControlConfig
}

func NewLineProgress(total float64, cfg LineProgressConfig) *LineProgress {
	control := NewProgressControl(total, cfg.Control)
	return &LineProgress{
		MultiLineProgress: NewMultiLineProgress([]*ProgressControl{control}, cfg.MultiLineProgressConfig),
	}
}

// Move advances the underlying control.
func (p *LineProgress) Move(size float64) {
	p.controls[0].Move(size)
}
