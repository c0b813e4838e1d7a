package parley

import (
	"errors"
	"os"
	"sync"
)

// Session ties one terminal to the full pipeline: raw IO, cursor,
// origin registry, renderer and screen. All foreground prompts and
// background graphics of a session share its cursor and registry, so
// scroll rebasing stays consistent across drawers.
type Session struct {
	term     *Terminal
	cursor   *Cursor
	registry *Registry
	source   *Source
	screen   *Screen
	drawMu   *sync.Mutex
}

// NewSession builds a session over an input/output file pair.
func NewSession(in, out *os.File) *Session {
	term := NewTerminal(in, out)
	cursor := NewCursor(term)
	registry := NewRegistry()
	mu := new(sync.Mutex)
	render := NewRender(cursor, registry)
	return &Session{
		term:     term,
		cursor:   cursor,
		registry: registry,
		source:   NewSource(term),
		screen:   NewScreenShared(render, mu),
		drawMu:   mu,
	}
}

func (s *Session) Terminal() *Terminal { return s.term }

func (s *Session) Cursor() *Cursor { return s.cursor }

func (s *Session) Screen() *Screen { return s.screen }

// newScreen creates an extra screen over the session's cursor and
// registry, serialized against the main one.
func (s *Session) newScreen() *Screen {
	return NewScreenShared(NewRender(s.cursor, s.registry), s.drawMu)
}

var (
	sessionOnce sync.Once
	session     *Session
)

// DefaultSession returns the process-wide session over stdin/stdout.
func DefaultSession() *Session {
	sessionOnce.Do(func() {
		session = NewSession(os.Stdin, os.Stdout)
	})
	return session
}

// Site selects where the cursor rests while a widget is live.
type Site int

const (
	SiteBody Site = iota
	SiteInfo
)

// StageText produces a chunk of stage content. It is fetched once
// before the first draw (with EventNone and a nil token) and again
// after every successfully handled event. A nil point defaults to the
// end of the text.
type StageText func(w Widget, event Event, token Token) (Lines, *Point)

// StaticStageText shows fixed text regardless of widget state.
func StaticStageText(value string) StageText {
	return func(Widget, Event, Token) (Lines, *Point) {
		return SplitLines(value), nil
	}
}

// stageFeed caches the latest fetch so redraws between events stay
// stable.
type stageFeed struct {
	fetch StageText
	lines Lines
	point Point
}

func newStageFeed(fetch StageText) *stageFeed {
	if fetch == nil {
		fetch = StaticStageText("")
	}
	return &stageFeed{fetch: fetch, lines: Lines{{}}}
}

func (f *stageFeed) update(w Widget, event Event, token Token) {
	lines, point := f.fetch(w, event, token)
	if len(lines) == 0 {
		lines = Lines{{}}
	}
	if point == nil {
		last := len(lines) - 1
		point = &Point{Y: last, X: len(lines[last])}
	}
	f.lines, f.point = lines, *point
}

func (f *stageFeed) get() (Lines, *Point) {
	point := f.point
	return f.lines, &point
}

// stageLinesep separates stage sections with an empty line. Without
// force, single empty sections stay unseparated.
func stageLinesep(force, pre bool) TextFunnel {
	return func(lines *Lines, point *Point) {
		if !force && len(*lines) <= 1 && !anyLine(*lines) {
			return
		}
		if pre {
			*lines = append(Lines{{}}, *lines...)
			if point != nil {
				point.Y++
			}
		} else {
			*lines = append(*lines, Line{})
		}
	}
}

func anyLine(lines Lines) bool {
	for _, line := range lines {
		if len(line) > 0 {
			return true
		}
	}
	return false
}

// stageVisual assembles the full prompt frame: a head mesh of info and
// hint, the widget body, and a transient warn foot. The returned warn
// function swaps the foot content for the next draw.
func stageVisual(multiMaybe, multiForce bool, site Site, info, hint *stageFeed, body func(enter, leave bool) (Lines, *Point), theme Theme) (*LineVisual, func(Lines)) {
	warnLines := Lines{{}}
	warn := func(lines Lines) {
		warnLines = CopyLines(lines)
	}

	infoLeave := ChainText(
		TextPaint(theme.InfoColor),
		func(lines *Lines, point *Point) {
			if site != SiteInfo && !anyLine(*lines) {
				return
			}
			textBloatHorizontal(JustStart, 1, " ", lines, point)
		},
	)
	infoVisual := NewTextVisual(info.get, nil, infoLeave)
	hintVisual := NewTextVisual(hint.get, nil, TextPaint(theme.HintColor))
	warnVisual := NewTextVisual(func() (Lines, *Point) {
		return warnLines, &Point{}
	}, nil, TextPaint(theme.WarnColor))

	region := func(get func(enter, leave bool) (Lines, *Point), enter, leave bool) *Region {
		lines, point := get(enter, leave)
		tile := &Region{Lines: lines}
		if point != nil {
			tile.Point = *point
		}
		return tile
	}

	headGet := func(enter, leave bool) (map[Spot]*Region, Point) {
		tiles := map[Spot]*Region{
			{Y: 0, X: 0}: region(infoVisual.Get, enter, leave),
			{Y: 0, X: 1}: region(hintVisual.Get, enter, leave),
		}
		return tiles, Point{}
	}
	var headLeave TextFunnel
	if multiMaybe {
		headLeave = stageLinesep(multiForce, false)
	}
	headVisual := NewMeshVisual(headGet, MeshGridFill(GridFill{}), headLeave)

	footGet := func(enter, leave bool) (map[Spot]*Region, Point) {
		tiles := map[Spot]*Region{
			{Y: 0, X: 0}: region(warnVisual.Get, enter, leave),
		}
		return tiles, Point{}
	}
	footVisual := NewMeshVisual(footGet, MeshGridFill(GridFill{}), stageLinesep(false, true))

	index := 1
	if site == SiteInfo {
		index = 0
	}

	mainGet := func(enter, leave bool) ([]*Region, int) {
		tiles := []*Region{
			region(headVisual.Get, enter, leave),
			region(body, enter, leave),
			region(footVisual.Get, enter, leave),
		}
		return tiles, index
	}
	return NewLineVisual(mainGet, nil, nil), warn
}

// StartConfig shapes how a widget is hosted on screen.
type StartConfig struct {
	// Show is printed once before the widget, prefixed with the mark.
	// It stays on screen after submission.
	Show string

	// Mark and MarkColor override the theme's prompt marker.
	Mark      string
	MarkColor string

	// Info and Hint feed the head line. InfoText/HintText are static
	// shorthands, ignored when the dynamic variant is set.
	Info     StageText
	InfoText string
	Hint     StageText
	HintText string

	// MultiPre places the body on its own line while the widget is
	// live. MultiAft places the reply on its own line afterwards.
	MultiPre bool
	MultiAft bool

	// Site is where the cursor rests during use.
	Site Site

	// Reply renders the submitted result into the lasting response
	// line. Nil leaves no response.
	Reply func(w Widget, result any) string
}

func (cfg *StartConfig) feed(dynamic StageText, static string) *stageFeed {
	if dynamic == nil && static != "" {
		dynamic = StaticStageText(static)
	}
	return newStageFeed(dynamic)
}

// Start hosts a widget until it submits, aborts out, or the terminal
// fails. It owns the raw-mode scope, the read-dispatch-redraw loop,
// rollback on abort, and the final reply print. Escape unwinds with
// ErrEscape, leaving whatever was drawn cleared below the cursor.
func Start(widget Widget, cfg StartConfig) (any, error) {
	return DefaultSession().Start(widget, cfg)
}

func (s *Session) Start(widget Widget, cfg StartConfig) (any, error) {
	theme := CurrentTheme()

	if err := s.term.Open(); err != nil {
		return nil, err
	}
	defer s.term.Close()

	if cfg.Show != "" {
		mark := cfg.Mark
		if mark == "" {
			mark = theme.Mark
		}
		markColor := cfg.MarkColor
		if markColor == "" {
			markColor = theme.MarkColor
		}
		show := PaintText(markColor, mark) + cfg.Show
		showLines := SplitLines(show)
		if err := s.screen.Print(func() (Lines, *Point) {
			last := len(showLines) - 1
			return showLines, &Point{Y: last, X: len(showLines[last])}
		}, false, false, false); err != nil {
			return nil, err
		}
	}

	info := cfg.feed(cfg.Info, cfg.InfoText)
	hint := cfg.feed(cfg.Hint, cfg.HintText)

	visual, warn := stageVisual(cfg.MultiPre, cfg.Show != "", cfg.Site, info, hint, widget.Sketch, theme)
	sketch := func() (Lines, *Point) {
		return visual.Get(true, true)
	}

	update := func(event Event, token Token) {
		info.update(widget, event, token)
		hint.update(widget, event, token)
	}
	update(EventNone, nil)

	crash := func(err error) (any, error) {
		s.cursor.Clear(ClearRight)
		return nil, err
	}

	if err := s.screen.Print(sketch, false, false, true); err != nil {
		return crash(err)
	}

	logger().Debug("stage start", "site", cfg.Site)

	var result any
	for {
		event, token, err := s.source.Read()
		if err != nil {
			return crash(err)
		}
		if event == EventEscape {
			return crash(ErrEscape)
		}

		memory := widget.Mutate().State()
		err = widget.Invoke(event, token)

		var abort *Abort
		switch {
		case err == nil:
			warn(Lines{{}})
			update(event, token)

		case errors.Is(err, ErrTerminate):
			value, rerr := widget.Resolve()
			if rerr == nil {
				result = value
				logger().Debug("stage submit")
				goto done
			}
			if !errors.As(rerr, &abort) {
				return crash(rerr)
			}
			widget.Mutate().Restore(memory)
			if abort.Message != "" {
				warn(SplitLines(abort.Message))
			}
			s.term.Ring()

		case IsMutateError(err):
			s.term.Ring()
			continue // skip the redraw, nothing changed

		case errors.As(err, &abort):
			widget.Mutate().Restore(memory)
			if abort.Message != "" {
				warn(SplitLines(abort.Message))
			}
			s.term.Ring()

		default:
			return crash(err)
		}

		if perr := s.screen.Print(sketch, true, false, true); perr != nil {
			return crash(perr)
		}
	}

done:
	final := func() (Lines, *Point) {
		var lines Lines
		if cfg.Reply != nil {
			lines = SplitLines(cfg.Reply(widget, result))
		}
		if cfg.MultiAft && cfg.Show != "" {
			lines = append(Lines{{}}, lines...)
		}
		lines = append(lines, Line{})
		return lines, nil
	}
	if err := s.screen.Print(final, true, true, true); err != nil {
		return crash(err)
	}
	return result, nil
}

// SearchStageInfo feeds the head line from a mesh widget's live search
// argument, painting the unmatched portion with the theme's search
// color. Suitable as StartConfig.Info for filterable lists.
func SearchStageInfo(mesh *MeshMutate) StageText {
	color := CurrentTheme().SearchColor
	return func(Widget, Event, Token) (Lines, *Point) {
		search := mesh.SearchMutate()
		if search == nil {
			return Lines{{}}, nil
		}
		lines := CopyLines(search.Lines())
		point := *search.Point()
		if ignore := mesh.SearchIgnoreIndex(); ignore != nil {
			at := IndexToPoint(lines, *ignore)
			for y := at.Y; y < len(lines); y++ {
				enter := 0
				if y == at.Y {
					enter = at.X
				}
				PaintLine(color, lines[y], enter, -1)
			}
		}
		return lines, &point
	}
}
