package parley

import (
	"errors"
	"sort"
)

// A Widget couples a mutate, a handle and a visual into one
// interactive unit. Invoke feeds it events; Sketch draws it; Resolve
// extracts the submitted value.
type Widget interface {
	Invoke(event Event, token Token) error
	Sketch(enter, leave bool) (Lines, *Point)
	Resolve() (any, error)
	Mutate() Mutate
}

type baseWidget struct {
	mutate   Mutate
	handle   *Handle
	visual   Visual
	delegate func(Event) bool
	validate func(any) error
	resolve  func() (any, error)

	memo    any
	memoSet bool
}

// WidgetConfig carries the behaviors shared by every widget kind.
type WidgetConfig struct {
	// Hook observes every invocation; the enter stage may veto.
	Hook Hook
	// Delegate decides per event whether to act at all.
	Delegate func(Event) bool
	// Validate inspects the result on submission; an Abort rejects it.
	Validate func(any) error
}

func newBaseWidget(mutate Mutate, visual Visual, controls []Binding, cfg WidgetConfig, resolve func() (any, error)) *baseWidget {
	w := &baseWidget{
		mutate:   mutate,
		visual:   visual,
		delegate: cfg.Delegate,
		validate: cfg.Validate,
		resolve:  resolve,
	}
	w.handle = NewHandle(false, cfg.Hook)
	for _, control := range controls {
		w.handle.Add(control)
	}
	return w
}

func (w *baseWidget) Mutate() Mutate {
	return w.mutate
}

// Resolve returns the memoized result when one is cached; any
// invocation since drops the cache.
func (w *baseWidget) Resolve() (any, error) {
	if w.memoSet {
		return w.memo, nil
	}
	result, err := w.resolve()
	if err != nil {
		return nil, err
	}
	w.memo = result
	w.memoSet = true
	return result, nil
}

// setResult plants a result directly, bypassing resolution.
func (w *baseWidget) setResult(result any) {
	w.memo = result
	w.memoSet = true
}

// setResolve swaps the resolution of a composed widget.
func (w *baseWidget) setResolve(resolve func() (any, error)) {
	w.resolve = resolve
}

func (w *baseWidget) invokeValidate() error {
	if w.validate == nil {
		return nil
	}
	result, err := w.Resolve()
	if err != nil {
		return err
	}
	return w.validate(result)
}

func (w *baseWidget) Invoke(event Event, token Token) error {
	if w.delegate != nil && !w.delegate(event) {
		return nil
	}

	w.memoSet = false

	err := w.handle.Invoke(event, token)
	if errors.Is(err, ErrTerminate) {
		if failure := w.invokeValidate(); failure != nil {
			return failure
		}
	}
	return err
}

func (w *baseWidget) Sketch(enter, leave bool) (Lines, *Point) {
	return w.visual.Get(enter, leave)
}

// TextWidget is the base of text-like widgets: a text mutate behind
// the standard editing controls.
type TextWidget struct {
	*baseWidget
	text *TextMutate
}

// TextWidgetConfig extends WidgetConfig for text widgets.
type TextWidgetConfig struct {
	WidgetConfig
	// Multi keeps enter splitting lines; submission then takes two
	// trailing empty lines. Otherwise enter submits directly.
	Multi       bool
	FunnelEnter TextFunnel
	FunnelLeave TextFunnel
}

// NewTextWidget edits lines starting at point.
func NewTextWidget(lines Lines, point Point, cfg TextWidgetConfig) *TextWidget {
	mutate := NewTextMutate(&lines, &point)

	visual := NewTextVisual(func() (Lines, *Point) {
		return lines, &point
	}, cfg.FunnelEnter, cfg.FunnelLeave)

	hook := cfg.Hook
	if !cfg.Multi {
		hooks := NewHooks()
		hooks.Add(HookEnter, EventEnter, func(Token) error {
			return ErrTerminate
		})
		hook = ChainHooks(cfg.Hook, hooks.Invoke)
	}

	base := WidgetConfig{Hook: hook, Delegate: cfg.Delegate, Validate: cfg.Validate}

	w := &TextWidget{text: mutate}
	w.baseWidget = newBaseWidget(mutate, visual, TextControls(mutate), base, func() (any, error) {
		return JoinLines(lines), nil
	})
	return w
}

// Text is the underlying text mutate.
func (w *TextWidget) Text() *TextMutate {
	return w.text
}

// Focus decides whether events reach the mesh itself or the tile under
// its cursor.
type Focus struct {
	switchable bool
	focused    bool
	when       func(Event) bool
}

// FocusNever keeps every event on the mesh.
func FocusNever() Focus {
	return Focus{when: func(Event) bool { return false }}
}

// FocusBlurred starts on the mesh; indent hands control to the pointed
// tile, and the tile gives it back by submitting.
func FocusBlurred() Focus {
	return Focus{switchable: true}
}

// FocusFocused starts on the pointed tile.
func FocusFocused() Focus {
	return Focus{switchable: true, focused: true}
}

// FocusWhen routes each event by predicate, with no switching.
func FocusWhen(when func(Event) bool) Focus {
	return Focus{when: when}
}

// Focused reports whether events currently reach the pointed tile.
func (f *Focus) Focused(event Event) bool {
	if f.when != nil {
		return f.when(event)
	}
	return f.focused
}

// MeshWidget traverses a mesh of child widgets.
type MeshWidget struct {
	*baseWidget
	mesh  *MeshMutate
	focus Focus
}

// MeshWidgetConfig extends WidgetConfig for mesh widgets.
type MeshWidgetConfig struct {
	WidgetConfig
	// Search scores tiles against the typed filter. Nil defaults to
	// FuzzySearch over each tile's plain sketch.
	Search Scorer
	// Create materializes absent tiles during movement. An error
	// rejects the move.
	Create func(Spot) (Widget, error)
	// Scout limits which spots movement may land on.
	Scout func(Spot) bool
	// Rigid fails moves with no target instead of wrapping.
	Rigid bool
	// Clean drops all other tiles whenever one is created.
	Clean bool
	Focus Focus

	FunnelEnter MeshFunnel
	FunnelLeave TextFunnel
}

// WidgetSketchText flattens a widget's plain sketch for scoring.
func WidgetSketchText(tile any) Line {
	widget := tile.(Widget)
	lines, _ := widget.Sketch(false, false)
	var flat Line
	for _, line := range lines {
		flat = append(flat, line...)
	}
	return flat
}

func minSpot(tiles map[Spot]Widget) Spot {
	var best Spot
	first := true
	for spot := range tiles {
		if first || spot.Y < best.Y || (spot.Y == best.Y && spot.X < best.X) {
			best = spot
			first = false
		}
	}
	return best
}

// NewMeshWidget arranges tiles and routes events between the mesh and
// the pointed tile per cfg.Focus. A nil point starts at the lowest
// spot.
func NewMeshWidget(tiles map[Spot]Widget, point *Point, cfg MeshWidgetConfig) *MeshWidget {
	held := make(map[Spot]any, len(tiles))
	for spot, tile := range tiles {
		held[spot] = tile
	}

	if point == nil {
		spot := Spot{}
		if len(tiles) > 0 {
			spot = minSpot(tiles)
		}
		point = &Point{Y: spot.Y, X: spot.X}
	}

	score := cfg.Search
	if score == nil {
		score = FuzzySearch(WidgetSketchText)
	}

	var create func(Spot) (any, error)
	if cfg.Create != nil {
		create = func(spot Spot) (any, error) {
			tile, err := cfg.Create(spot)
			if err != nil || tile == nil {
				return nil, err
			}
			return tile, nil
		}
	}

	mutate := NewMeshMutate(MeshConfig{
		Score:  score,
		Scout:  cfg.Scout,
		Rigid:  cfg.Rigid,
		Create: create,
		Clean:  cfg.Clean,
	}, held, point)

	get := func(enter, leave bool) (map[Spot]*Region, Point) {
		out := make(map[Spot]*Region, len(mutate.Vision()))
		for visSpot, curSpot := range mutate.Vision() {
			tile, ok := mutate.Tiles()[curSpot]
			if !ok {
				continue
			}
			lines, tilePoint := tile.(Widget).Sketch(enter, leave)
			region := &Region{Lines: lines}
			if tilePoint != nil {
				region.Point = *tilePoint
			}
			out[visSpot] = region
		}
		return out, *mutate.Point()
	}

	visual := NewMeshVisual(get, cfg.FunnelEnter, cfg.FunnelLeave)

	w := &MeshWidget{mesh: mutate, focus: cfg.Focus}
	base := WidgetConfig{Hook: cfg.Hook, Delegate: cfg.Delegate, Validate: cfg.Validate}
	w.baseWidget = newBaseWidget(mutate, visual, MeshControls(mutate), base, func() (any, error) {
		return mutate.CurSpot(), nil
	})
	return w
}

// Mesh is the underlying mesh mutate.
func (w *MeshWidget) Mesh() *MeshMutate {
	return w.mesh
}

// CurWidget is the child widget under the cursor.
func (w *MeshWidget) CurWidget() Widget {
	tile := w.mesh.CurTile()
	if tile == nil {
		return nil
	}
	return tile.(Widget)
}

func (w *MeshWidget) invokeFocused(event Event, token Token) error {
	tile := w.CurWidget()
	if tile == nil {
		return nil
	}
	err := tile.Invoke(event, token)
	if errors.Is(err, ErrTerminate) && w.focus.switchable {
		w.focus.focused = !w.focus.focused
		if !w.focus.focused {
			return nil
		}
	}
	return err
}

// Invoke routes the event: to the pointed tile while focused, to the
// mesh otherwise. On switchable meshes indent toggles focus and a
// focused tile's submission blurs it.
func (w *MeshWidget) Invoke(event Event, token Token) error {
	w.memoSet = false

	if w.focus.Focused(event) {
		return w.invokeFocused(event, token)
	}
	if w.focus.switchable && event == EventIndent {
		w.focus.focused = !w.focus.focused
		return nil
	}
	return w.baseWidget.Invoke(event, token)
}

// AddControl registers an extra control on the mesh's own handle.
func (w *MeshWidget) AddControl(binding Binding) {
	w.handle.Add(binding)
}

// ListWidget is a mesh constrained to one axis, mirrored so indexes
// grow downward, with selection styling.
type ListWidget struct {
	*MeshWidget
	axis int
}

// ListWidgetConfig extends MeshWidgetConfig for lists.
type ListWidgetConfig struct {
	MeshWidgetConfig
	// Axis 0 lays tiles vertically, 1 horizontally.
	Axis int
	// Index is the starting position along the axis.
	Index int
	// Label yields an optional heading per index.
	Label func(index int, tile Widget) string
	// ViewMax caps visible tiles; 0 means the default of 7, negative
	// means unlimited.
	ViewMax int
	// FocusColor paints the pointed tile; FocusMark prefixes it.
	FocusColor string
	FocusMark  *string
	EvadeColor string
	EvadeMark  *string
	// Dynamic colors override the static ones when set.
	FocusColorFunc func() string
	EvadeColorFunc func() string
	// Fill aligns all tiles into a grid.
	Fill bool
	// CreateValue materializes list entries by index.
	CreateValue func(index int) (Widget, error)
}

const listViewMaxDefault = 7

func listSpot(axis, index int) Spot {
	return spotOn(axis, index, 0)
}

func listLight(cfg ListWidgetConfig) MeshFunnel {
	if cfg.FocusColorFunc != nil || cfg.EvadeColorFunc != nil {
		return MeshLightFunc(cfg.FocusColorFunc, cfg.EvadeColorFunc)
	}
	return MeshLight(cfg.FocusColor, cfg.EvadeColor)
}

// NewListWidget lays tiles along cfg.Axis.
func NewListWidget(tiles []Widget, cfg ListWidgetConfig) *ListWidget {
	axis := cfg.Axis

	mapped := make(map[Spot]Widget, len(tiles))
	for index, tile := range tiles {
		mapped[listSpot(axis, index)] = tile
	}

	point := Point{}
	if axis == 1 {
		point.X = cfg.Index
	} else {
		point.Y = cfg.Index
	}

	viewMax := cfg.ViewMax
	if viewMax == 0 {
		viewMax = listViewMaxDefault
	}

	focusMark := "> "
	if cfg.FocusMark != nil {
		focusMark = *cfg.FocusMark
	}
	evadeMark := "  "
	if cfg.EvadeMark != nil {
		evadeMark = *cfg.EvadeMark
	}

	var group []MeshFunnel

	if axis == 0 {
		group = append(group, MeshFlip())
	}
	if viewMax > 0 {
		if viewMax <= 1 {
			focusMark = ""
			evadeMark = ""
		}
		group = append(group, MeshMax(axis, viewMax))
	}
	group = append(group, listLight(cfg))
	if axis == 0 {
		group = append(group, MeshPoint(focusMark, evadeMark))
	}

	w := &ListWidget{axis: axis}

	if cfg.Label != nil {
		label := cfg.Label
		get := func(index int) Lines {
			spot := listSpot(axis, index)
			tile, _ := w.mesh.Tiles()[spot].(Widget)
			return SplitLines(label(index, tile))
		}
		just := JustStart
		group = append(group, MeshHead(axis, get, &just, 0, 0))
	}
	if cfg.Fill {
		group = append(group, MeshGridFill(GridFill{}))
	}

	meshCfg := cfg.MeshWidgetConfig
	meshCfg.FunnelEnter = ChainMesh(append(group, cfg.MeshWidgetConfig.FunnelEnter)...)
	if cfg.CreateValue != nil {
		createValue := cfg.CreateValue
		meshCfg.Create = func(spot Spot) (Widget, error) {
			return createValue(spot.axis(axis))
		}
	}

	w.MeshWidget = NewMeshWidget(mapped, &point, meshCfg)

	for _, control := range MeshListControls(w.mesh) {
		w.AddControl(control)
	}

	w.setResolve(func() (any, error) {
		return w.Index(), nil
	})
	return w
}

// Axis is the traversal axis.
func (w *ListWidget) Axis() int {
	return w.axis
}

// Index is the pointed position along the axis.
func (w *ListWidget) Index() int {
	return w.mesh.CurSpot().axis(w.axis)
}

// Entries returns the real tiles in index order.
func (w *ListWidget) Entries() []Widget {
	spots := make([]Spot, 0, len(w.mesh.Tiles()))
	for spot := range w.mesh.Tiles() {
		spots = append(spots, spot)
	}
	sort.Slice(spots, func(i, j int) bool {
		return spots[i].axis(w.axis) < spots[j].axis(w.axis)
	})
	out := make([]Widget, 0, len(spots))
	for _, spot := range spots {
		out = append(out, w.mesh.Tiles()[spot].(Widget))
	}
	return out
}
