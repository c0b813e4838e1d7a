package parley

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// The concrete widgets. Each wraps one of the bases in widget.go with
// a resolution and the funnels that give it its look.

// Input edits a line (or several, when Multi) of text and resolves to
// a string.
type Input struct {
	*TextWidget
}

// InputConfig configures an Input.
type InputConfig struct {
	TextWidgetConfig
	// Value is the starting text.
	Value string
	// Index places the cursor along the flat text; nil means the end.
	Index *int
}

// NewInput makes a text editor.
func NewInput(cfg InputConfig) *Input {
	lines := SplitLines(cfg.Value)

	index := len(splitCells(cfg.Value))
	if cfg.Index != nil {
		index = *cfg.Index
	}
	point := IndexToPoint(lines, index)

	return &Input{TextWidget: NewTextWidget(lines, point, cfg.TextWidgetConfig)}
}

// Value is the current text.
func (w *Input) Value() string {
	return JoinLines(w.text.Lines())
}

// Numeric is an Input that only resolves to a valid number, zero
// padded on screen to Zfill digits.
type Numeric struct {
	*Input
	decimal bool
	message string
}

// NumericConfig configures a Numeric.
type NumericConfig struct {
	TextWidgetConfig
	// Value is the starting number, rendered as text.
	Value *string
	// Decimal permits finite decimal values.
	Decimal bool
	// Zfill pads the display with leading zeros to this width.
	Zfill int
	// InvalidMessage templates the rejection warning; {name} expands
	// to int or float.
	InvalidMessage string
}

// NewNumeric makes a number editor.
func NewNumeric(cfg NumericConfig) *Numeric {
	name := "int"
	if cfg.Decimal {
		name = "float"
	}
	message := cfg.InvalidMessage
	if message == "" {
		message = "invalid {name}"
	}
	message = strings.ReplaceAll(message, "{name}", name)

	leave := ChainText(TextMinHorizontal(JustEnd, cfg.Zfill, "0"), cfg.FunnelLeave)

	inputCfg := InputConfig{TextWidgetConfig: cfg.TextWidgetConfig}
	inputCfg.FunnelLeave = leave
	if cfg.Value != nil {
		inputCfg.Value = *cfg.Value
	}

	w := &Numeric{
		Input:   NewInput(inputCfg),
		decimal: cfg.Decimal,
		message: message,
	}
	w.setResolve(w.resolveNumber)
	return w
}

func (w *Numeric) resolveNumber() (any, error) {
	value := w.Value()

	if value == "-" {
		value = "0"
	}
	if strings.HasSuffix(value, ".") {
		value += "0"
	}

	if w.decimal {
		number, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsInf(number, 0) {
			return nil, &Abort{Message: w.message}
		}
		return number, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return nil, &Abort{Message: w.message}
	}
	return number, nil
}

// ConcealConfig configures NewConceal.
type ConcealConfig struct {
	TextWidgetConfig
	Value string
	// Rune replaces every typed cell on screen; default "*".
	Rune string
	// Color optionally paints the replacement.
	Color string
}

// NewConceal makes a password style editor that masks its content.
func NewConceal(cfg ConcealConfig) *Input {
	mask := cfg.Rune
	if mask == "" {
		mask = "*"
	}

	group := []TextFunnel{TextReplaceRune(mask)}
	if cfg.Color != "" {
		group = append(group, TextPaint(cfg.Color))
	}
	group = append(group, cfg.FunnelLeave)

	inputCfg := InputConfig{TextWidgetConfig: cfg.TextWidgetConfig, Value: cfg.Value}
	inputCfg.FunnelLeave = ChainText(group...)
	return NewInput(inputCfg)
}

// AutoSubmitConfig configures NewAutoSubmit.
type AutoSubmitConfig struct {
	TextWidgetConfig
	Value string
	// Evaluate vets the text after each insertion; an Abort undoes it.
	Evaluate func(value string) error
	// Validate decides whether the text submits immediately.
	Validate func(value string) bool
	// Default resolves a plain enter on an empty editor. Without one,
	// enter is rejected.
	Default    any
	HasDefault bool
	// Transform normalizes text before Evaluate and Validate see it.
	Transform func(value string) string
}

// NewAutoSubmit makes an editor that submits on its own as soon as a
// valid value is typed.
func NewAutoSubmit(cfg AutoSubmitConfig) *Input {
	var w *Input

	hooks := NewHooks()

	hooks.Add(HookEnter, EventEnter, func(Token) error {
		if CheckLines(w.text.Lines()) || !cfg.HasDefault {
			return &Abort{}
		}
		w.setResult(cfg.Default)
		return ErrTerminate
	})

	var snapshot State

	hooks.Add(HookEnter, EventInsert, func(Token) error {
		snapshot = w.text.State()
		return nil
	})

	hooks.Add(HookLeave, EventInsert, func(Token) error {
		value := w.Value()
		if cfg.Transform != nil {
			value = cfg.Transform(value)
		}
		if cfg.Evaluate != nil {
			if err := cfg.Evaluate(value); err != nil {
				w.text.Restore(snapshot)
				return err
			}
		}
		if cfg.Validate != nil && !cfg.Validate(value) {
			return nil
		}
		return ErrTerminate
	})

	inputCfg := InputConfig{TextWidgetConfig: cfg.TextWidgetConfig, Value: cfg.Value}
	inputCfg.Validate = nil
	inputCfg.Hook = ChainHooks(cfg.Hook, hooks.Invoke)

	w = NewInput(inputCfg)
	return w
}

// InquireOption pairs a typable key with the value it resolves to.
type InquireOption struct {
	Key   string
	Value any
}

// InquireConfig configures NewInquire.
type InquireConfig struct {
	TextWidgetConfig
	// Options are the accepted inputs; typing a full key submits it.
	// Empty defaults to y/n booleans.
	Options []InquireOption
	// Transform normalizes typed text and keys before comparing;
	// nil means lowercase, identity when NoTransform.
	Transform   func(string) string
	NoTransform bool
	// Default resolves a plain enter on an empty editor.
	Default    any
	HasDefault bool
}

// Inquire is an AutoSubmit over a fixed option set.
type Inquire struct {
	*Input
	options   []InquireOption
	transform func(string) string
}

// NewInquire makes a single-keystroke chooser.
func NewInquire(cfg InquireConfig) *Inquire {
	options := cfg.Options
	if len(options) == 0 {
		options = []InquireOption{{Key: "y", Value: true}, {Key: "n", Value: false}}
	}

	transform := cfg.Transform
	if transform == nil && !cfg.NoTransform {
		transform = strings.ToLower
	}

	keys := make([]string, len(options))
	for i, option := range options {
		key := option.Key
		if transform != nil {
			key = transform(key)
		}
		keys[i] = key
	}

	evaluate := func(value string) error {
		for _, key := range keys {
			if strings.HasPrefix(key, value) {
				return nil
			}
		}
		return &Abort{}
	}
	validate := func(value string) bool {
		for _, key := range keys {
			if key == value {
				return true
			}
		}
		return false
	}

	w := &Inquire{options: options, transform: transform}
	w.Input = NewAutoSubmit(AutoSubmitConfig{
		TextWidgetConfig: cfg.TextWidgetConfig,
		Evaluate:         evaluate,
		Validate:         validate,
		Default:          cfg.Default,
		HasDefault:       cfg.HasDefault,
		Transform:        transform,
	})
	w.setResolve(w.resolveOption)
	return w
}

func (w *Inquire) resolveOption() (any, error) {
	field := w.Value()
	if w.transform != nil {
		field = w.transform(field)
	}
	for _, option := range w.options {
		key := option.Key
		if w.transform != nil {
			key = w.transform(key)
		}
		if key == field {
			return option.Value, nil
		}
	}
	return nil, &Abort{Message: fmt.Sprintf("no option for %q", field)}
}

// SelectConfig configures NewSelect.
type SelectConfig struct {
	ListWidgetConfig
	// Options become the list entries, one Input tile each.
	Options []string
	// Create materializes entries past the ends by index.
	Create func(index int) string
}

func selectOptionTile(value string) Widget {
	return NewInput(InputConfig{Value: value})
}

// NewSelect makes a single-option selector resolving to the pointed
// index.
func NewSelect(cfg SelectConfig) *ListWidget {
	tiles := make([]Widget, len(cfg.Options))
	for i, option := range cfg.Options {
		tiles[i] = selectOptionTile(option)
	}

	listCfg := cfg.ListWidgetConfig
	listCfg.Focus = FocusNever()
	if cfg.Create != nil {
		create := cfg.Create
		listCfg.CreateValue = func(index int) (Widget, error) {
			return selectOptionTile(create(index)), nil
		}
	}

	return NewListWidget(tiles, listCfg)
}

// BasketConfig configures NewBasket.
type BasketConfig struct {
	ListWidgetConfig
	// Options become the rows.
	Options []string
	// Active marks rows selected from the start.
	Active []int
	// PositiveMark and NegativeMark prefix selected and unselected
	// rows.
	PositiveMark string
	NegativeMark string
}

// Basket is a multi-option selector. Left and right flip the pointed
// row's mark; enter resolves to the selected indexes.
type Basket struct {
	*ListWidget
}

// each basket row is a horizontal list of a mark stamp and the option
// text; the stamp is itself a one-high list of the two marks
func basketRowStampIndex(row Widget) *Point {
	list := row.(*ListWidget)
	stamp := list.mesh.Tiles()[Spot{Y: 0, X: 0}].(*ListWidget)
	return stamp.mesh.Point()
}

func basketRowText(tile any) Line {
	list := tile.(Widget).(*ListWidget)
	option := list.mesh.Tiles()[Spot{Y: 0, X: 1}].(Widget)
	return WidgetSketchText(option)
}

// NewBasket makes a multi-option selector.
func NewBasket(cfg BasketConfig) *Basket {
	positive := cfg.PositiveMark
	if positive == "" {
		positive = "[X] "
	}
	negative := cfg.NegativeMark
	if negative == "" {
		negative = "[ ] "
	}

	active := make(map[int]bool, len(cfg.Active))
	for _, index := range cfg.Active {
		active[index] = true
	}

	w := &Basket{}

	// flipping one stamp flips every other row to match, keeping the
	// marks in sync; the veto stops the stamp from moving on its own
	stampHooks := NewHooks()
	syncMarks := func(forward bool) ControlFunc {
		return func(Token) error {
			curRow := w.CurWidget()
			curMark := basketRowStampIndex(curRow).X
			if forward != (curMark == 1) {
				return nil
			}
			for _, realSpot := range w.mesh.Vision() {
				row := w.mesh.Tiles()[realSpot].(Widget)
				if row == curRow {
					continue
				}
				basketRowStampIndex(row).X = curMark
			}
			return ErrVeto
		}
	}
	stampHooks.Add(HookEnter, EventArrowRight, syncMarks(true))
	stampHooks.Add(HookEnter, EventArrowLeft, syncMarks(false))

	noColor := ""
	emptyMark := ""

	getRow := func(index int, value string) Widget {
		stampIndex := 0
		if active[index] {
			stampIndex = 1
		}
		stampCfg := SelectConfig{Options: []string{negative, positive}}
		stampCfg.Axis = 1
		stampCfg.Index = stampIndex
		stampCfg.ViewMax = 1
		stampCfg.FocusColor = noColor
		stampCfg.Hook = stampHooks.Invoke
		stamp := NewSelect(stampCfg)

		option := NewInput(InputConfig{Value: value})

		rowCfg := ListWidgetConfig{}
		rowCfg.Axis = 1
		rowCfg.Focus = FocusFocused()
		rowCfg.FocusColor = noColor
		rowCfg.ViewMax = -1
		return NewListWidget([]Widget{stamp, option}, rowCfg)
	}

	tiles := make([]Widget, len(cfg.Options))
	for i, option := range cfg.Options {
		tiles[i] = getRow(i, option)
	}

	listCfg := cfg.ListWidgetConfig
	listCfg.Focus = FocusWhen(func(event Event) bool {
		return event == EventArrowLeft || event == EventArrowRight
	})
	if listCfg.Search == nil {
		listCfg.Search = FuzzySearch(basketRowText)
	}
	if cfg.FocusMark == nil {
		listCfg.FocusMark = &emptyMark
	}

	w.ListWidget = NewListWidget(tiles, listCfg)
	w.setResolve(w.resolveSelected)
	return w
}

func (w *Basket) resolveSelected() (any, error) {
	var indexes []int
	for spot, tile := range w.mesh.Tiles() {
		if basketRowStampIndex(tile.(Widget)).X == 0 {
			continue
		}
		indexes = append(indexes, spot.axis(w.axis))
	}
	sort.Ints(indexes)
	return indexes, nil
}

// DecimalMode controls how a Count treats fractional values.
type DecimalMode int

const (
	// DecimalAuto edits floats but resolves integral values as int.
	DecimalAuto DecimalMode = iota
	// DecimalNever only allows whole numbers.
	DecimalNever
	// DecimalAlways always resolves float64.
	DecimalAlways
)

// CountConfig configures NewCount.
type CountConfig struct {
	ListWidgetConfig
	// Value is the starting count.
	Value float64
	// Rate is the step per arrow press; default 1.
	Rate float64
	// Decimal controls the numeric domain.
	Decimal DecimalMode
	// Zfill pads each generated number with leading zeros.
	Zfill int
	// Convert adjusts each generated value before display.
	Convert func(value float64) (float64, error)
}

// Count is an editable counter: arrows step the value, typing edits it
// directly.
type Count struct {
	*ListWidget
	decimal DecimalMode
}

func formatCount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NewCount makes a counter starting at cfg.Value.
func NewCount(cfg CountConfig) *Count {
	rate := cfg.Rate
	if rate == 0 {
		rate = 1
	}
	offset := cfg.Value

	w := &Count{decimal: cfg.Decimal}

	listCfg := cfg.ListWidgetConfig
	listCfg.Axis = 0
	listCfg.Index = 0
	listCfg.Clean = true
	emptyMark := ""
	listCfg.FocusMark = &emptyMark
	listCfg.Focus = FocusWhen(func(event Event) bool {
		return event == EventInsert || event == EventDeleteLeft
	})
	listCfg.CreateValue = func(index int) (Widget, error) {
		value := offset - float64(index)*rate
		if cfg.Convert != nil {
			converted, err := cfg.Convert(value)
			if err != nil {
				return nil, err
			}
			value = converted
		}
		text := formatCount(value)
		return NewNumeric(NumericConfig{
			Value:   &text,
			Decimal: cfg.Decimal != DecimalNever,
			Zfill:   cfg.Zfill,
		}), nil
	}

	w.ListWidget = NewListWidget(nil, listCfg)
	w.setResolve(w.resolveCount)
	return w
}

func (w *Count) resolveCount() (any, error) {
	tile := w.CurWidget()
	if tile == nil {
		return nil, &Abort{Message: "empty counter"}
	}
	value, err := tile.Resolve()
	if err != nil {
		return nil, err
	}
	if w.decimal == DecimalAuto {
		if number, ok := value.(float64); ok && number == math.Trunc(number) {
			return int(number), nil
		}
	}
	return value, nil
}

// DateTimeConfig configures NewDateTime.
type DateTimeConfig struct {
	ListWidgetConfig
	// Value is the starting moment; zero means now.
	Value time.Time
	// Attrs are the editable parts in display order; default
	// day, month, year, hour, minute.
	Attrs []string
	// DateDelimit, TimeDelimit and PartDelimit separate the date
	// parts, the time parts, and the two groups.
	DateDelimit string
	TimeDelimit string
	PartDelimit string
}

// DateTime picks a moment part by part: arrows step the pointed part,
// digits edit it, each edit renormalized against the running value.
type DateTime struct {
	*ListWidget
	value time.Time
	attrs []string
}

var dateTimeZfills = map[string]int{
	"year":   4,
	"month":  2,
	"day":    2,
	"hour":   2,
	"minute": 2,
	"second": 2,
}

var dateTimeDateAttrs = map[string]bool{"year": true, "month": true, "day": true}
var dateTimeTimeAttrs = map[string]bool{"hour": true, "minute": true, "second": true}

func dateTimeGet(value time.Time, attr string) int {
	switch attr {
	case "year":
		return value.Year()
	case "month":
		return int(value.Month())
	case "day":
		return value.Day()
	case "hour":
		return value.Hour()
	case "minute":
		return value.Minute()
	default:
		return value.Second()
	}
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateTimeReplace swaps one part of a moment, rejecting values the
// calendar cannot hold.
func dateTimeReplace(value time.Time, attr string, number int) (time.Time, error) {
	year, month, day := value.Date()
	hour, minute, second := value.Clock()

	parts := map[string]int{
		"year": year, "month": int(month), "day": day,
		"hour": hour, "minute": minute, "second": second,
	}
	parts[attr] = number

	fail := func(what string) (time.Time, error) {
		return time.Time{}, &Abort{Message: fmt.Sprintf("%s is out of range (%d)", what, parts[what])}
	}

	switch {
	case parts["year"] < 1 || parts["year"] > 9999:
		return fail("year")
	case parts["month"] < 1 || parts["month"] > 12:
		return fail("month")
	case parts["day"] < 1 || parts["day"] > daysIn(parts["year"], parts["month"]):
		return fail("day")
	case parts["hour"] < 0 || parts["hour"] > 23:
		return fail("hour")
	case parts["minute"] < 0 || parts["minute"] > 59:
		return fail("minute")
	case parts["second"] < 0 || parts["second"] > 59:
		return fail("second")
	}

	return time.Date(
		parts["year"], time.Month(parts["month"]), parts["day"],
		parts["hour"], parts["minute"], parts["second"],
		value.Nanosecond(), value.Location(),
	), nil
}

// dateTimeArrange separates the date and time parts with their
// delimiters and joins the two groups with the part delimiter.
func dateTimeArrange(axis int, attrs []string, dateDelimit, timeDelimit, partDelimit string) MeshFunnel {
	return func(tiles map[Spot]*Region, point *Point) {
		groups := [2][]int{}
		for index, attr := range attrs {
			if dateTimeDateAttrs[attr] {
				groups[0] = append(groups[0], index)
			} else if dateTimeTimeAttrs[attr] {
				groups[1] = append(groups[1], index)
			}
		}
		delimits := [2]string{dateDelimit, timeDelimit}

		var lastSpots []Spot
		rollTiles := map[Spot]*Region{}

		for groupIndex, indexes := range groups {
			if len(indexes) == 0 {
				continue
			}
			someTiles := map[Spot]*Region{}
			someSpots := make([]Spot, 0, len(indexes))
			for _, index := range indexes {
				spot := listSpot(axis, index)
				if tile, ok := tiles[spot]; ok {
					someTiles[spot] = tile
					someSpots = append(someSpots, spot)
				}
			}
			MeshDelimit(axis, delimits[groupIndex])(someTiles, nil)
			if len(lastSpots) > 0 && len(someSpots) > 0 {
				maxSpot := lastSpots[len(lastSpots)-1]
				minSpot := someSpots[0]
				rollTiles[maxSpot] = tiles[maxSpot]
				rollTiles[minSpot] = tiles[minSpot]
			}
			lastSpots = someSpots
		}

		if len(rollTiles) == 0 {
			return
		}
		MeshDelimit(axis, partDelimit)(rollTiles, nil)
	}
}

// NewDateTime makes a date and time picker.
func NewDateTime(cfg DateTimeConfig) *DateTime {
	value := cfg.Value
	if value.IsZero() {
		value = time.Now()
	}
	attrs := cfg.Attrs
	if len(attrs) == 0 {
		attrs = []string{"day", "month", "year", "hour", "minute"}
	}

	dateDelimit := cfg.DateDelimit
	if dateDelimit == "" {
		dateDelimit = "/"
	}
	timeDelimit := cfg.TimeDelimit
	if timeDelimit == "" {
		timeDelimit = ":"
	}
	partDelimit := cfg.PartDelimit
	if partDelimit == "" {
		partDelimit = " "
	}

	w := &DateTime{value: value, attrs: attrs}

	noColor := ""

	getTile := func(attr string) Widget {
		convert := func(number float64) (float64, error) {
			next, err := dateTimeReplace(w.value, attr, int(number))
			if err != nil {
				return 0, err
			}
			w.value = next
			return number, nil
		}
		countCfg := CountConfig{
			Value:   float64(dateTimeGet(value, attr)),
			Decimal: DecimalNever,
			Convert: convert,
		}
		countCfg.Zfill = dateTimeZfills[attr]
		countCfg.FocusColor = noColor
		return NewCount(countCfg)
	}

	tiles := make([]Widget, len(attrs))
	for i, attr := range attrs {
		tiles[i] = getTile(attr)
	}

	const axis = 1

	listCfg := cfg.ListWidgetConfig
	listCfg.Axis = axis
	listCfg.Focus = FocusWhen(func(event Event) bool {
		switch event {
		case EventArrowUp, EventArrowDown, EventInsert, EventDeleteLeft:
			return true
		}
		return false
	})
	listCfg.FunnelEnter = ChainMesh(
		cfg.ListWidgetConfig.FunnelEnter,
		dateTimeArrange(axis, attrs, dateDelimit, timeDelimit, partDelimit),
	)

	w.ListWidget = NewListWidget(tiles, listCfg)
	w.setResolve(w.resolveMoment)
	return w
}

func (w *DateTime) resolveMoment() (any, error) {
	result := w.value
	for index, attr := range w.attrs {
		tile := w.mesh.Tiles()[listSpot(1, index)].(Widget)
		value, err := tile.Resolve()
		if err != nil {
			return nil, err
		}
		number, ok := value.(int)
		if !ok {
			return nil, &Abort{Message: fmt.Sprintf("%s is not whole", attr)}
		}
		next, err := dateTimeReplace(result, attr, number)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

// FormField pairs a field name with the widget that edits its value.
type FormField struct {
	Name   string
	Widget Widget
}

// FormConfig configures NewForm.
type FormConfig struct {
	ListWidgetConfig
	// Fields are the rows, in order.
	Fields []FormField
	// Delimit separates field names from their editors.
	Delimit string
}

// Form stacks keyed fields; the pointed row receives all events and
// resolves into a name-to-value map.
type Form struct {
	*ListWidget
	fields []FormField
}

// NewForm makes a multi-field form.
func NewForm(cfg FormConfig) *Form {
	delimit := cfg.Delimit
	if delimit == "" {
		delimit = ": "
	}

	w := &Form{fields: cfg.Fields}

	nameSize := 0
	for _, field := range cfg.Fields {
		if size := len(splitCells(field.Name)); size > nameSize {
			nameSize = size
		}
	}

	focusColor := cfg.FocusColor
	evadeColor := cfg.EvadeColor

	getRow := func(index int, field FormField) Widget {
		nameLeave := ChainText(
			TextMinHorizontal(JustEnd, nameSize, " "),
			TextBloatHorizontal(JustStart, 1, delimit),
		)
		nameCfg := InputConfig{Value: field.Name}
		nameCfg.FunnelLeave = nameLeave
		name := NewInput(nameCfg)

		// the pointed row keeps its editor unpainted and dims its
		// name; other rows flip the two
		pointed := func() bool { return w.mesh.CurSpot().Y == index }
		rowCfg := ListWidgetConfig{}
		rowCfg.Axis = 1
		rowCfg.Index = 1
		rowCfg.ViewMax = -1
		rowCfg.Focus = FocusWhen(func(Event) bool { return true })
		rowCfg.FocusColorFunc = func() string {
			if pointed() {
				return evadeColor
			}
			return ""
		}
		rowCfg.EvadeColorFunc = func() string {
			if pointed() {
				return focusColor
			}
			return ""
		}
		return NewListWidget([]Widget{name, field.Widget}, rowCfg)
	}

	tiles := make([]Widget, len(cfg.Fields))
	for i, field := range cfg.Fields {
		tiles[i] = getRow(i, field)
	}

	listCfg := cfg.ListWidgetConfig
	listCfg.Axis = 0
	listCfg.Focus = FocusBlurred()
	listCfg.FocusColor = ""
	listCfg.EvadeColor = ""
	w.ListWidget = NewListWidget(tiles, listCfg)
	w.setResolve(w.resolveFields)
	return w
}

func (w *Form) resolveFields() (any, error) {
	out := make(map[string]any, len(w.fields))
	for index, field := range w.fields {
		row := w.mesh.Tiles()[listSpot(0, index)].(*ListWidget)
		editor := row.mesh.Tiles()[Spot{Y: 0, X: 1}].(Widget)
		value, err := editor.Resolve()
		if err != nil {
			return nil, err
		}
		out[field.Name] = value
	}
	return out, nil
}
