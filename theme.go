package parley

import "sync"

// Theme supplies the ambient colors and marks used by Start and the
// built-in widgets when no explicit value is given.
type Theme struct {
	Mark        string // prepended to the show line
	MarkColor   string
	InfoColor   string
	HintColor   string
	WarnColor   string
	FocusColor  string // pointed list entries
	ReplyColor  string // final submitted reply
	GridColor   string // table grid lines
	FocusMark   string // pointed entry marker
	EvadeMark   string // unpointed entry marker
	SearchColor string // active search argument
}

// DefaultTheme matches the classic prompt look.
var DefaultTheme = Theme{
	Mark:        "? ",
	MarkColor:   ColorBasic("yellow"),
	InfoColor:   ColorBasic("cyan"),
	HintColor:   ColorBasic("black"),
	WarnColor:   ColorBasic("red"),
	FocusColor:  ColorBasic("cyan"),
	ReplyColor:  ColorBasic("cyan"),
	GridColor:   ColorBasic("black.lite"),
	FocusMark:   "> ",
	EvadeMark:   "  ",
	SearchColor: ColorBasic("red"),
}

var (
	themeMu    sync.Mutex
	themeStack []Theme
)

// CurrentTheme returns the theme on top of the stack, or DefaultTheme
// when the stack is empty.
func CurrentTheme() Theme {
	themeMu.Lock()
	defer themeMu.Unlock()
	if len(themeStack) == 0 {
		return DefaultTheme
	}
	return themeStack[len(themeStack)-1]
}

// PushTheme makes theme the current one until the matching PopTheme.
func PushTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themeStack = append(themeStack, theme)
}

// PopTheme removes the most recently pushed theme. Popping an empty
// stack is a no-op.
func PopTheme() {
	themeMu.Lock()
	defer themeMu.Unlock()
	if len(themeStack) > 0 {
		themeStack = themeStack[:len(themeStack)-1]
	}
}

// WithTheme runs fn with theme current, restoring the previous theme
// afterwards.
func WithTheme(theme Theme, fn func()) {
	PushTheme(theme)
	defer PopTheme()
	fn()
}
