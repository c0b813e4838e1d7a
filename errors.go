package parley

import "errors"

// Mutate errors are local and recoverable: the session loop answers
// them with a bell and an unchanged redraw, never by failing.
var (
	// ErrInsufficientSpace means a move or delete would leave the
	// owned structure's bounds.
	ErrInsufficientSpace = errors.New("insufficient space")

	// ErrSearching means a tile edit arrived while a search filter is
	// active and would invalidate the vision indices.
	ErrSearching = errors.New("searching")

	// ErrInvalidSearchArgument means no tile matched the search line.
	ErrInvalidSearchArgument = errors.New("invalid search argument")

	// ErrInconsequentialSearchArgument means the keystroke left the
	// visible spot set unchanged.
	ErrInconsequentialSearchArgument = errors.New("inconsequential search argument")
)

// IsMutateError reports whether err is one of the recoverable mutate
// failures.
func IsMutateError(err error) bool {
	return errors.Is(err, ErrInsufficientSpace) ||
		errors.Is(err, ErrSearching) ||
		errors.Is(err, ErrInvalidSearchArgument) ||
		errors.Is(err, ErrInconsequentialSearchArgument)
}

// Abort rejects a submission or vetoes a control. The session rolls
// the widget back to its pre-invocation snapshot and, when a message
// exists, shows it as a transient warning.
type Abort struct {
	Message string
}

func (a *Abort) Error() string {
	if a.Message == "" {
		return "abort"
	}
	return "abort: " + a.Message
}

// ErrVeto is the silent control veto: an enter hook returning it stops
// the mutation, but anything the hook already changed stands.
var ErrVeto = errors.New("veto")

// ErrTerminate signals that submission was requested. It never escapes
// the widget boundary.
var ErrTerminate = errors.New("terminate")

// ErrEscape is the one cancellation signal that unwinds the whole
// interactive session without a result.
var ErrEscape = errors.New("escape")
