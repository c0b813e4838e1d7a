package parley

import (
	"strconv"
	"strings"
)

// ANSI token parsing and encoding. parse turns an incoming rune stream
// into one token; the Get* helpers build the wire form back.
//
// grammar: a byte in the C0 range starts a Control unless it is ESC,
// which starts an Escape; ESC '[' starts a Sequence of ';'-separated
// parameters followed by intermediate bytes and a final rune.

const (
	runeEscape    = 0x1b
	runeIntroduce = '['
	runeSeparator = ';'
	runePrivate   = '?'
)

// Token is one parsed unit of terminal input.
type Token interface {
	isToken()
}

// Text is a plain printable rune.
type Text struct {
	Rune rune
}

// Control is a C0 control code (0-31, 127), ESC excluded.
type Control struct {
	Rune rune
}

// Escape is ESC followed by one rune. A bare ESC with no follow-up
// parses as Escape with Rune 0.
type Escape struct {
	Rune rune
}

// Sequence is a CSI control sequence: ESC '[' params intermediates final.
// Args holds the ';'-separated parameters, empty ones normalized to "0".
// Trail holds the intermediate bytes (0x20-0x2f). Rune is the final byte;
// 0 when the input ended before one arrived.
type Sequence struct {
	Rune  rune
	Args  []string
	Trail string
}

func (Text) isToken()     {}
func (Control) isToken()  {}
func (Escape) isToken()   {}
func (Sequence) isToken() {}

func isParamRune(r rune) bool {
	return r >= 0x30 && r <= 0x3f
}

func isTrailRune(r rune) bool {
	return r >= 0x20 && r <= 0x2f
}

func isControlRune(r rune) bool {
	return r < 0x20 || r == 0x7f
}

func parseSequence(next func() (rune, bool)) Sequence {
	var seq Sequence
	var buf []rune
	flush := func() {
		if len(buf) == 0 {
			seq.Args = append(seq.Args, "0")
			return
		}
		seq.Args = append(seq.Args, string(buf))
		buf = buf[:0]
	}
	var r rune
	var ok bool
	for {
		r, ok = next()
		if !ok {
			if len(buf) > 0 {
				flush()
			}
			return seq
		}
		if r == runeSeparator {
			flush()
			continue
		}
		if !isParamRune(r) {
			break
		}
		buf = append(buf, r)
	}
	if len(buf) > 0 {
		flush()
	}
	var trail []rune
	for isTrailRune(r) {
		trail = append(trail, r)
		r, ok = next()
		if !ok {
			seq.Trail = string(trail)
			return seq
		}
	}
	seq.Trail = string(trail)
	seq.Rune = r
	return seq
}

func parseEscape(next func() (rune, bool)) Token {
	r, ok := next()
	if !ok {
		return Escape{}
	}
	if r == runeIntroduce {
		return parseSequence(next)
	}
	return Escape{Rune: r}
}

// Parse reads one token. next reports ok=false when no further rune is
// available right now; the parser returns whatever token it has built so
// far, which is how a bare ESC key is told apart from a longer sequence.
// Returns nil when the stream yields nothing at all.
func Parse(next func() (rune, bool)) Token {
	r, ok := next()
	if !ok {
		return nil
	}
	if isControlRune(r) {
		if r == runeEscape {
			return parseEscape(next)
		}
		return Control{Rune: r}
	}
	return Text{Rune: r}
}

// ParseString parses the first token out of a literal string.
func ParseString(s string) Token {
	runes := []rune(s)
	i := 0
	return Parse(func() (rune, bool) {
		if i >= len(runes) {
			return 0, false
		}
		r := runes[i]
		i++
		return r, true
	})
}

func joinArgs(b *strings.Builder, args []int) {
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(runeSeparator)
		}
		b.WriteString(strconv.Itoa(arg))
	}
}

// GetControl builds a CSI sequence: ESC '[' args code.
func GetControl(code rune, args ...int) string {
	var b strings.Builder
	b.WriteByte(runeEscape)
	b.WriteByte(runeIntroduce)
	joinArgs(&b, args)
	b.WriteRune(code)
	return b.String()
}

// GetControlPrivate builds a private CSI sequence: ESC '[' '?' args code.
func GetControlPrivate(code rune, args ...int) string {
	var b strings.Builder
	b.WriteByte(runeEscape)
	b.WriteByte(runeIntroduce)
	b.WriteByte(runePrivate)
	joinArgs(&b, args)
	b.WriteRune(code)
	return b.String()
}

// GetEscape builds a bare escape: ESC args code.
func GetEscape(code rune, args ...int) string {
	var b strings.Builder
	b.WriteByte(runeEscape)
	joinArgs(&b, args)
	b.WriteRune(code)
	return b.String()
}
