package mrp

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchAndReplaceStrategy is anything that can turn an input string into its
// replaced form. The boolean result reports whether the input matched at
// all; false means "leave it untouched" and is not an error.
type MatchAndReplaceStrategy interface {
	Apply(input string) (string, bool)
}

// MatchAndReplacer applies a compiled expression with the built-in matching
// engine. The default mode substitutes the matched span in place; strip
// mode returns only the composed replacement text.
//
// Once SetStrip has been called (or skipped), a MatchAndReplacer is
// read-only and safe for concurrent use: all per-call state lives inside
// Apply.
type MatchAndReplacer struct {
	expr  *MatchAndReplaceExpression
	strip bool
}

// NewMatchAndReplacer wraps a parsed expression in the default strategy.
func NewMatchAndReplacer(expr *MatchAndReplaceExpression) *MatchAndReplacer {
	return &MatchAndReplacer{expr: expr}
}

// SetStrip selects strip mode. Call it before sharing the replacer across
// goroutines.
func (r *MatchAndReplacer) SetStrip(strip bool) {
	r.strip = strip
}

// Apply finds the first match in input and composes the output string.
// Match boundaries come from byte-exact literal comparisons and single-byte
// ASCII digit captures, so they always land on UTF-8 character boundaries
// and multi-byte text outside the matched span passes through intact.
func (r *MatchAndReplacer) Apply(input string) (string, bool) {
	m, caps, ok := r.expr.Match.FindAtCapturing(input, 0)
	if !ok {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(input))
	if !r.strip {
		b.WriteString(input[:m.Start])
	}
	for _, ex := range r.expr.Replace.exprs {
		switch ex := ex.(type) {
		case ReplaceLiteral:
			b.WriteString(ex.Text)
		case ReplaceIdentifier:
			b.WriteString(mustCapture(caps, ex.Name))
		case ReplaceCaptureIndex:
			b.WriteString(mustCapture(caps, strconv.Itoa(ex.Index)))
		}
	}
	if !r.strip {
		b.WriteString(input[m.End:])
	}
	return b.String(), true
}

// Chain applies strategies in order, feeding each one's output to the next.
// It reports a match when any link matched.
type Chain []MatchAndReplaceStrategy

// Apply implements MatchAndReplaceStrategy.
func (c Chain) Apply(input string) (string, bool) {
	out := input
	matched := false
	for _, s := range c {
		if next, ok := s.Apply(out); ok {
			out = next
			matched = true
		}
	}
	return out, matched
}

// mustCapture panics on a missing capture value. The parser guarantees every
// replacement reference is declared on the match side and a successful match
// records a value for every program element, so absence here is an engine
// bug, never bad user input.
func mustCapture(caps *Captures, key string) string {
	v, ok := caps.Get(key)
	if !ok {
		panic(fmt.Sprintf("mrp: no capture recorded for %q; parser and matcher are out of sync", key))
	}
	return v
}

// Compile parses pattern and returns a ready replacer, analogous to
// compiling a regular expression once and applying it to many inputs.
func Compile(pattern string) (*MatchAndReplacer, error) {
	expr, err := NewParser(pattern).Parse()
	if err != nil {
		return nil, err
	}
	return NewMatchAndReplacer(expr), nil
}
