package mrp

import (
	"strings"

	"github.com/coregx/coregex"
	"gitlab.com/tozd/go/errors"
)

// RegexStrategy applies a compiled expression by transpiling it to a
// regular expression run on the coregex engine. It exists to cross-check
// the hand-written automaton and to benchmark against it. Semantics differ
// only where the built-in engine's non-backtracking limitation bites:
// a regex can give captured digits back to satisfy a later element, the
// automaton cannot.
type RegexStrategy struct {
	re     *coregex.Regex
	pieces []replacePiece
	strip  bool
}

// replacePiece is one element of the pre-resolved replacement template:
// literal text, or the 1-based regex group to splice in.
type replacePiece struct {
	literal string
	group   int
}

// NewRegexStrategy transpiles expr into a regex and resolves the
// replacement template against its groups.
func NewRegexStrategy(expr *MatchAndReplaceExpression) (*RegexStrategy, error) {
	var pat strings.Builder
	named := make(map[string]int)
	var ordinals []int
	group := 0

	for _, ex := range expr.Match.exprs {
		switch ex := ex.(type) {
		case MatchLiteral:
			pat.WriteString(coregex.QuoteMeta(ex.Text))
		case MatchCapture:
			group++
			if ex.Name != "" {
				named[ex.Name] = group
				pat.WriteString("(?P<")
				pat.WriteString(ex.Name)
				pat.WriteString(">")
			} else {
				ordinals = append(ordinals, group)
				pat.WriteString("(")
			}
			pat.WriteString("[0-9]")
			if ex.Type == CaptureInt {
				pat.WriteString("+")
			}
			pat.WriteString(")")
		}
	}

	re, err := coregex.Compile(pat.String())
	if err != nil {
		return nil, errors.Errorf("compiling transpiled pattern %q: %w", pat.String(), err)
	}

	pieces := make([]replacePiece, 0, len(expr.Replace.exprs))
	for _, ex := range expr.Replace.exprs {
		switch ex := ex.(type) {
		case ReplaceLiteral:
			pieces = append(pieces, replacePiece{literal: ex.Text})
		case ReplaceIdentifier:
			pieces = append(pieces, replacePiece{group: named[ex.Name]})
		case ReplaceCaptureIndex:
			pieces = append(pieces, replacePiece{group: ordinals[ex.Index-1]})
		}
	}

	return &RegexStrategy{re: re, pieces: pieces}, nil
}

// SetStrip selects strip mode, mirroring MatchAndReplacer.
func (s *RegexStrategy) SetStrip(strip bool) {
	s.strip = strip
}

// Apply implements MatchAndReplaceStrategy over the first regex match.
func (s *RegexStrategy) Apply(input string) (string, bool) {
	loc := s.re.FindStringSubmatchIndex(input)
	if loc == nil {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(input))
	if !s.strip {
		b.WriteString(input[:loc[0]])
	}
	for _, p := range s.pieces {
		if p.group == 0 {
			b.WriteString(p.literal)
			continue
		}
		start, end := loc[2*p.group], loc[2*p.group+1]
		b.WriteString(input[start:end])
	}
	if !s.strip {
		b.WriteString(input[loc[1]:])
	}
	return b.String(), true
}
