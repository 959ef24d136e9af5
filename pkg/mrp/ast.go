package mrp

import "strconv"

// CaptureType is the typed class of text a capture group consumes.
type CaptureType int

const (
	// CaptureDigit matches exactly one ASCII digit.
	CaptureDigit CaptureType = iota
	// CaptureInt matches a maximal run of one or more ASCII digits.
	CaptureInt
)

func (t CaptureType) String() string {
	if t == CaptureDigit {
		return typeDigit
	}
	return typeInt
}

// AbstractMatchingExpression is one element of a compiled match program:
// either a MatchLiteral or a MatchCapture.
type AbstractMatchingExpression interface {
	matchingExpr()
}

// MatchLiteral matches its text exactly, byte for byte.
type MatchLiteral struct {
	Text string
}

// MatchCapture matches one typed capture group. Name is empty for ordinal
// (anonymous) captures, in which case Ordinal holds the 1-based position
// among the anonymous captures; named captures have Ordinal zero.
type MatchCapture struct {
	Name    string
	Ordinal int
	Type    CaptureType
}

func (MatchLiteral) matchingExpr() {}
func (MatchCapture) matchingExpr() {}

// key is the lookup key a capture stores its value under. Names are
// alphabetic and ordinals numeric, so the two spaces cannot collide.
func (c MatchCapture) key() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(c.Ordinal)
}

// AbstractReplaceExpression is one element of a replacement template.
type AbstractReplaceExpression interface {
	replaceExpr()
}

// ReplaceLiteral emits its text verbatim.
type ReplaceLiteral struct {
	Text string
}

// ReplaceIdentifier emits the value of the named capture.
type ReplaceIdentifier struct {
	Name string
}

// ReplaceCaptureIndex emits the value of the n-th anonymous capture,
// 1-based, counted left to right over the match part.
type ReplaceCaptureIndex struct {
	Index int
}

func (ReplaceLiteral) replaceExpr()      {}
func (ReplaceIdentifier) replaceExpr()   {}
func (ReplaceCaptureIndex) replaceExpr() {}

// MatchExpression is a compiled, immutable match program. It carries no
// per-call state, so one compiled expression can serve any number of
// concurrent callers.
type MatchExpression struct {
	exprs    []AbstractMatchingExpression
	ordinals int
}

// Exprs returns the program elements in order.
func (e *MatchExpression) Exprs() []AbstractMatchingExpression {
	return e.exprs
}

// Ordinals reports how many anonymous captures the program declares.
func (e *MatchExpression) Ordinals() int {
	return e.ordinals
}

// ReplaceExpression is a compiled replacement template.
type ReplaceExpression struct {
	exprs []AbstractReplaceExpression
}

// Exprs returns the template elements in order.
func (e *ReplaceExpression) Exprs() []AbstractReplaceExpression {
	return e.exprs
}

// MatchAndReplaceExpression pairs a match program with its replacement
// template. The parser guarantees, permanently, that every identifier and
// capture index on the replace side is declared on the match side.
type MatchAndReplaceExpression struct {
	Match   *MatchExpression
	Replace *ReplaceExpression
}
