package mrp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Diagnostic is one positioned problem found while parsing a pattern.
type Diagnostic interface {
	// Position is the byte offset into the pattern string.
	Position() int
	message() string
}

// ExpectedTokenError reports that the grammar required one of a set of token
// kinds and found another.
type ExpectedTokenError struct {
	Expected []TokenKind
	Found    TokenKind
	Text     string
	Pos      int
}

func (e *ExpectedTokenError) Position() int { return e.Pos }

func (e *ExpectedTokenError) message() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = color.BlueString(k.description())
	}
	return fmt.Sprintf("expected %s, but found a %s, %s",
		strings.Join(names, " or "),
		color.RedString(e.Found.description()),
		color.YellowString("%q", e.Text))
}

// UnsupportedTokenError reports a well-formed token naming something the
// language does not support, such as a type other than int or dig.
type UnsupportedTokenError struct {
	Token Token
}

func (e *UnsupportedTokenError) Position() int { return e.Token.Start }

func (e *UnsupportedTokenError) message() string {
	msg := fmt.Sprintf("unsupported token: %s %s",
		color.RedString(e.Token.Kind.description()),
		color.YellowString("%q", e.Token.Text))
	if e.Token.Kind == TokenType {
		msg += fmt.Sprintf(" - supported types are: %s, %s",
			color.MagentaString(typeInt), color.MagentaString(typeDigit))
	}
	return msg
}

// UnexpectedTokenError reports a token the grammar forbids given the token
// immediately before it, such as end of input right after "->".
type UnexpectedTokenError struct {
	Unexpected TokenKind
	Previous   TokenKind
	Pos        int
}

func (e *UnexpectedTokenError) Position() int { return e.Pos }

func (e *UnexpectedTokenError) message() string {
	return fmt.Sprintf("unexpected %s, after a %s",
		color.RedString(e.Unexpected.description()),
		color.BlueString(e.Previous.description()))
}

// UndeclaredIdentifierError reports a replacement referencing a capture name
// the match part never declared. Declared lists every valid name.
type UndeclaredIdentifierError struct {
	Ident    string
	Declared []string
	Pos      int
}

func (e *UndeclaredIdentifierError) Position() int { return e.Pos }

func (e *UndeclaredIdentifierError) message() string {
	declared := make([]string, len(e.Declared))
	for i, d := range e.Declared {
		declared[i] = color.BlueString(d)
	}
	return fmt.Sprintf("undeclared identifier %s; declared: %s",
		color.RedString(e.Ident), strings.Join(declared, ", "))
}

// OutOfBoundsCaptureIndexError reports a replacement referencing an anonymous
// capture beyond how many the match part declared.
type OutOfBoundsCaptureIndexError struct {
	Index    int
	Declared int
	Pos      int
}

func (e *OutOfBoundsCaptureIndexError) Position() int { return e.Pos }

func (e *OutOfBoundsCaptureIndexError) message() string {
	return fmt.Sprintf("capture index %s is out of bounds; the match expression declares %s anonymous capture(s)",
		color.RedString(strconv.Itoa(e.Index)),
		color.BlueString(strconv.Itoa(e.Declared)))
}

// ParseError is the structured result of a failed parse: the offending
// pattern plus one primary diagnostic and any related secondary diagnostics.
type ParseError struct {
	Input string
	Diags []Diagnostic
}

// Primary returns the main diagnostic.
func (e *ParseError) Primary() Diagnostic {
	return e.Diags[0]
}

// Error renders the pattern followed by a pointer line per diagnostic:
// an indent of Position spaces, the pointer glyph, the column, and the
// message. Respects color.NoColor.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(color.YellowString(e.Input))
	for i, d := range e.Diags {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", d.Position()))
		b.WriteString(color.New(color.FgRed, color.Bold).Sprint("↳ @col"))
		b.WriteByte(':')
		b.WriteString(color.New(color.Bold).Sprint(strconv.Itoa(d.Position())))
		b.WriteByte(' ')
		if i > 0 {
			b.WriteString("and ")
		}
		b.WriteString(d.message())
	}
	return b.String()
}
