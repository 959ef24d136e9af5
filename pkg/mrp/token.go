package mrp

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenLparen
	TokenRparen
	TokenType
	TokenIdent
	TokenColon
	TokenArrow
	TokenCaptureIndex
	TokenEnd
)

// description is the human-readable name used in diagnostics.
func (k TokenKind) description() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenType:
		return "type keyword"
	case TokenIdent:
		return "identifier"
	case TokenArrow:
		return "pattern separator"
	case TokenCaptureIndex:
		return "capture index"
	case TokenEnd:
		return "end of expression"
	default:
		return "special character"
	}
}

// Token is one lexeme of the pattern language. Text is a view into the
// original pattern string and is empty only for End. Start is a byte offset
// into the pattern; runs only ever break on ASCII punctuation, so offsets
// always land on UTF-8 boundaries.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
}
