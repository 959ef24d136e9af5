package mrp

// The two supported capture type names.
const (
	typeInt   = "int"
	typeDigit = "dig"
)

type lexMode int

const (
	// modeLiteral treats almost everything as literal pattern text.
	modeLiteral lexMode = iota
	// modeCapture classifies alphabetic and numeric runs; entered on '('
	// or ':', left on ')'.
	modeCapture
)

// Lexer splits a pattern string into tokens. Call NextToken until it
// returns a token with Kind TokenEnd.
type Lexer struct {
	input string
	pos   int
	mode  lexMode

	// typePos is set right after a colon: the next alphabetic run sits in
	// type position and is lexed as a type keyword even when it is not a
	// supported type, so the parser can point at it precisely.
	typePos bool
}

// NewLexer returns a lexer over the given pattern string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token in the pattern.
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEnd, Start: l.pos}
	}

	switch l.input[l.pos] {
	case '(':
		return l.punct(TokenLparen, modeCapture)
	case ')':
		return l.punct(TokenRparen, modeLiteral)
	case ':':
		tok := l.punct(TokenColon, modeCapture)
		l.typePos = true
		return tok
	}

	// "->" separates the match part from the replacement part in either
	// mode; a lone '-' is ordinary literal text.
	if l.arrowAt(l.pos) {
		tok := Token{Kind: TokenArrow, Text: "->", Start: l.pos}
		l.pos += 2
		l.typePos = false
		return tok
	}

	if l.mode == modeCapture {
		return l.captureToken()
	}
	return l.literalRun()
}

// captureToken lexes one token inside a capture group: an identifier or
// type keyword, a capture index, or a single stray byte the parser will
// reject with a position attached.
func (l *Lexer) captureToken() Token {
	start := l.pos
	ch := l.input[l.pos]

	switch {
	case isASCIIAlpha(ch):
		for l.pos < len(l.input) && isASCIIAlpha(l.input[l.pos]) {
			l.pos++
		}
		text := l.input[start:l.pos]
		kind := TokenIdent
		if l.typePos || text == typeInt || text == typeDigit {
			kind = TokenType
		}
		l.typePos = false
		return Token{Kind: kind, Text: text, Start: start}

	case isASCIIDigit(ch):
		for l.pos < len(l.input) && isASCIIDigit(l.input[l.pos]) {
			l.pos++
		}
		l.typePos = false
		return Token{Kind: TokenCaptureIndex, Text: l.input[start:l.pos], Start: start}
	}

	l.pos++
	l.typePos = false
	return Token{Kind: TokenLiteral, Text: l.input[start:l.pos], Start: start}
}

// literalRun consumes a maximal run of literal text. Runs end at '(', ')',
// ':' or a "->" separator, never mid-run.
func (l *Lexer) literalRun() Token {
	start := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '(', ')', ':':
			return Token{Kind: TokenLiteral, Text: l.input[start:l.pos], Start: start}
		}
		if l.arrowAt(l.pos) {
			break
		}
		l.pos++
	}
	return Token{Kind: TokenLiteral, Text: l.input[start:l.pos], Start: start}
}

func (l *Lexer) punct(kind TokenKind, next lexMode) Token {
	tok := Token{Kind: kind, Text: l.input[l.pos : l.pos+1], Start: l.pos}
	l.pos++
	l.mode = next
	l.typePos = false
	return tok
}

func (l *Lexer) arrowAt(pos int) bool {
	return l.input[pos] == '-' && pos+1 < len(l.input) && l.input[pos+1] == '>'
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
