package mrp

import (
	"slices"
	"strconv"
)

// Parser consumes the token stream of one pattern with two-token lookahead
// and builds a MatchAndReplaceExpression.
type Parser struct {
	lexer *Lexer
	input string
	tok   Token
	peek  Token

	declared []string // named captures, in declaration order
	ordinals int      // anonymous captures declared so far
}

// NewParser returns a parser over the given pattern string.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input), input: input}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.tok = p.peek
	p.peek = p.lexer.NextToken()
}

// Parse builds the full expression pair. All problems come back as a
// *ParseError; Parse never panics on user input.
func (p *Parser) Parse() (*MatchAndReplaceExpression, error) {
	match, err := p.parseMatchExp()
	if err != nil {
		return nil, err
	}
	replace, err := p.parseReplacementExp()
	if err != nil {
		return nil, err
	}
	return &MatchAndReplaceExpression{Match: match, Replace: replace}, nil
}

// ParseMatchExp parses only the match part of a pattern, up to the "->"
// separator or end of input.
func (p *Parser) ParseMatchExp() (*MatchExpression, error) {
	return p.parseMatchExp()
}

func (p *Parser) parseMatchExp() (*MatchExpression, error) {
	var exprs []AbstractMatchingExpression

	for p.tok.Kind != TokenEnd && p.tok.Kind != TokenArrow {
		switch p.tok.Kind {
		case TokenLiteral:
			exprs = append(exprs, MatchLiteral{Text: p.tok.Text})
			p.advance()
		case TokenLparen:
			capt, err := p.parseCapture()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, capt)
		default:
			return nil, p.errorAt(&ExpectedTokenError{
				Expected: []TokenKind{TokenLiteral, TokenLparen, TokenArrow},
				Found:    p.tok.Kind,
				Text:     p.tok.Text,
				Pos:      p.tok.Start,
			})
		}
	}

	if p.tok.Kind == TokenArrow {
		if p.peek.Kind == TokenEnd {
			return nil, p.errorAt(&UnexpectedTokenError{
				Unexpected: TokenEnd,
				Previous:   TokenArrow,
				Pos:        p.peek.Start,
			})
		}
		p.advance()
	}

	return &MatchExpression{exprs: exprs, ordinals: p.ordinals}, nil
}

// parseCapture parses "(" [ident ":"] type ")" with p.tok on the opening
// parenthesis, leaving p.tok on the token after the closing one.
func (p *Parser) parseCapture() (AbstractMatchingExpression, error) {
	p.advance()

	switch p.tok.Kind {
	case TokenIdent:
		name := p.tok.Text
		if p.peek.Kind == TokenRparen {
			// The identifier sits where a type belongs, as in "(di)":
			// report both the missing colon and the bad type name.
			return nil, p.errorAt(
				&ExpectedTokenError{
					Expected: []TokenKind{TokenColon},
					Found:    p.peek.Kind,
					Text:     p.peek.Text,
					Pos:      p.peek.Start,
				},
				&UnsupportedTokenError{
					Token: Token{Kind: TokenType, Text: p.tok.Text, Start: p.tok.Start},
				},
			)
		}
		p.advance()
		if p.tok.Kind != TokenColon {
			return nil, p.errorAt(&ExpectedTokenError{
				Expected: []TokenKind{TokenColon},
				Found:    p.tok.Kind,
				Text:     p.tok.Text,
				Pos:      p.tok.Start,
			})
		}
		p.advance()
		ct, err := p.parseCaptureType()
		if err != nil {
			return nil, err
		}
		if err := p.expectRparen(); err != nil {
			return nil, err
		}
		p.declared = append(p.declared, name)
		return MatchCapture{Name: name, Type: ct}, nil

	case TokenType:
		ct, err := p.parseCaptureType()
		if err != nil {
			return nil, err
		}
		if err := p.expectRparen(); err != nil {
			return nil, err
		}
		p.ordinals++
		return MatchCapture{Ordinal: p.ordinals, Type: ct}, nil

	default:
		return nil, p.errorAt(&ExpectedTokenError{
			Expected: []TokenKind{TokenIdent, TokenType},
			Found:    p.tok.Kind,
			Text:     p.tok.Text,
			Pos:      p.tok.Start,
		})
	}
}

// parseCaptureType validates the token in type position and maps it to a
// CaptureType.
func (p *Parser) parseCaptureType() (CaptureType, error) {
	if p.tok.Kind != TokenType {
		return 0, p.errorAt(&ExpectedTokenError{
			Expected: []TokenKind{TokenType},
			Found:    p.tok.Kind,
			Text:     p.tok.Text,
			Pos:      p.tok.Start,
		})
	}

	var ct CaptureType
	switch p.tok.Text {
	case typeDigit:
		ct = CaptureDigit
	case typeInt:
		ct = CaptureInt
	default:
		return 0, p.errorAt(&UnsupportedTokenError{Token: p.tok})
	}
	p.advance()
	return ct, nil
}

func (p *Parser) expectRparen() error {
	if p.tok.Kind != TokenRparen {
		return p.errorAt(&ExpectedTokenError{
			Expected: []TokenKind{TokenRparen},
			Found:    p.tok.Kind,
			Text:     p.tok.Text,
			Pos:      p.tok.Start,
		})
	}
	p.advance()
	return nil
}

// parseReplacementExp parses everything after the "->" separator, checking
// every reference against the captures the match part declared.
func (p *Parser) parseReplacementExp() (*ReplaceExpression, error) {
	var exprs []AbstractReplaceExpression

	for p.tok.Kind != TokenEnd {
		switch p.tok.Kind {
		case TokenLiteral:
			exprs = append(exprs, ReplaceLiteral{Text: p.tok.Text})
			p.advance()

		case TokenLparen:
			p.advance()
			ref, err := p.parseReplacementRef()
			if err != nil {
				return nil, err
			}
			if err := p.expectRparen(); err != nil {
				return nil, err
			}
			exprs = append(exprs, ref)

		default:
			return nil, p.errorAt(&ExpectedTokenError{
				Expected: []TokenKind{TokenLiteral, TokenLparen},
				Found:    p.tok.Kind,
				Text:     p.tok.Text,
				Pos:      p.tok.Start,
			})
		}
	}

	return &ReplaceExpression{exprs: exprs}, nil
}

func (p *Parser) parseReplacementRef() (AbstractReplaceExpression, error) {
	switch p.tok.Kind {
	case TokenIdent:
		if !slices.Contains(p.declared, p.tok.Text) {
			return nil, p.errorAt(&UndeclaredIdentifierError{
				Ident:    p.tok.Text,
				Declared: append([]string{}, p.declared...),
				Pos:      p.tok.Start,
			})
		}
		ref := ReplaceIdentifier{Name: p.tok.Text}
		p.advance()
		return ref, nil

	case TokenCaptureIndex:
		n, err := strconv.Atoi(p.tok.Text)
		if err != nil || n < 1 || n > p.ordinals {
			return nil, p.errorAt(&OutOfBoundsCaptureIndexError{
				Index:    n,
				Declared: p.ordinals,
				Pos:      p.tok.Start,
			})
		}
		ref := ReplaceCaptureIndex{Index: n}
		p.advance()
		return ref, nil

	default:
		return nil, p.errorAt(&ExpectedTokenError{
			Expected: []TokenKind{TokenIdent, TokenCaptureIndex},
			Found:    p.tok.Kind,
			Text:     p.tok.Text,
			Pos:      p.tok.Start,
		})
	}
}

func (p *Parser) errorAt(primary Diagnostic, secondary ...Diagnostic) error {
	return &ParseError{
		Input: p.input,
		Diags: append([]Diagnostic{primary}, secondary...),
	}
}
