package mrp

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseErr parses a pattern expected to fail and returns the structured error.
func parseErr(t *testing.T, pattern string) *ParseError {
	t.Helper()
	_, err := NewParser(pattern).Parse()
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pattern, perr.Input)
	return perr
}

func TestParser_ExpectedTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    *ExpectedTokenError
	}{
		{
			name:    "colon_where_identifier_expected",
			pattern: "a(:int)",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenIdent, TokenType},
				Found:    TokenColon,
				Text:     ":",
				Pos:      2,
			},
		},
		{
			name:    "replacement_group_cut_off_by_end",
			pattern: "a(n:int)->(",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenIdent, TokenCaptureIndex},
				Found:    TokenEnd,
				Text:     "",
				Pos:      11,
			},
		},
		{
			name:    "empty_replacement_group",
			pattern: "a(n:int)->()",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenIdent, TokenCaptureIndex},
				Found:    TokenRparen,
				Text:     ")",
				Pos:      11,
			},
		},
		{
			name:    "unclosed_capture_at_end",
			pattern: "(n:int",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenRparen},
				Found:    TokenEnd,
				Text:     "",
				Pos:      6,
			},
		},
		{
			name:    "unclosed_capture_before_space",
			pattern: "(n:int ",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenRparen},
				Found:    TokenLiteral,
				Text:     " ",
				Pos:      6,
			},
		},
		{
			name:    "unclosed_capture_before_arrow",
			pattern: "(n:int->(n)",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenRparen},
				Found:    TokenArrow,
				Text:     "->",
				Pos:      6,
			},
		},
		{
			name:    "missing_type_after_colon",
			pattern: "t(n:)8",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenType},
				Found:    TokenRparen,
				Text:     ")",
				Pos:      4,
			},
		},
		{
			name:    "dangling_colon_position_points_after_it",
			pattern: "(ident:)",
			want: &ExpectedTokenError{
				Expected: []TokenKind{TokenType},
				Found:    TokenRparen,
				Text:     ")",
				Pos:      7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.pattern)
			assert.Equal(t, tt.want, perr.Primary())
			assert.Equal(t, tt.want.Pos, perr.Primary().Position())
		})
	}
}

func TestParser_UnsupportedTypeError(t *testing.T) {
	perr := parseErr(t, "t(n:di)8")
	assert.Equal(t, &UnsupportedTokenError{
		Token: Token{Kind: TokenType, Text: "di", Start: 4},
	}, perr.Primary())
}

func TestParser_UnexpectedEndAfterArrow(t *testing.T) {
	perr := parseErr(t, "wer324->")
	assert.Equal(t, &UnexpectedTokenError{
		Unexpected: TokenEnd,
		Previous:   TokenArrow,
		Pos:        8,
	}, perr.Primary())
}

func TestParser_UndeclaredIdentifierErrors(t *testing.T) {
	perr := parseErr(t, "a->(n)")
	assert.Equal(t, &UndeclaredIdentifierError{
		Ident:    "n",
		Declared: []string{},
		Pos:      4,
	}, perr.Primary())

	perr = parseErr(t, "a(a:int)(ell:dig)->(n)")
	assert.Equal(t, &UndeclaredIdentifierError{
		Ident:    "n",
		Declared: []string{"a", "ell"},
		Pos:      20,
	}, perr.Primary())
}

func TestParser_OutOfBoundsCaptureIndexErrors(t *testing.T) {
	perr := parseErr(t, "a->(5)")
	assert.Equal(t, &OutOfBoundsCaptureIndexError{
		Index:    5,
		Declared: 0,
		Pos:      4,
	}, perr.Primary())

	perr = parseErr(t, "(int)->(2)")
	assert.Equal(t, &OutOfBoundsCaptureIndexError{
		Index:    2,
		Declared: 1,
		Pos:      8,
	}, perr.Primary())
}

// An identifier sitting where a type belongs yields two diagnostics for the
// one failure: the missing colon and the unsupported type name.
func TestParser_ChainedDiagnostics(t *testing.T) {
	perr := parseErr(t, "(di)")
	require.Len(t, perr.Diags, 2)
	assert.Equal(t, &ExpectedTokenError{
		Expected: []TokenKind{TokenColon},
		Found:    TokenRparen,
		Text:     ")",
		Pos:      3,
	}, perr.Primary())
	assert.Equal(t, &UnsupportedTokenError{
		Token: Token{Kind: TokenType, Text: "di", Start: 1},
	}, perr.Diags[1])
}

func TestParseError_Rendering(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	t.Run("unsupported_type_lists_supported_ones", func(t *testing.T) {
		perr := parseErr(t, "t(n:di)8")
		msg := perr.Error()
		assert.Contains(t, msg, "t(n:di)8")
		assert.Contains(t, msg, "↳ @col:4")
		assert.Contains(t, msg, `unsupported token: type keyword "di"`)
		assert.Contains(t, msg, "supported types are: int, dig")
	})

	t.Run("pointer_is_indented_to_the_position", func(t *testing.T) {
		perr := parseErr(t, "wer324->")
		msg := perr.Error()
		assert.Contains(t, msg, "\n        ↳ @col:8 ")
		assert.Contains(t, msg, "unexpected end of expression, after a pattern separator")
	})

	t.Run("secondary_diagnostics_are_joined_with_and", func(t *testing.T) {
		perr := parseErr(t, "(di)")
		msg := perr.Error()
		assert.Contains(t, msg, "↳ @col:3 expected")
		assert.Contains(t, msg, "↳ @col:1 and unsupported token")
	})

	t.Run("undeclared_identifier_enumerates_names", func(t *testing.T) {
		perr := parseErr(t, "a(a:int)(ell:dig)->(n)")
		assert.Contains(t, perr.Error(), "undeclared identifier n; declared: a, ell")
	})
}
