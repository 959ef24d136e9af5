package mrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegexStrategy(t *testing.T, pattern string) *RegexStrategy {
	t.Helper()
	expr, err := NewParser(pattern).Parse()
	require.NoError(t, err)
	s, err := NewRegexStrategy(expr)
	require.NoError(t, err)
	return s
}

func TestRegexStrategy_FirstMatchSubstitution(t *testing.T) {
	s := mustRegexStrategy(t, "(num:int)asdf->lul(num)")

	got, ok := s.Apply("lk234asdfas")
	require.True(t, ok)
	assert.Equal(t, "lklul234as", got)

	_, ok = s.Apply("no digits here")
	assert.False(t, ok)
}

func TestRegexStrategy_StripMode(t *testing.T) {
	s := mustRegexStrategy(t, "(num:int)asdf->lul(num)")
	s.SetStrip(true)

	got, ok := s.Apply("lk234asdfas")
	require.True(t, ok)
	assert.Equal(t, "lul234", got)
}

// The transpiled engine and the hand-written automaton must agree wherever
// the automaton's non-backtracking limitation is not in play.
func TestRegexStrategy_AgreesWithBuiltinEngine(t *testing.T) {
	tests := []struct {
		pattern string
		inputs  []string
	}{
		{
			pattern: "hello(as:dig)->oh(as)hi",
			inputs:  []string{"hello5", "ashello090", "hello345hello", "nope"},
		},
		{
			pattern: "(int)-(int)->(2)-(1)",
			inputs:  []string{"12-34", "x12-34y", "1-2", "a-b"},
		},
		{
			pattern: "img(n:int).jpeg->photo-(n).jpg",
			inputs:  []string{"img042.jpeg", "imgX.jpeg", "aimg7.jpegz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			builtin := mustCompile(t, tt.pattern)
			regex := mustRegexStrategy(t, tt.pattern)

			for _, input := range tt.inputs {
				wantOut, wantOK := builtin.Apply(input)
				gotOut, gotOK := regex.Apply(input)
				assert.Equal(t, wantOK, gotOK, input)
				if wantOK {
					assert.Equal(t, wantOut, gotOut, input)
				}
			}
		})
	}
}

func TestRegexStrategy_LiteralMetacharactersAreQuoted(t *testing.T) {
	s := mustRegexStrategy(t, "v1.2(n:dig)->v1.3(n)")

	// An unquoted '.' would also accept "v1x2".
	_, ok := s.Apply("v1x25")
	assert.False(t, ok)

	got, ok := s.Apply("v1.25")
	require.True(t, ok)
	assert.Equal(t, "v1.35", got)
}
