package mrp

import (
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *MatchAndReplacer {
	t.Helper()
	r, err := Compile(pattern)
	require.NoError(t, err)
	return r
}

func TestMatchAndReplacer_SubstituteInPlace(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    string
	}{
		{
			name:    "only_the_matched_span_is_replaced",
			pattern: "hello(as:dig)->oh(as)hi",
			input:   "ashello090",
			want:    "asoh0hi90",
		},
		{
			name:    "named_reference_in_the_middle",
			pattern: "img(n:int).jpeg->photo-(n).jpg",
			input:   "img042.jpeg",
			want:    "photo-042.jpg",
		},
		{
			name:    "ordinal_references_swap_fields",
			pattern: "(int)-(int)->(2)-(1)",
			input:   "x12-34y",
			want:    "x34-12y",
		},
		{
			name:    "empty_replacement_deletes_the_span",
			pattern: "abc",
			input:   "xabcy",
			want:    "xy",
		},
		{
			name:    "multiple_named_references_reordered",
			pattern: "g-(g:int)-a-(a:int)-al-(al:int)->artist-(a)-album-(al)-genre-(g)",
			input:   "g-7-a-12-al-3",
			want:    "artist-12-album-3-genre-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mustCompile(t, tt.pattern).Apply(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchAndReplacer_StripMode(t *testing.T) {
	r := mustCompile(t, "hello(as:dig)->oh(as)hi")
	r.SetStrip(true)

	inputs := []string{"hello5", "ashello090", "hello345hello"}
	want := []string{"oh5hi", "oh0hi", "oh3hi"}

	for i, input := range inputs {
		got, ok := r.Apply(input)
		require.True(t, ok, input)
		assert.Equal(t, want[i], got)
	}
}

func TestMatchAndReplacer_NoMatchMeansNoChange(t *testing.T) {
	r := mustCompile(t, "abc(n:int)->x(n)")

	_, ok := r.Apply("nothing to see")
	assert.False(t, ok)

	_, ok = r.Apply("")
	assert.False(t, ok)
}

func TestMatchAndReplacer_MultibyteInputOutsideTheSpan(t *testing.T) {
	r := mustCompile(t, "a(d:dig)->(d)x")

	got, ok := r.Apply("a2—a—〰")
	require.True(t, ok)
	assert.Equal(t, "2x—a—〰", got)
	assert.True(t, utf8.ValidString(got))
}

// One compiled replacer is shared by many goroutines, one input per call,
// with no synchronization: captures and match state must stay local.
func TestMatchAndReplacer_ConcurrentApply(t *testing.T) {
	r := mustCompile(t, "file-(n:int)->(n)-file")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				got, ok := r.Apply("file-123")
				assert.True(t, ok)
				assert.Equal(t, "123-file", got)

				got, ok = r.Apply("file-9")
				assert.True(t, ok)
				assert.Equal(t, "9-file", got)
			}
		}()
	}
	wg.Wait()
}

func TestChain_AppliesRulesInOrder(t *testing.T) {
	first := mustCompile(t, "a(n:int)->b(n)")
	second := mustCompile(t, "b(n:int)->c(n)")
	chain := Chain{first, second}

	got, ok := chain.Apply("a1")
	require.True(t, ok)
	assert.Equal(t, "c1", got)

	// The second rule still fires on inputs the first one skips.
	got, ok = chain.Apply("b7")
	require.True(t, ok)
	assert.Equal(t, "c7", got)

	_, ok = chain.Apply("zzz")
	assert.False(t, ok)
}

// A replacement reference with no recorded capture is a bug in the engine,
// not user input; it must fail loudly. Only reachable by assembling the
// expression by hand, since the parser validates all references.
func TestApply_PanicsOnDesyncedReplacement(t *testing.T) {
	expr := &MatchAndReplaceExpression{
		Match: &MatchExpression{
			exprs: []AbstractMatchingExpression{MatchLiteral{Text: "a"}},
		},
		Replace: &ReplaceExpression{
			exprs: []AbstractReplaceExpression{ReplaceIdentifier{Name: "ghost"}},
		},
	}

	assert.Panics(t, func() {
		NewMatchAndReplacer(expr).Apply("a")
	})
}
