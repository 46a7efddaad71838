package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meld/logging"
)

func scanAll(t *testing.T, src string) []*Token {
	t.Helper()

	sc := NewScanner(src, &logging.LogContext{ModuleName: "test", FilePath: "test"})

	var toks []*Token
	for {
		tok, err := sc.ReadToken()
		require.NoError(t, err)

		if tok.Kind == EOF {
			return toks
		}

		toks = append(toks, tok)
	}
}

func kindsOf(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "def incr let letter fail!")

	assert.Equal(t, []int{DEF, IDENTIFIER, LET, IDENTIFIER, FAIL}, kindsOf(toks))
	assert.Equal(t, "incr", toks[1].Value)
	assert.Equal(t, "letter", toks[3].Value)
}

func TestScanSymbolsLongestMatch(t *testing.T) {
	tests := []struct {
		src   string
		kinds []int
	}{
		{"< <= <-", []int{LT, LTEQ, BINDTO}},
		{"= == =>", []int{ASSIGN, EQ, UPDATER}},
		{". ..", []int{DOT, RANGETO}},
		{"!=", []int{NEQ}},
		{"a<-b", []int{IDENTIFIER, BINDTO, IDENTIFIER}},
		{"x..y", []int{IDENTIFIER, RANGETO, IDENTIFIER}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.kinds, kindsOf(scanAll(t, tc.src)), "source: %s", tc.src)
	}
}

func TestScanStringLit(t *testing.T) {
	toks := scanAll(t, `require "lib/math"`)

	require.Equal(t, []int{REQUIRE, STRINGLIT}, kindsOf(toks))

	// quotes are not part of the token value
	assert.Equal(t, "lib/math", toks[1].Value)
}

func TestScanComments(t *testing.T) {
	toks := scanAll(t, "x # trailing comment\n# whole line\ny")

	require.Equal(t, []int{IDENTIFIER, IDENTIFIER}, kindsOf(toks))
	assert.Equal(t, "x", toks[0].Value)
	assert.Equal(t, "y", toks[1].Value)
	assert.Equal(t, 3, toks[1].Line)
}

func TestScanPositions(t *testing.T) {
	toks := scanAll(t, "ab\n  cd")

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)

	pos := TextPositionOfToken(toks[1])
	assert.Equal(t, 2, pos.StartCol)
	assert.Equal(t, 4, pos.EndCol)
}

func TestScanUnclosedString(t *testing.T) {
	sc := NewScanner(`"never closed`, &logging.LogContext{ModuleName: "test"})

	_, err := sc.ReadToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed string literal")
}

func TestScanBareBang(t *testing.T) {
	sc := NewScanner("x ! y", &logging.LogContext{ModuleName: "test"})

	_, err := sc.ReadToken()
	require.NoError(t, err)

	_, err = sc.ReadToken()
	require.Error(t, err)
}

func TestScanUnknownCharacter(t *testing.T) {
	sc := NewScanner("@", &logging.LogContext{ModuleName: "test"})

	_, err := sc.ReadToken()
	require.Error(t, err)

	synErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, logging.LMKToken, synErr.Kind)
}
