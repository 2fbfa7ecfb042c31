package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treebank(t *testing.T, text string) []string {
	t.Helper()
	tokens, err := Treebank{}.Tokenize(text)
	require.NoError(t, err)
	return tokens
}

func TestTreebankSeparatesPunctuation(t *testing.T) {
	assert.Equal(t, []string{"Hello", ",", "world", "!"}, treebank(t, "Hello, world!"))
}

func TestTreebankEmptyInput(t *testing.T) {
	tokens := treebank(t, "")
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)

	assert.Empty(t, treebank(t, "   \t\n  "))
}

func TestTreebankCases(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"is  > ?", []string{"is", ">", "?"}},
		{": ", []string{":"}},
		{"state-of-the-art tools", []string{"state-of-the-art", "tools"}},
		{"I don't know", []string{"I", "do", "n't", "know"}},
		{"they'll say it's fine", []string{"they", "'ll", "say", "it", "'s", "fine"}},
		{"I'm here", []string{"I", "'m", "here"}},
		{"we cannot stop", []string{"we", "can", "not", "stop"}},
		{"costs 1,000 at 3:30", []string{"costs", "1,000", "at", "3:30"}},
		{"a,b", []string{"a", ",", "b"}},
		{"wait... what", []string{"wait", "...", "what"}},
		{"well--maybe", []string{"well", "--", "maybe"}},
		{"(see below)", []string{"(", "see", "below", ")"}},
		{`he said "hi there"`, []string{"he", "said", "``", "hi", "there", "''"}},
		{"the dogs' bowls", []string{"the", "dogs", "'", "bowls"}},
		{"pi is 3.14", []string{"pi", "is", "3.14"}},
		{"x/y = z+1", []string{"x/y", "=", "z+1"}},
		{"$5 & 10%", []string{"$", "5", "&", "10", "%"}},
		{"snake_case_name", []string{"snake_case_name"}},
		{"really?!", []string{"really", "?", "!"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, treebank(t, tc.in), "Tokenize(%q)", tc.in)
	}
}

func TestTreebankFinalPeriod(t *testing.T) {
	assert.Equal(t, []string{"It", "works", "."}, treebank(t, "It works."))
	assert.Equal(t, []string{"One", ".", "Two", "."}, treebank(t, "One. Two."))
}

func TestTreebankAbbreviations(t *testing.T) {
	// Inner periods mark an abbreviation; it only loses its period at the end.
	assert.Equal(t, []string{"e.g.", "this"}, treebank(t, "e.g. this"))
	assert.Equal(t, []string{"in", "the", "U.S", "."}, treebank(t, "in the U.S."))
}

func TestTreebankClosingPunctuationAfterPeriod(t *testing.T) {
	assert.Equal(t, []string{"(", "done", ".", ")"}, treebank(t, "(done.)"))
}

func TestTreebankUnicode(t *testing.T) {
	assert.Equal(t, []string{"café", "naïve", "!"}, treebank(t, "café naïve!"))
}

func TestTreebankCliticsAfterCaseChangingLetters(t *testing.T) {
	// Ⱥ lowercases to a longer encoding; splits must still land on the clitic.
	assert.Equal(t, []string{"Ⱥ", "N'T"}, treebank(t, "ȺN'T"))
	assert.Equal(t, []string{"Ⱥ", "'s"}, treebank(t, "Ⱥ's"))
	assert.Equal(t, []string{"ȺRE", "N'T"}, treebank(t, "ȺREN'T"))
	assert.Equal(t, []string{"CAN", "NOT"}, treebank(t, "CANNOT"))
}
