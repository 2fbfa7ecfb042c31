package tokenize

import (
	"strings"
	"testing"

	"github.com/cognicore/textprep/pkg/textprep/lexicon"
)

func keywords(t *testing.T, k *Keyword, text string) []string {
	t.Helper()
	tokens, err := k.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", text, err)
	}
	return tokens
}

func TestKeywordBasic(t *testing.T) {
	k := NewKeyword([]string{"the", "a", "and", "of"}, nil)

	tokens := keywords(t, k, "The quick brown fox jumps over the lazy dog")

	want := []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	if !equalTokens(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
}

func TestKeywordEmptyInput(t *testing.T) {
	k := NewKeyword(nil, nil)

	tokens := keywords(t, k, "")
	if tokens == nil || len(tokens) != 0 {
		t.Errorf("Empty input should produce an empty, non-nil list, got %#v", tokens)
	}
}

func TestKeywordLowercases(t *testing.T) {
	k := NewKeyword(nil, nil)

	for _, tok := range keywords(t, k, "SQL Server GPT-4 Transformer") {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestKeywordProgrammingNames(t *testing.T) {
	k := NewKeyword([]string{"and", "on", "use"}, nil)

	text := "I use C++, C#, F# and .NET on node.js! #hashtag ++ snake_case_name"
	want := []string{"c++", "c#", "f#", ".net", "node.js", "hashtag", "snake_case_name"}
	if got := keywords(t, k, text); !equalTokens(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
	}
}

func TestKeywordJoinersTrimmed(t *testing.T) {
	k := NewKeyword(nil, nil)

	text := "-leading trailing- double--dash state-of-the-art _private_ ..net c#."
	want := []string{"leading", "trailing", "double-dash", "state-of-the-art", "private", ".net", "c#"}
	if got := keywords(t, k, text); !equalTokens(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
	}
}

func TestKeywordNumbersFiltered(t *testing.T) {
	k := NewKeyword(nil, nil)

	text := "python3 released 2023 utf-8 42 3.14 v1.2 +1"
	want := []string{"python3", "released", "utf-8", "v1.2"}
	if got := keywords(t, k, text); !equalTokens(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
	}
}

func TestKeywordSingleCharactersDropped(t *testing.T) {
	k := NewKeyword(nil, nil)

	for _, tok := range keywords(t, k, "a b c é don't real words") {
		if len([]rune(tok)) == 1 {
			t.Errorf("Single character token should be filtered: %s", tok)
		}
	}
}

func TestKeywordPunctuationRemoved(t *testing.T) {
	k := NewKeyword(nil, nil)

	text := "hello! world? test... end. (parens) \"quoted\""
	want := []string{"hello", "world", "test", "end", "parens", "quoted"}
	if got := keywords(t, k, text); !equalTokens(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
	}
}

func TestKeywordStoplistFixedAtConstruction(t *testing.T) {
	stops := []string{"The"}
	k := NewKeyword(stops, nil)
	stops[0] = "cat"

	if got := keywords(t, k, "the cat"); !equalTokens(got, []string{"cat"}) {
		t.Errorf("stoplist should be copied and lowercased, got %v", got)
	}
}

func TestKeywordLexicon(t *testing.T) {
	lex := lexicon.New()
	lex.AddSynonymGroup("javascript", []string{"js", "ecmascript"})
	k := NewKeyword([]string{"in"}, lex)

	text := "JS in ECMAScript"
	want := []string{"javascript", "javascript"}
	if got := keywords(t, k, text); !equalTokens(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, got, want)
	}
}

func TestKeywordLexiconThenStopword(t *testing.T) {
	// Stopwords are checked after normalization.
	lex := lexicon.New()
	lex.AddSynonymGroup("javascript", []string{"js"})
	k := NewKeyword([]string{"javascript"}, lex)

	if got := keywords(t, k, "js rocks"); !equalTokens(got, []string{"rocks"}) {
		t.Errorf("normalized stopword should be dropped, got %v", got)
	}
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
