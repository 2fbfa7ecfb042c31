package tokenize

import (
	"strings"
	"unicode"

	"github.com/cognicore/textprep/pkg/textprep/lexicon"
)

// Keyword keeps the content words of a post and drops everything else.
//
// Words are runs of letters, digits and the joiners - + # . _, so names
// like c++, c#, .net, node.js, utf-8 and snake_case survive as one token.
// Joiners at the edges of a word are trimmed, except a leading dot before a
// letter (.net) and trailing + or # after a letter (c++, f#). Words are
// lowercased, mapped through the lexicon, and dropped when they are a
// stopword, a single character, or purely numeric.
//
// The stoplist and lexicon are fixed at construction, so one Keyword can be
// shared freely.
type Keyword struct {
	stopwords map[string]struct{}
	lexicon   *lexicon.Lexicon
}

// NewKeyword creates a keyword tokenizer. lex may be nil.
func NewKeyword(stopwords []string, lex *lexicon.Lexicon) *Keyword {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Keyword{stopwords: stops, lexicon: lex}
}

// Tokenize implements Tokenizer. It never fails.
func (k *Keyword) Tokenize(text string) ([]string, error) {
	tokens := []string{}
	rs := []rune(strings.ToLower(text))

	start := -1
	for i := 0; i <= len(rs); i++ {
		if i < len(rs) && isWordRune(rs[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if word := k.keep(trimJoiners(rs[start:i])); word != "" {
				tokens = append(tokens, word)
			}
			start = -1
		}
	}
	return tokens, nil
}

// keep returns the normalized word, or "" when it should be dropped.
func (k *Keyword) keep(word string) string {
	if len([]rune(word)) <= 1 || isNumeric(word) {
		return ""
	}
	if k.lexicon != nil {
		word = k.lexicon.Normalize(word)
	}
	if _, stop := k.stopwords[word]; stop {
		return ""
	}
	return word
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || isJoiner(r)
}

func isJoiner(r rune) bool {
	switch r {
	case '-', '+', '#', '.', '_':
		return true
	}
	return false
}

func trimJoiners(rs []rune) string {
	i := 0
	for i < len(rs) && isJoiner(rs[i]) {
		i++
	}
	if i > 0 && rs[i-1] == '.' && i < len(rs) && unicode.IsLetter(rs[i]) {
		i--
	}

	j := len(rs)
	for j > i {
		r := rs[j-1]
		if r == '+' || r == '#' {
			m := j
			for m > i && (rs[m-1] == '+' || rs[m-1] == '#') {
				m--
			}
			if m > i && unicode.IsLetter(rs[m-1]) {
				break
			}
			j = m
			continue
		}
		if !isJoiner(r) {
			break
		}
		j--
	}

	word := string(rs[i:j])
	for strings.Contains(word, "--") {
		word = strings.ReplaceAll(word, "--", "-")
	}
	return word
}

// isNumeric reports whether s holds only digits and number punctuation:
// 2023, 3.14, 1-2.
func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' && r != '.' && r != '+' {
			return false
		}
	}
	return true
}
