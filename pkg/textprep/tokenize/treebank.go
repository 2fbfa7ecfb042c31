package tokenize

import (
	"strings"
	"unicode"
)

// Treebank is a word tokenizer in the style of the Penn Treebank conventions:
//
//   - punctuation becomes its own token: "Hello, world!" -> Hello , world !
//   - hyphens, periods and apostrophes inside a word stay: state-of-the-art, e.g., rock'n'roll
//   - digit groups keep their separators: 1,000 3:30
//   - runs of dots or dashes stay together: ... --
//   - clitics split off: don't -> do n't, they'll -> they 'll
//   - double quotes become `` (opening) and '' (closing)
//   - a word-final period splits unless the word is an abbreviation with
//     inner periods (e.g., U.S.), which only split at the end of the text
//
// Characters not listed (/, =, +, *, _ ...) stay attached to their word.
type Treebank struct{}

// Tokenize implements Tokenizer. It never fails.
func (Treebank) Tokenize(text string) ([]string, error) {
	chunks := strings.Fields(text)
	tokens := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		tokens = splitChunk(tokens, []rune(chunk), i == len(chunks)-1)
	}
	return tokens, nil
}

// splitChunk appends the tokens of one whitespace-free chunk.
func splitChunk(tokens []string, rs []rune, lastChunk bool) []string {
	var word []rune
	flush := func() {
		if len(word) > 0 {
			tokens = appendWord(tokens, string(word))
			word = word[:0]
		}
	}
	emit := func(tok string) {
		flush()
		tokens = append(tokens, tok)
	}

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '"':
			if i == 0 || isOpening(rs[i-1]) {
				emit("``")
			} else {
				emit("''")
			}
		case (r == '.' || r == '-') && i+1 < len(rs) && rs[i+1] == r:
			j := i
			for j < len(rs) && rs[j] == r {
				j++
			}
			emit(string(rs[i:j]))
			i = j - 1
		case alwaysSplit(r):
			emit(string(r))
		case r == ',' || r == ':':
			if len(word) > 0 && unicode.IsDigit(word[len(word)-1]) && i+1 < len(rs) && unicode.IsDigit(rs[i+1]) {
				word = append(word, r)
			} else {
				emit(string(r))
			}
		case r == '\'':
			if len(word) > 0 && word[len(word)-1] != '\'' && closesWord(rs[i+1:]) {
				emit("'")
			} else {
				word = append(word, r)
			}
		case r == '.':
			if closesWord(rs[i+1:]) && (lastChunk || !containsRune(word, '.')) {
				emit(".")
			} else {
				word = append(word, r)
			}
		default:
			word = append(word, r)
		}
	}
	flush()
	return tokens
}

// alwaysSplit lists punctuation that is a token wherever it appears.
func alwaysSplit(r rune) bool {
	switch r {
	case ';', '@', '#', '$', '%', '&', '?', '!', '(', ')', '[', ']', '{', '}', '<', '>':
		return true
	}
	return false
}

func isOpening(r rune) bool {
	switch r {
	case '(', '[', '{', '<', '`', '"':
		return true
	}
	return false
}

// closesWord reports whether rest holds only closing punctuation, meaning the
// current position ends the word.
func closesWord(rest []rune) bool {
	for _, r := range rest {
		switch r {
		case ')', ']', '}', '>', '"', '\'', ',', ';', ':', '?', '!':
		default:
			return false
		}
	}
	return true
}

func containsRune(rs []rune, target rune) bool {
	for _, r := range rs {
		if r == target {
			return true
		}
	}
	return false
}

// clitics are split off the end of a word, longest first.
var clitics = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// fusedWords are split into two tokens as whole words.
var fusedWords = map[string]int{
	"cannot": 3,
	"gimme":  3,
	"gonna":  3,
	"gotta":  3,
	"lemme":  3,
	"wanna":  3,
}

func appendWord(tokens []string, word string) []string {
	// Case folding may change byte lengths, so cuts are made on word itself.
	if lower := strings.ToLower(word); len(lower) == len(word) {
		if cut, ok := fusedWords[lower]; ok {
			return append(tokens, word[:cut], word[cut:])
		}
	}
	for _, c := range clitics {
		if len(word) <= len(c) {
			continue
		}
		stem, suffix := word[:len(word)-len(c)], word[len(word)-len(c):]
		if !strings.EqualFold(suffix, c) || strings.HasSuffix(stem, "'") {
			continue
		}
		return append(tokens, stem, suffix)
	}
	return append(tokens, word)
}
