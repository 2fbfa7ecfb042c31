package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps spelling variants of a term onto one canonical token, so
// "js", "javascript" and "ecmascript" all come out of the keyword tokenizer
// as the same word.
type Lexicon struct {
	// canonical -> variants, canonical first
	groups map[string][]string
	// variant -> canonical
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		groups:       make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadFromYAML reads synonym groups from a YAML file:
//
//	synonyms:
//	  - canonical: javascript
//	    variants: [js, ecmascript]
//	  - canonical: regex
//	    variants: [regexp, regular-expression]
//
// Matching is case-insensitive.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	lex := New()
	for _, entry := range file.Synonyms {
		if strings.TrimSpace(entry.Canonical) == "" {
			continue
		}
		lex.AddSynonymGroup(entry.Canonical, entry.Variants)
	}
	return lex, nil
}

// AddSynonymGroup registers variants of canonical. Re-adding a canonical
// replaces its previous group.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)

	if old, ok := l.groups[canonical]; ok {
		for _, v := range old {
			delete(l.reverseIndex, v)
		}
	}

	group := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			group = append(group, v)
			seen[v] = true
		}
	}

	l.groups[canonical] = group
	for _, v := range group {
		l.reverseIndex[v] = canonical
	}
}

// Normalize returns the canonical form of token, or token lowercased when
// the lexicon does not know it.
func (l *Lexicon) Normalize(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return canonical
	}
	return token
}
