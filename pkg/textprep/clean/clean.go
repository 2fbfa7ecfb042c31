package clean

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/textprep/pkg/textprep/table"
)

// Noise patterns, combined into NoisePattern in this order. When two
// alternatives match at the same position the earlier one wins.
const (
	htmlTagPattern  = `<.*?>`
	latexPattern    = `\$.*?\$`
	newlinePattern  = `\n`
	mentionPattern  = `@[\p{L}\p{N}_]+`
	integerPattern  = `[+-]?\p{Nd}+`
	bracketsPattern = `\[.+\]` // greedy: "[a][b]" is one match
)

// NoisePattern is the union of all noise patterns. Matching is leftmost-first
// and non-overlapping, so a single ReplaceAll pass deletes every match.
var NoisePattern = regexp.MustCompile(strings.Join([]string{
	htmlTagPattern,
	latexPattern,
	newlinePattern,
	mentionPattern,
	integerPattern,
	bracketsPattern,
}, "|"))

// Strip deletes every noise match from s.
func Strip(s string) string {
	return NoisePattern.ReplaceAllLiteralString(s, "")
}

// StripNoise returns a copy of t with noise removed from every non-null text.
func StripNoise(t table.Table) table.Table {
	return t.MapText(Strip)
}

// Lowercase returns a copy of t with every non-null text lowercased.
func Lowercase(t table.Table) table.Table {
	return t.MapText(strings.ToLower)
}

// DecodeEntities returns a copy of t with HTML character references in the
// text replaced by the characters they name. In the pipeline it runs after
// StripNoise, which has already removed the digits of numeric references
// such as &#39;, so only named entities (&amp;, &lt;, &quot;) are decoded.
func DecodeEntities(t table.Table) table.Table {
	return t.MapText(html.UnescapeString)
}
