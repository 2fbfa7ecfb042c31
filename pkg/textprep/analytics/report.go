package analytics

import (
	"sort"

	"github.com/cognicore/textprep/pkg/textprep/table"
)

// Report summarises one pipeline run.
type Report struct {
	Rows        int64
	NullTexts   int64
	EmptyTokens int64
	TotalTokens int64
	Vocabulary  int
	Categories  []CategoryCount
	TopTokens   []TokenCount
	TopPairs    []PairStat
}

type CategoryCount struct {
	Category string
	Rows     int64
}

// Summarize builds a report for a tokenized table, keeping the topN most
// frequent tokens and phrase candidates.
func Summarize(t table.Table, topN int) Report {
	a := NewAnalyzer()
	a.ProcessTable(t)
	stats := a.Snapshot()

	cats := make([]CategoryCount, 0, len(stats.CategoryDocs))
	for cat, n := range stats.CategoryDocs {
		cats = append(cats, CategoryCount{Category: cat, Rows: n})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Category < cats[j].Category })

	return Report{
		Rows:        stats.TotalDocs,
		NullTexts:   stats.NullTexts,
		EmptyTokens: stats.EmptyDocs,
		TotalTokens: stats.TotalTokens,
		Vocabulary:  len(stats.TokenDF),
		Categories:  cats,
		TopTokens:   stats.TopTokens(topN),
		TopPairs:    stats.TopPairs(topN, 0),
	}
}

// Fields flattens the report into zap key/value pairs.
func (r Report) Fields() []interface{} {
	cats := make(map[string]int64, len(r.Categories))
	for _, c := range r.Categories {
		cats[c.Category] = c.Rows
	}
	top := make([]string, len(r.TopTokens))
	for i, tc := range r.TopTokens {
		top[i] = tc.Token
	}
	pairs := make([]string, len(r.TopPairs))
	for i, p := range r.TopPairs {
		pairs[i] = p.A + " " + p.B
	}
	return []interface{}{
		"rows", r.Rows,
		"null_texts", r.NullTexts,
		"empty_token_rows", r.EmptyTokens,
		"total_tokens", r.TotalTokens,
		"vocabulary", r.Vocabulary,
		"categories", cats,
		"top_tokens", top,
		"top_pairs", pairs,
	}
}
