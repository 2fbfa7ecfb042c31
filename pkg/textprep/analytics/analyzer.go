package analytics

import (
	"math"
	"sort"

	"github.com/cognicore/textprep/pkg/textprep/table"
)

// Analyzer aggregates document-level token and category counts over the
// tokens column of a cleaned table. One row is one document.
type Analyzer struct {
	totalDocs    int64
	nullTexts    int64
	emptyDocs    int64
	totalTokens  int64
	tokenDF      map[string]int64
	tokenCats    map[string]map[string]int64
	catDocs      map[string]int64
	pairCounts   map[pair]int64 // documents in which the pair is adjacent
	bigramCounts map[pair]int64 // adjacent tokens, ordered
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tokenDF:      make(map[string]int64),
		tokenCats:    make(map[string]map[string]int64),
		catDocs:      make(map[string]int64),
		pairCounts:   make(map[pair]int64),
		bigramCounts: make(map[pair]int64),
	}
}

// Process consumes one document's tokens and its category. An empty
// category means the row had none.
func (a *Analyzer) Process(tokens []string, category string) {
	a.totalDocs++
	a.totalTokens += int64(len(tokens))
	if len(tokens) == 0 {
		a.emptyDocs++
	}
	if category != "" {
		a.catDocs[category]++
	}

	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		a.tokenDF[tok]++
		if category != "" {
			if a.tokenCats[tok] == nil {
				a.tokenCats[tok] = make(map[string]int64)
			}
			a.tokenCats[tok][category]++
		}
	}

	// Co-occurrence is only tracked for pairs that are adjacent somewhere in
	// the document, so the work per row stays linear in its length.
	docPairs := make(map[pair]struct{})
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] == "" || tokens[i+1] == "" || tokens[i] == tokens[i+1] {
			continue
		}
		a.bigramCounts[pair{A: tokens[i], B: tokens[i+1]}]++
		docPairs[newPair(tokens[i], tokens[i+1])] = struct{}{}
	}
	for p := range docPairs {
		a.pairCounts[p]++
	}
}

// ProcessTable feeds every row of a tokenized table.
func (a *Analyzer) ProcessTable(t table.Table) {
	for i, rec := range t.Records {
		if rec.Text == nil {
			a.nullTexts++
		}
		cat, _ := t.CategoryOf(i)
		a.Process(rec.Tokens, cat)
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs    int64
	NullTexts    int64
	EmptyDocs    int64
	TotalTokens  int64
	TokenDF      map[string]int64
	TokenCats    map[string]map[string]int64
	CategoryDocs map[string]int64
	PairCounts   map[pair]int64 // documents with the pair adjacent, either order
	BigramCounts map[pair]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	copyCats := make(map[string]map[string]int64, len(a.tokenCats))
	for tok, cats := range a.tokenCats {
		copyCats[tok] = make(map[string]int64, len(cats))
		for cat, count := range cats {
			copyCats[tok][cat] = count
		}
	}
	copyDF := make(map[string]int64, len(a.tokenDF))
	for tok, count := range a.tokenDF {
		copyDF[tok] = count
	}
	copyCatDocs := make(map[string]int64, len(a.catDocs))
	for cat, count := range a.catDocs {
		copyCatDocs[cat] = count
	}
	copyPairs := make(map[pair]int64, len(a.pairCounts))
	for p, count := range a.pairCounts {
		copyPairs[p] = count
	}
	copyBigrams := make(map[pair]int64, len(a.bigramCounts))
	for p, count := range a.bigramCounts {
		copyBigrams[p] = count
	}
	return Stats{
		TotalDocs:    a.totalDocs,
		NullTexts:    a.nullTexts,
		EmptyDocs:    a.emptyDocs,
		TotalTokens:  a.totalTokens,
		TokenDF:      copyDF,
		TokenCats:    copyCats,
		CategoryDocs: copyCatDocs,
		PairCounts:   copyPairs,
		BigramCounts: copyBigrams,
	}
}

// TokenCount is a token with its document frequency.
type TokenCount struct {
	Token string
	DF    int64
}

// TopTokens returns the limit tokens with the highest document frequency,
// ties broken alphabetically. limit <= 0 returns all of them.
func (s Stats) TopTokens(limit int) []TokenCount {
	out := make([]TokenCount, 0, len(s.TokenDF))
	for tok, df := range s.TokenDF {
		out = append(out, TokenCount{Token: tok, DF: df})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DF == out[j].DF {
			return out[i].Token < out[j].Token
		}
		return out[i].DF > out[j].DF
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// StopwordCandidate describes a token that is frequent and spread evenly
// over categories, which makes it a candidate for the keyword stoplist.
type StopwordCandidate struct {
	Token      string
	DF         int64
	DFPercent  float64
	IDF        float64
	CatEntropy float64
}

// StopwordCandidates returns tokens present in at least minDFPercent of
// documents, most frequent first.
func (s Stats) StopwordCandidates(minDFPercent float64, limit int) []StopwordCandidate {
	var out []StopwordCandidate
	if s.TotalDocs == 0 {
		return out
	}
	for tok, df := range s.TokenDF {
		dfPercent := 100 * (float64(df) / float64(s.TotalDocs))
		if dfPercent < minDFPercent {
			continue
		}
		out = append(out, StopwordCandidate{
			Token:      tok,
			DF:         df,
			DFPercent:  dfPercent,
			IDF:        math.Log(float64(s.TotalDocs) / (1 + float64(df))),
			CatEntropy: entropy(s.TokenCats[tok]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DF == out[j].DF {
			return out[i].Token < out[j].Token
		}
		return out[i].DF > out[j].DF
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func entropy(counts map[string]int64) float64 {
	if len(counts) == 0 {
		return 0
	}
	var total float64
	for _, c := range counts {
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / total
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h / math.Log2(float64(len(counts))+1)
}

// PairStat describes combined metrics for an adjacent token pair.
type PairStat struct {
	A           string
	B           string
	PMI         float64 // document-level relatedness
	BigramFreq  int64   // how often B directly follows A
	Support     int64   // documents in which A and B are adjacent
	PhraseScore float64 // BigramFreq * PMI
}

// TopPairs returns phrase candidates ranked by bigram frequency weighted by
// document PMI. Pairs with PMI below minPMI are dropped, which filters
// adjacencies like "the code" that are frequent but carry no association.
func (s Stats) TopPairs(limit int, minPMI float64) []PairStat {
	if s.TotalDocs == 0 {
		return nil
	}
	var stats []PairStat
	for p, bigramCount := range s.BigramCounts {
		dfA := s.TokenDF[p.A]
		dfB := s.TokenDF[p.B]
		if dfA == 0 || dfB == 0 {
			continue
		}
		docPairCount := s.PairCounts[newPair(p.A, p.B)]
		if docPairCount == 0 {
			continue
		}
		pmi := computePMI(docPairCount, dfA, dfB, s.TotalDocs)
		if pmi < minPMI {
			continue
		}
		stats = append(stats, PairStat{
			A:           p.A,
			B:           p.B,
			PMI:         pmi,
			BigramFreq:  bigramCount,
			Support:     docPairCount,
			PhraseScore: float64(bigramCount) * pmi,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].PhraseScore == stats[j].PhraseScore {
			if stats[i].BigramFreq == stats[j].BigramFreq {
				if stats[i].A == stats[j].A {
					return stats[i].B < stats[j].B
				}
				return stats[i].A < stats[j].A
			}
			return stats[i].BigramFreq > stats[j].BigramFreq
		}
		return stats[i].PhraseScore > stats[j].PhraseScore
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func computePMI(pairCount, dfA, dfB, totalDocs int64) float64 {
	if dfA == 0 || dfB == 0 || totalDocs == 0 {
		return 0
	}
	smooth := 1.0
	numerator := (float64(pairCount) + smooth) / float64(totalDocs)
	denominator := ((float64(dfA) + smooth) / float64(totalDocs)) * ((float64(dfB) + smooth) / float64(totalDocs))
	return math.Log(numerator / denominator)
}

type pair struct {
	A string
	B string
}

func newPair(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{A: a, B: b}
}
