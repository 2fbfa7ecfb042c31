package table

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind is the target type of a schema column.
type Kind int

const (
	NullableInt64 Kind = iota
	NullableString
	Categorical
)

func (k Kind) String() string {
	switch k {
	case NullableInt64:
		return "Int64"
	case NullableString:
		return "string"
	case Categorical:
		return "category"
	default:
		return "unknown"
	}
}

// Field describes how one named column is coerced on load.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered set of typed columns a table must carry.
type Schema []Field

// PostSchema is the schema of the Stack Exchange posts/comments dump.
var PostSchema = Schema{
	{Name: ColPostID, Kind: NullableInt64},
	{Name: ColParentID, Kind: NullableInt64},
	{Name: ColCommentID, Kind: NullableInt64},
	{Name: ColText, Kind: NullableString},
	{Name: ColCategory, Kind: Categorical},
}

// Lookup returns the field with the given column name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// nullMarkers are the cell values read as null, the same set pandas uses by default.
var nullMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNull reports whether a raw cell value denotes a missing value.
func IsNull(raw string) bool {
	_, ok := nullMarkers[raw]
	return ok
}

// ParseInt64 coerces a raw cell to a nullable int64.
// Integral float spellings such as "42.0" or "1e3" are accepted.
func ParseInt64(raw string) (*int64, error) {
	if IsNull(raw) {
		return nil, nil
	}
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, &strconv.NumError{Func: "ParseInt64", Num: raw, Err: strconv.ErrSyntax}
	}
	v := int64(f)
	return &v, nil
}

// ParseString coerces a raw cell to a nullable string.
func ParseString(raw string) *string {
	if IsNull(raw) {
		return nil
	}
	s := raw
	return &s
}

// Levels collects the distinct non-null values in sorted order and returns
// them with the code of every input value (NoCategory for nulls).
func Levels(raw []string) ([]string, []int) {
	seen := make(map[string]struct{})
	for _, v := range raw {
		if IsNull(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	index := make(map[string]int, len(levels))
	for i, v := range levels {
		index[v] = i
	}
	codes := make([]int, len(raw))
	for i, v := range raw {
		if IsNull(v) {
			codes[i] = NoCategory
			continue
		}
		codes[i] = index[v]
	}
	return levels, codes
}
