package table

// Column names of the fixed post/comment dataset.
const (
	ColPostID    = "post_id"
	ColParentID  = "parent_id"
	ColCommentID = "comment_id"
	ColText      = "text"
	ColCategory  = "category"
	ColTokens    = "tokens"
)

// NoCategory is the category code of a row whose category is null.
const NoCategory = -1

// Record is one row of the dataset.
// Nil pointers are nulls. Tokens stays nil until the tokenizer stage runs.
type Record struct {
	PostID    *int64
	ParentID  *int64
	CommentID *int64
	Text      *string
	Category  int // index into Table.Levels, NoCategory for null
	Tokens    []string
	Extra     []string // values of Table.ExtraColumns, same order
}

// Table is an ordered collection of records plus the column metadata needed
// to write it back out.
type Table struct {
	// Columns is the header in the order it was read.
	Columns []string
	// ExtraColumns lists the header columns that are not part of the schema.
	ExtraColumns []string
	// Levels holds the sorted category values; Record.Category indexes it.
	Levels    []string
	Records   []Record
	Tokenized bool
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Records)
}

// CategoryOf returns the category label of row i and whether it is non-null.
func (t Table) CategoryOf(i int) (string, bool) {
	code := t.Records[i].Category
	if code < 0 || code >= len(t.Levels) {
		return "", false
	}
	return t.Levels[code], true
}

// Texts returns the text column; nulls come back as nil entries.
func (t Table) Texts() []*string {
	out := make([]*string, len(t.Records))
	for i := range t.Records {
		out[i] = t.Records[i].Text
	}
	return out
}

// Clone returns a deep copy so the result can be changed without touching t.
func (t Table) Clone() Table {
	out := Table{
		Columns:      append([]string(nil), t.Columns...),
		ExtraColumns: append([]string(nil), t.ExtraColumns...),
		Levels:       append([]string(nil), t.Levels...),
		Records:      make([]Record, len(t.Records)),
		Tokenized:    t.Tokenized,
	}
	for i, r := range t.Records {
		out.Records[i] = r.clone()
	}
	return out
}

func (r Record) clone() Record {
	c := r
	c.PostID = cloneInt(r.PostID)
	c.ParentID = cloneInt(r.ParentID)
	c.CommentID = cloneInt(r.CommentID)
	c.Text = cloneString(r.Text)
	if r.Tokens != nil {
		c.Tokens = append(make([]string, 0, len(r.Tokens)), r.Tokens...)
	}
	if r.Extra != nil {
		c.Extra = append(make([]string, 0, len(r.Extra)), r.Extra...)
	}
	return c
}

// MapText returns a copy of t with fn applied to every non-null text value.
// Null texts stay null.
func (t Table) MapText(fn func(string) string) Table {
	out := t.Clone()
	for i := range out.Records {
		if out.Records[i].Text == nil {
			continue
		}
		s := fn(*out.Records[i].Text)
		out.Records[i].Text = &s
	}
	return out
}

// Int64 returns a pointer to v, for building records by hand.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to s, for building records by hand.
func String(s string) *string {
	return &s
}

func cloneInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
