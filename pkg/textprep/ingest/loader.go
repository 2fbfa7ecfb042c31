package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/table"
)

const utf8BOM = "\ufeff"

// Options controls how a file is read.
type Options struct {
	// RowLimit caps the number of data rows read after the header; 0 reads all.
	RowLimit int
}

// Option mutates Options.
type Option func(*Options)

// WithRowLimit reads only the first n data rows. n <= 0 reads the whole file.
func WithRowLimit(n int) Option {
	return func(o *Options) {
		o.RowLimit = n
	}
}

// Load reads a comma-separated file, decompressing it by extension, and
// coerces the schema columns. Every failure is a DataLoadError.
func Load(path string, opts ...Option) (table.Table, error) {
	rc, err := openFile(path)
	if err != nil {
		return table.Table{}, internalerr.WrapDataLoad(err, "open %s", path)
	}
	defer rc.Close()

	tbl, err := Read(rc, opts...)
	if err != nil {
		return table.Table{}, internalerr.WrapDataLoad(err, "load %s", path)
	}
	return tbl, nil
}

// Read loads a table from an already opened, uncompressed stream.
func Read(r io.Reader, opts ...Option) (table.Table, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	schema := table.PostSchema

	cr := csv.NewReader(newQuotedCRReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table.Table{}, internalerr.DataLoad("empty input: no header row")
	}
	if err != nil {
		return table.Table{}, internalerr.WrapDataLoad(err, "read header")
	}
	restoreCR(header)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	layout, err := resolveLayout(header, schema)
	if err != nil {
		return table.Table{}, err
	}

	var rows [][]string
	for o.RowLimit <= 0 || len(rows) < o.RowLimit {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Table{}, internalerr.WrapDataLoad(err, "malformed row %d", len(rows)+1)
		}
		if len(row) > len(header) {
			return table.Table{}, internalerr.DataLoad(
				"row %d: expected %d fields, saw %d", len(rows)+1, len(header), len(row))
		}
		restoreCR(row)
		rows = append(rows, row)
	}

	return build(header, schema, layout, rows)
}

// layout maps schema columns and extra columns to header positions.
type layout struct {
	typed map[string]int
	extra []int
}

func resolveLayout(header []string, schema table.Schema) (layout, error) {
	l := layout{typed: make(map[string]int, len(schema))}
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if seen[name] {
			return layout{}, internalerr.DataLoad("duplicate column %q in header", name)
		}
		seen[name] = true
		if _, ok := schema.Lookup(name); ok {
			l.typed[name] = i
			continue
		}
		l.extra = append(l.extra, i)
	}
	var missing []string
	for _, f := range schema {
		if _, ok := l.typed[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return layout{}, internalerr.DataLoad("missing columns: %s", strings.Join(missing, ", "))
	}
	return l, nil
}

func build(header []string, schema table.Schema, l layout, rows [][]string) (table.Table, error) {
	tbl := table.Table{
		Columns: append([]string(nil), header...),
		Records: make([]table.Record, len(rows)),
	}
	for _, idx := range l.extra {
		tbl.ExtraColumns = append(tbl.ExtraColumns, header[idx])
	}

	var rawCategories []string
	for i, row := range rows {
		rec := &tbl.Records[i]
		rec.Category = table.NoCategory

		for _, f := range schema {
			raw := cell(row, l.typed[f.Name])
			switch f.Kind {
			case table.NullableInt64:
				v, err := table.ParseInt64(raw)
				if err != nil {
					return table.Table{}, internalerr.DataLoad(
						"row %d, column %q: cannot coerce %q to %s", i+1, f.Name, raw, f.Kind)
				}
				setInt(rec, f.Name, v)
			case table.NullableString:
				rec.Text = table.ParseString(raw)
			case table.Categorical:
				rawCategories = append(rawCategories, raw)
			}
		}

		if len(l.extra) > 0 {
			rec.Extra = make([]string, len(l.extra))
			for j, idx := range l.extra {
				rec.Extra[j] = cell(row, idx)
			}
		}
	}

	levels, codes := table.Levels(rawCategories)
	tbl.Levels = levels
	for i, code := range codes {
		tbl.Records[i].Category = code
	}
	return tbl, nil
}

// cell returns the value at idx; short rows are padded with nulls.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func setInt(rec *table.Record, name string, v *int64) {
	switch name {
	case table.ColPostID:
		rec.PostID = v
	case table.ColParentID:
		rec.ParentID = v
	case table.ColCommentID:
		rec.CommentID = v
	}
}
