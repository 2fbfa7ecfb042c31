package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/cognicore/textprep/pkg/textprep/table"
)

// Write serializes t as comma-separated text with a header row. Columns come
// out in input order, followed by tokens when the table has been tokenized.
// Nulls are written as empty fields; no row index is written.
func Write(w io.Writer, t table.Table) error {
	columns := t.Columns
	if len(columns) == 0 {
		for _, f := range table.PostSchema {
			columns = append(columns, f.Name)
		}
		columns = append(columns, t.ExtraColumns...)
	}
	if t.Tokenized {
		// A tokens column read from an earlier run is replaced, not repeated.
		kept := make([]string, 0, len(columns))
		for _, name := range columns {
			if name != table.ColTokens {
				kept = append(kept, name)
			}
		}
		columns = kept
	}
	header := append([]string(nil), columns...)
	if t.Tokenized {
		header = append(header, table.ColTokens)
	}

	extraIndex := make(map[string]int, len(t.ExtraColumns))
	for i, name := range t.ExtraColumns {
		extraIndex[name] = i
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}

	row := make([]string, len(header))
	for i, rec := range t.Records {
		for j, name := range columns {
			row[j] = cellValue(t, i, rec, name, extraIndex)
		}
		if t.Tokenized {
			encoded, err := FormatTokens(rec.Tokens)
			if err != nil {
				return errors.Wrapf(err, "row %d", i+1)
			}
			row[len(columns)] = encoded
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellValue(t table.Table, i int, rec table.Record, name string, extraIndex map[string]int) string {
	switch name {
	case table.ColPostID:
		return formatInt(rec.PostID)
	case table.ColParentID:
		return formatInt(rec.ParentID)
	case table.ColCommentID:
		return formatInt(rec.CommentID)
	case table.ColText:
		if rec.Text == nil {
			return ""
		}
		return *rec.Text
	case table.ColCategory:
		v, _ := t.CategoryOf(i)
		return v
	}
	if j, ok := extraIndex[name]; ok && j < len(rec.Extra) {
		return rec.Extra[j]
	}
	return ""
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// FormatTokens encodes a token list as a JSON array of strings. HTML
// characters are written as is, so the token > reads as ">". ParseTokens
// inverts the encoding exactly.
func FormatTokens(tokens []string) (string, error) {
	if tokens == nil {
		tokens = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tokens); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// ParseTokens decodes a value written by FormatTokens.
func ParseTokens(s string) ([]string, error) {
	tokens := []string{}
	if err := json.Unmarshal([]byte(s), &tokens); err != nil {
		return nil, errors.Wrap(err, "parse tokens")
	}
	return tokens, nil
}

// WriteFile writes t to path, compressed by the path's extension. The data
// goes to a temporary file in the same directory that is renamed into place
// only after everything was written, so a failed write leaves no output.
func WriteFile(path string, t table.Table) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw, err := compressWriter(tmp, path)
	if err != nil {
		return err
	}
	if err = Write(cw, t); err != nil {
		return err
	}
	if err = cw.Close(); err != nil {
		return errors.Wrapf(err, "finish %s", path)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "rename into place")
	}
	return nil
}
