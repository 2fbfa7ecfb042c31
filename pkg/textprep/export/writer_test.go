package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/textprep/pkg/textprep/ingest"
	"github.com/cognicore/textprep/pkg/textprep/table"
)

func tokenizedTable() table.Table {
	return table.Table{
		Columns:      []string{"post_id", "parent_id", "comment_id", "text", "category", "score"},
		ExtraColumns: []string{"score"},
		Levels:       []string{"a", "q"},
		Tokenized:    true,
		Records: []table.Record{
			{
				PostID:   table.Int64(1),
				Text:     table.String("hello, \"world\""),
				Category: 1,
				Tokens:   []string{"hello", ",", "``", "world", "''"},
				Extra:    []string{"10"},
			},
			{
				PostID:    table.Int64(1),
				CommentID: table.Int64(5),
				Text:      nil,
				Category:  table.NoCategory,
				Tokens:    []string{},
				Extra:     []string{""},
			},
		},
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tokenizedTable()))

	want := "post_id,parent_id,comment_id,text,category,score,tokens\n" +
		"1,,,\"hello, \"\"world\"\"\",q,10,\"[\"\"hello\"\",\"\",\"\",\"\"``\"\",\"\"world\"\",\"\"''\"\"]\"\n" +
		"1,,5,,,,[]\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteUntokenizedHasNoTokensColumn(t *testing.T) {
	tbl := tokenizedTable()
	tbl.Tokenized = false

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("post_id,parent_id,comment_id,text,category,score\n")))
}

func TestWriteWithoutColumnsUsesSchemaOrder(t *testing.T) {
	tbl := table.Table{
		Levels:  []string{"q"},
		Records: []table.Record{{PostID: table.Int64(3), Text: table.String("x"), Category: 0}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, "post_id,parent_id,comment_id,text,category\n3,,,x,q\n", buf.String())
}

func TestWriteReplacesExistingTokensColumn(t *testing.T) {
	tbl := table.Table{
		Columns:      []string{"post_id", "parent_id", "comment_id", "text", "category", "tokens"},
		ExtraColumns: []string{"tokens"},
		Tokenized:    true,
		Records: []table.Record{
			{PostID: table.Int64(1), Text: table.String("new"), Category: table.NoCategory,
				Tokens: []string{"new"}, Extra: []string{`["old"]`}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, "post_id,parent_id,comment_id,text,category,tokens\n"+
		"1,,,new,,\"[\"\"new\"\"]\"\n", buf.String())
}

func TestTokensRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"hello", ",", "world", "!"},
		{`quote"inside`, "back\\slash", "comma,here", "[bracket]", "ünïcode", ""},
	}
	for _, tokens := range cases {
		encoded, err := FormatTokens(tokens)
		require.NoError(t, err)
		decoded, err := ParseTokens(encoded)
		require.NoError(t, err)
		assert.Equal(t, tokens, decoded)
	}
}

func TestFormatTokensNil(t *testing.T) {
	encoded, err := FormatTokens(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}

func TestFormatTokensKeepsHTMLCharacters(t *testing.T) {
	tokens := []string{">", "&", "<b>"}
	encoded, err := FormatTokens(tokens)
	require.NoError(t, err)
	assert.Equal(t, `[">","&","<b>"]`, encoded)

	decoded, err := ParseTokens(encoded)
	require.NoError(t, err)
	assert.Equal(t, tokens, decoded)
}

func TestParseTokensRejectsGarbage(t *testing.T) {
	_, err := ParseTokens("['python', 'repr']")
	assert.Error(t, err)
}

func TestWriteFileRoundTripThroughLoader(t *testing.T) {
	for _, name := range []string{"cleaned.csv", "cleaned.csv.gz", "cleaned.csv.zst", "cleaned.csv.xz", "cleaned.zip"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(path, tokenizedTable()))

			back, err := ingest.Load(path)
			require.NoError(t, err)
			require.Equal(t, 2, back.Len())
			assert.Equal(t, []string{"score", "tokens"}, back.ExtraColumns)
			assert.Equal(t, "hello, \"world\"", *back.Records[0].Text)
			assert.Nil(t, back.Records[1].Text)

			tokens, err := ParseTokens(back.Records[0].Extra[1])
			require.NoError(t, err)
			assert.Equal(t, []string{"hello", ",", "``", "world", "''"}, tokens)
		})
	}
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cleaned.csv")
	require.NoError(t, WriteFile(path, tokenizedTable()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cleaned.csv", entries[0].Name())
}

func TestWriteFileUnsupportedCodecWritesNothing(t *testing.T) {
	dir := t.TempDir()
	err := WriteFile(filepath.Join(dir, "cleaned.csv.bz2"), tokenizedTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing bz2 is not supported")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "cleaned.csv"), tokenizedTable())
	assert.Error(t, err)
}
