package ingest

import (
	"bufio"
	"io"
	"strings"
)

// crMarker stands in for a carriage return inside a quoted field while
// encoding/csv parses the stream, since the parser folds a quoted "\r\n"
// into "\n". U+FFFF is a noncharacter and never appears in interchanged text.
const crMarker = "\uffff"

// quotedCRReader replaces '\r' inside double-quoted regions with crMarker.
// Record terminators outside quotes are left for the csv reader.
type quotedCRReader struct {
	r       *bufio.Reader
	inQuote bool
	pending []byte
	err     error
}

func newQuotedCRReader(r io.Reader) *quotedCRReader {
	return &quotedCRReader{r: bufio.NewReader(r)}
}

func (q *quotedCRReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(q.pending) > 0 {
			c := copy(p[n:], q.pending)
			q.pending = q.pending[c:]
			n += c
			continue
		}
		if q.err != nil {
			break
		}
		b, err := q.r.ReadByte()
		if err != nil {
			q.err = err
			break
		}
		switch {
		case b == '"':
			// A doubled quote toggles twice and leaves the state unchanged.
			q.inQuote = !q.inQuote
		case b == '\r' && q.inQuote:
			q.pending = []byte(crMarker)
			continue
		}
		p[n] = b
		n++
	}
	if n > 0 {
		return n, nil
	}
	return 0, q.err
}

// restoreCR puts back the carriage returns hidden by quotedCRReader.
func restoreCR(fields []string) {
	for i, f := range fields {
		if strings.Contains(f, crMarker) {
			fields[i] = strings.ReplaceAll(f, crMarker, "\r")
		}
	}
}
