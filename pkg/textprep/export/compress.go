package export

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/cognicore/textprep/pkg/textprep/ingest"
)

// nopCloser closes nothing; the caller owns the underlying file.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// zipMember writes a single archive member and closes the archive.
type zipMember struct {
	io.Writer
	zw *zip.Writer
}

func (z zipMember) Close() error {
	return z.zw.Close()
}

// compressWriter wraps w with the codec matching path's extension. Closing
// the result flushes the codec but leaves w open.
func compressWriter(w io.Writer, path string) (io.WriteCloser, error) {
	switch ingest.InferCompression(path) {
	case ingest.Gzip:
		return gzip.NewWriter(w), nil
	case ingest.Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		return zw, nil
	case ingest.XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, errors.Wrap(err, "xz")
		}
		return xw, nil
	case ingest.Zip:
		zw := zip.NewWriter(w)
		member, err := zw.Create(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if err != nil {
			return nil, errors.Wrap(err, "zip")
		}
		return zipMember{Writer: member, zw: zw}, nil
	case ingest.Bzip2:
		return nil, errors.Newf("writing bz2 is not supported: %s", path)
	default:
		return nopCloser{w}, nil
	}
}
