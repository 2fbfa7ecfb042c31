package ingest

import (
	"archive/zip"
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression names a file codec inferred from the file extension.
type Compression string

const (
	None  Compression = ""
	Gzip  Compression = "gzip"
	Bzip2 Compression = "bz2"
	Zip   Compression = "zip"
	XZ    Compression = "xz"
	Zstd  Compression = "zstd"
)

// InferCompression picks the codec from the file extension, like pandas'
// compression="infer".
func InferCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".bz2":
		return Bzip2
	case ".zip":
		return Zip
	case ".xz":
		return XZ
	case ".zst":
		return Zstd
	default:
		return None
	}
}

// openFile opens path and wraps it with the decompressor for its extension.
// Closing the returned reader closes the file too.
func openFile(path string) (io.ReadCloser, error) {
	codec := InferCompression(path)
	if codec == Zip {
		return openZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch codec {
	case Gzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "gzip")
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case Bzip2:
		return &stackedCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	case XZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "xz")
		}
		return &stackedCloser{Reader: xr, closers: []io.Closer{f}}, nil
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "zstd")
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zstdCloser{zr}, f}}, nil
	default:
		return f, nil
	}
}

// openZip reads the single member of a zip archive, as pandas does.
func openZip(path string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	var files []*zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}
	if len(files) != 1 {
		zr.Close()
		return nil, errors.Newf("zip archive must contain exactly one file, found %d", len(files))
	}
	member, err := files[0].Open()
	if err != nil {
		zr.Close()
		return nil, err
	}
	return &stackedCloser{Reader: member, closers: []io.Closer{member, zr}}, nil
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type zstdCloser struct {
	d *zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
