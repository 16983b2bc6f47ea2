package fastq

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies the compression container of an input stream.
type Format int

// Supported and recognized formats.
const (
	FormatPlain Format = iota
	FormatGzip
	FormatBzip2
	FormatXz
	FormatZstd
	FormatZip
	FormatLz4
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXz:
		return "xz"
	case FormatZstd:
		return "zstd"
	case FormatZip:
		return "zip"
	case FormatLz4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedCompression is returned for recognized containers fqview cannot decode.
	ErrUnsupportedCompression = errors.New("unsupported compression format")
	// ErrCorruptCompression matches every CompressionError.
	ErrCorruptCompression = errors.New("corrupt compressed stream")
)

// CompressionError reports a decompressor failure, either at open or mid-stream.
type CompressionError struct {
	Format Format
	Err    error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("corrupt %s stream: %v", e.Format, e.Err)
}

func (e *CompressionError) Unwrap() error { return e.Err }

// Is reports CompressionError as ErrCorruptCompression.
func (e *CompressionError) Is(target error) bool { return target == ErrCorruptCompression }

var magics = []struct {
	format Format
	prefix []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{FormatZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{FormatZip, []byte{'P', 'K', 0x03, 0x04}},
	{FormatLz4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// Detect returns the format whose magic bytes prefix header.
func Detect(header []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.prefix) {
			return m.format
		}
	}
	return FormatPlain
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// guardedReader tags decompressor read errors as CompressionError.
type guardedReader struct {
	r      io.Reader
	format Format
}

func (g *guardedReader) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	if err != nil && err != io.EOF {
		var cerr *CompressionError
		if !errors.As(err, &cerr) {
			err = &CompressionError{Format: g.format, Err: err}
		}
	}
	return n, err
}

// Open opens path and returns a decompressed stream chosen by magic bytes.
func Open(path string) (io.ReadCloser, Format, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, FormatPlain, err
	}
	rc, format, err := NewDecompressor(fh)
	if err != nil {
		_ = fh.Close()
		return nil, format, err
	}
	return &multiReadCloser{Reader: rc, closers: []io.Closer{rc, fh}}, format, nil
}

// NewDecompressor sniffs r and wraps it in the matching decoder. Closing the
// result releases the decoder only, not r.
func NewDecompressor(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, FormatPlain, fmt.Errorf("failed to read input header: %w", err)
	}
	format := Detect(header)
	switch format {
	case FormatPlain:
		return io.NopCloser(br), format, nil
	case FormatGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, &CompressionError{Format: format, Err: err}
		}
		return &multiReadCloser{Reader: &guardedReader{r: gr, format: format}, closers: []io.Closer{gr}}, format, nil
	case FormatBzip2:
		return io.NopCloser(&guardedReader{r: bzip2.NewReader(br), format: format}), format, nil
	case FormatXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, &CompressionError{Format: format, Err: err}
		}
		return io.NopCloser(&guardedReader{r: xr, format: format}), format, nil
	case FormatZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, &CompressionError{Format: format, Err: err}
		}
		return &multiReadCloser{Reader: &guardedReader{r: zr, format: format}, closers: []io.Closer{zstdCloser{zr}}}, format, nil
	default:
		return nil, format, fmt.Errorf("%w: %s", ErrUnsupportedCompression, format)
	}
}

type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
