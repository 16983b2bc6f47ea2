// Package fastq decodes FASTQ records from plain or compressed streams.
package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/verte-zerg/fqview/internal/model"
)

// ErrMalformedRecord matches every DecodeError.
var ErrMalformedRecord = errors.New("malformed FASTQ record")

// DecodeError describes input that does not follow the four-line record layout.
type DecodeError struct {
	Record int
	Line   int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d (line %d): %s", e.Record, e.Line, e.Reason)
}

// Is reports DecodeError as ErrMalformedRecord.
func (e *DecodeError) Is(target error) bool { return target == ErrMalformedRecord }

// Reader yields records one at a time. It is not restartable.
type Reader struct {
	br     *bufio.Reader
	line   int
	record int
	err    error
}

// NewReader returns a Reader over an already decompressed stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next record, io.EOF at a clean end of stream, or a
// *DecodeError. After an error every call returns the same error.
func (r *Reader) Next() (model.RawRecord, error) {
	if r.err != nil {
		return model.RawRecord{}, r.err
	}
	rec, err := r.next()
	if err != nil {
		r.err = err
	}
	return rec, err
}

func (r *Reader) next() (model.RawRecord, error) {
	header, err := r.readHeader()
	if err != nil {
		return model.RawRecord{}, err
	}
	r.record++
	if header[0] != '@' {
		return model.RawRecord{}, r.fail("header line must start with '@'")
	}
	if !utf8.Valid(header) {
		return model.RawRecord{}, r.fail("header is not valid UTF-8")
	}
	name, desc := splitHeader(header[1:])

	seq, err := r.readLine()
	if err != nil {
		return model.RawRecord{}, err
	}
	if len(seq) == 0 {
		return model.RawRecord{}, r.fail("empty sequence")
	}
	if !utf8.Valid(seq) {
		return model.RawRecord{}, r.fail("sequence is not valid UTF-8")
	}

	sep, err := r.readLine()
	if err != nil {
		return model.RawRecord{}, err
	}
	if len(sep) == 0 || sep[0] != '+' {
		return model.RawRecord{}, r.fail("separator line must start with '+'")
	}

	qual, err := r.readLine()
	if err != nil {
		return model.RawRecord{}, err
	}
	if len(qual) != len(seq) {
		return model.RawRecord{}, r.fail(fmt.Sprintf("quality length %d does not match sequence length %d", len(qual), len(seq)))
	}
	for _, b := range qual {
		if b < '!' || b > '~' {
			return model.RawRecord{}, r.fail(fmt.Sprintf("invalid quality character %q", b))
		}
	}

	return model.RawRecord{
		Name:        name,
		Description: desc,
		Sequence:    seq,
		Quality:     qual,
	}, nil
}

// readHeader skips blank lines between records and reports io.EOF when
// nothing but blank lines remain.
func (r *Reader) readHeader() ([]byte, error) {
	for {
		line, err := r.rawLine()
		if err != nil {
			return nil, err
		}
		if len(line) > 0 {
			return line, nil
		}
	}
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.rawLine()
	if err == io.EOF {
		return nil, r.fail("unexpected end of input inside record")
	}
	return line, err
}

func (r *Reader) rawLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		if len(line) == 0 {
			return nil, io.EOF
		}
	}
	r.line++
	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return line, nil
}

func (r *Reader) fail(reason string) error {
	return &DecodeError{Record: r.record, Line: r.line, Reason: reason}
}

func splitHeader(hdr []byte) (name, desc []byte) {
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return hdr[:i], bytes.TrimSpace(hdr[i+1:])
	}
	return hdr, nil
}
