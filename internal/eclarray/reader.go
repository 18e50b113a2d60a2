// Package eclarray streams logical arrays ("keywords") out of an Eclipse
// binary file: it parses each 16-byte header record and reassembles the
// segmented body records into one contiguous, host-native buffer.
package eclarray

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/equinor/ecl3/internal/eclfmt"
	"github.com/equinor/ecl3/internal/eclrecord"
	"github.com/equinor/ecl3/internal/logger"
)

const headerSize = 16

// HeaderError reports a keyword header record that could not be decoded: a
// wrong payload size, an unknown type tag, or a negative element count.
type HeaderError struct {
	Msg string
	Err error
}

func (e *HeaderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("eclarray: %s: %v", e.Msg, e.Err)
	}
	return "eclarray: " + e.Msg
}

func (e *HeaderError) Unwrap() error { return e.Err }
func (e *HeaderError) Code() string  { return "HeaderError" }

// NotTerminatedError reports an array whose body segments did not add up to
// the declared element count.
type NotTerminatedError struct {
	Keyword   string
	Remaining int32
}

func (e *NotTerminatedError) Error() string {
	return fmt.Sprintf("eclarray: array %q not terminated correctly: %d elements unaccounted for",
		e.Keyword, e.Remaining)
}

func (e *NotTerminatedError) Code() string { return "ArrayNotTerminated" }

// Reader sequentially emits the arrays of one Eclipse binary file. It owns
// its ByteSource and a single scratch RawArray which every Next call
// overwrites.
type Reader struct {
	src  eclrecord.ByteSource
	log  logger.Logger
	id   uuid.UUID
	mmap bool

	last     RawArray
	recbuf   []byte
	ungetted bool
	eof      bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger attaches a logger; framing and array diagnostics are emitted at
// Debug only.
func WithLogger(l logger.Logger) Option {
	return func(r *Reader) { r.log = l }
}

// WithMmap makes Open map the file instead of streaming it through a
// buffered reader. Ignored by NewReader.
func WithMmap() Option {
	return func(r *Reader) { r.mmap = true }
}

// Open opens path and returns a Reader over its arrays.
func Open(path string, opts ...Option) (*Reader, error) {
	r := &Reader{log: logger.Noop(), id: uuid.New()}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.mmap {
		r.src, err = eclrecord.OpenMmap(path)
	} else {
		r.src, err = eclrecord.OpenStream(path)
	}
	if err != nil {
		return nil, err
	}
	r.log = r.log.With("reader", r.id.String(), "path", path)
	return r, nil
}

// NewReader wraps an existing ByteSource. The Reader takes ownership and
// closes it on Close.
func NewReader(src eclrecord.ByteSource, opts ...Option) *Reader {
	r := &Reader{src: src, log: logger.Noop(), id: uuid.New()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("reader", r.id.String())
	return r
}

// Next returns the next array in the file, or io.EOF when the stream ends
// cleanly between arrays. The returned pointer aliases the reader's scratch
// state and is invalidated by the following Next.
//
// While an Unget is pending, Next returns the cached array again and clears
// the pushback.
func (r *Reader) Next() (*RawArray, error) {
	if r.ungetted {
		r.ungetted = false
		return &r.last, nil
	}
	if r.eof {
		return nil, io.EOF
	}

	if err := r.readHeader(); err != nil {
		if err == io.EOF {
			r.eof = true
			r.last.Count = -1
			return nil, io.EOF
		}
		return nil, err
	}
	if err := r.readBody(); err != nil {
		return nil, err
	}

	r.log.Debug("array read",
		"keyword", r.last.KeywordTrimmed(),
		"type", r.last.Tag.String(),
		"count", r.last.Count,
	)
	return &r.last, nil
}

// Unget marks the array just returned by Next as the value the next call
// will yield again. One slot only; calling Unget twice without an
// intervening Next, or before any Next, is undefined.
func (r *Reader) Unget() {
	r.ungetted = true
}

// Close releases the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}

func (r *Reader) readHeader() error {
	if err := eclrecord.ReadRecord(r.src, &r.recbuf); err != nil {
		return err
	}
	if len(r.recbuf) != headerSize {
		return &HeaderError{Msg: fmt.Sprintf("header record is %d bytes, want %d", len(r.recbuf), headerSize)}
	}

	copy(r.last.Name[:], r.recbuf[0:8])
	r.last.Count = int32(binary.BigEndian.Uint32(r.recbuf[8:12]))
	if r.last.Count < 0 {
		return &HeaderError{Msg: fmt.Sprintf("negative element count %d for %q", r.last.Count, r.last.Keyword())}
	}

	var raw [4]byte
	copy(raw[:], r.recbuf[12:16])
	tag, err := eclfmt.TypeID(raw)
	if err != nil {
		return &HeaderError{Msg: fmt.Sprintf("keyword %q", r.last.Keyword()), Err: err}
	}
	if tag == eclfmt.X231 {
		return fmt.Errorf("eclarray: keyword %q: %w", r.last.Keyword(), eclfmt.ErrUnsupported)
	}
	r.last.Tag = tag
	return nil
}

func (r *Reader) readBody() error {
	r.last.Body = r.last.Body[:0]
	if r.last.Count == 0 || r.last.Tag == eclfmt.MESS {
		return nil
	}

	size, err := r.last.Tag.ElementSize()
	if err != nil {
		return &HeaderError{Msg: fmt.Sprintf("keyword %q", r.last.Keyword()), Err: err}
	}

	remaining := r.last.Count
	for remaining > 0 {
		if err := eclrecord.ReadRecord(r.src, &r.recbuf); err != nil {
			if err == io.EOF {
				return &eclrecord.UnexpectedEOFError{Want: int(remaining) * size}
			}
			return err
		}

		// A conforming file puts min(remaining, block length) elements in
		// every segment, but the reader only insists the segment fits in
		// what is left so slightly non-conforming files still read.
		elems := int32(len(r.recbuf) / size)
		if int(elems)*size != len(r.recbuf) || elems == 0 || elems > remaining {
			return &NotTerminatedError{Keyword: r.last.Keyword(), Remaining: remaining}
		}

		off := len(r.last.Body)
		r.last.Body = append(r.last.Body, r.recbuf[:int(elems)*size]...)
		if err := eclfmt.Decode(r.last.Body[off:], r.last.Body[off:], r.last.Tag, int(elems)); err != nil {
			return err
		}
		remaining -= elems
	}
	return nil
}
