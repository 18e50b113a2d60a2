package eclrecord

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeadTailError reports a framed record whose leading and trailing length
// markers disagree. Both values are carried so diagnostics can show exactly
// what was on disk.
type HeadTailError struct {
	Head int32
	Tail int32
}

func (e *HeadTailError) Error() string {
	return fmt.Sprintf("eclrecord: head/tail mismatch: head (%d) != tail (%d)", e.Head, e.Tail)
}

func (e *HeadTailError) Code() string { return "HeadTailMismatch" }

// UnexpectedEOFError reports a short read in the middle of a record: the
// stream ended after the record head promised more bytes.
type UnexpectedEOFError struct {
	Want int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("eclrecord: unexpected end of stream, wanted %d more bytes", e.Want)
}

func (e *UnexpectedEOFError) Code() string { return "UnexpectedEof" }

// IOError wraps an underlying stream failure that is neither a clean EOF nor
// a short read.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "eclrecord: " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }
func (e *IOError) Code() string  { return "Io" }

// OpenError reports a file that could not be opened or mapped.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("eclrecord: could not open file '%s': %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
func (e *OpenError) Code() string  { return "InvalidArgs" }

// ReadRecord reads one framed record from src into *into, growing the buffer
// as needed. On success *into holds exactly the payload. A clean end of
// stream on the head marker returns io.EOF; everything else that cuts a
// record short is an error, never silently EOF.
func ReadRecord(src ByteSource, into *[]byte) error {
	var mark [4]byte
	if err := src.ReadFull(mark[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return &UnexpectedEOFError{Want: 4}
		}
		return &IOError{Err: err}
	}

	head := int32(binary.BigEndian.Uint32(mark[:]))
	if head < 0 {
		// A negative byte count cannot frame anything; report it as a
		// head/tail error carrying the offending value in both fields. The
		// tail marker is not read.
		return &HeadTailError{Head: head, Tail: head}
	}

	if cap(*into) < int(head) {
		*into = make([]byte, head)
	}
	*into = (*into)[:head]
	if err := src.ReadFull(*into); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &UnexpectedEOFError{Want: int(head)}
		}
		return &IOError{Err: err}
	}

	if err := src.ReadFull(mark[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &UnexpectedEOFError{Want: 4}
		}
		return &IOError{Err: err}
	}
	tail := int32(binary.BigEndian.Uint32(mark[:]))
	if head != tail {
		return &HeadTailError{Head: head, Tail: tail}
	}
	return nil
}
