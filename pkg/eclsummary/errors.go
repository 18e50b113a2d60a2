package eclsummary

import (
	"errors"
	"fmt"
)

// BrokenFileError reports a summary data file that violates the
// SEQHDR/MINISTEP/PARAMS protocol.
type BrokenFileError struct {
	Msg string
}

func (e *BrokenFileError) Error() string { return "eclsummary: broken file: " + e.Msg }
func (e *BrokenFileError) Code() string  { return "BrokenFile" }

// AllocSizeError reports an allocator callback that returned a buffer of
// the wrong size.
type AllocSizeError struct {
	Got  int
	Want int
}

func (e *AllocSizeError) Error() string {
	return fmt.Sprintf("eclsummary: allocator returned %d bytes, want %d", e.Got, e.Want)
}

func (e *AllocSizeError) Code() string { return "AllocSize" }

// UnexpectedEOFError reports a data file that ends in the middle of the
// summary protocol, e.g. a SEQHDR with nothing after it.
type UnexpectedEOFError struct {
	Msg string
}

func (e *UnexpectedEOFError) Error() string { return "eclsummary: unexpected end of file: " + e.Msg }
func (e *UnexpectedEOFError) Code() string  { return "UnexpectedEof" }

// InvalidArgsError reports unusable input to the plan builder or assembler,
// such as a specification missing a mandatory keyword.
type InvalidArgsError struct {
	Msg string
}

func (e *InvalidArgsError) Error() string { return "eclsummary: " + e.Msg }
func (e *InvalidArgsError) Code() string  { return "InvalidArgs" }

// coded is implemented by every error in this module that carries one of
// the stable string tags.
type coded interface {
	Code() string
}

// Code returns the stable string tag for err: "OK" for nil, the error's own
// code when it carries one, and "Io" for anything else.
func Code(err error) string {
	if err == nil {
		return "OK"
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return "Io"
}
