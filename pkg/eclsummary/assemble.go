package eclsummary

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/google/uuid"

	"github.com/equinor/ecl3/internal/eclarray"
	"github.com/equinor/ecl3/internal/eclfmt"
	"github.com/equinor/ecl3/internal/logger"
)

// Allocator produces the output matrix buffer once the assembler knows the
// row count. The returned buffer must be exactly rows * plan.RowSize()
// bytes; the assembler copies the staged rows into it and never retains it
// past Run returning.
type Allocator func(rows int) ([]byte, error)

// Assembler streams a summary data file (.UNSMRY or .Snnnn) and emits one
// row per (report step, ministep) pair: [report:i32][ministep:i32] followed
// by the plan's selected PARAMS values as host-native 4-byte floats.
type Assembler struct {
	plan   *ColumnPlan
	log    logger.Logger
	id     uuid.UUID
	mmap   bool
	maxPos int
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithAssemblerLogger attaches a logger for per-step Debug diagnostics.
func WithAssemblerLogger(l logger.Logger) AssemblerOption {
	return func(a *Assembler) { a.log = l }
}

// WithAssemblerMmap maps the data file instead of streaming it.
func WithAssemblerMmap() AssemblerOption {
	return func(a *Assembler) { a.mmap = true }
}

// NewAssembler creates an Assembler for the given column plan.
func NewAssembler(plan *ColumnPlan, opts ...AssemblerOption) *Assembler {
	a := &Assembler{plan: plan, log: logger.Noop(), id: uuid.New(), maxPos: -1}
	for _, col := range plan.Columns {
		if col.Pos > a.maxPos {
			a.maxPos = col.Pos
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("assembler", a.id.String())
	return a
}

// initialStagingRows sizes the first staging allocation; the area doubles
// whenever it fills.
const initialStagingRows = 64

// Run reads every row of the summary data file at path into a buffer
// obtained from alloc. The context is checked between rows only; the
// assembler has no other suspension points.
func (a *Assembler) Run(ctx context.Context, path string, alloc Allocator) error {
	var opts []eclarray.Option
	opts = append(opts, eclarray.WithLogger(a.log))
	if a.mmap {
		opts = append(opts, eclarray.WithMmap())
	}
	r, err := eclarray.Open(path, opts...)
	if err != nil {
		return err
	}
	defer r.Close()
	return a.RunReader(ctx, r, alloc)
}

// RunReader is Run over an already-open array stream. The reader is
// consumed to EOF but not closed.
func (a *Assembler) RunReader(ctx context.Context, r *eclarray.Reader, alloc Allocator) error {
	rowSize := a.plan.RowSize()

	first, err := r.Next()
	if err == io.EOF {
		return &BrokenFileError{Msg: "empty data file, expected SEQHDR"}
	}
	if err != nil {
		return err
	}
	if first.KeywordTrimmed() != "SEQHDR" || first.Tag != eclfmt.INTE {
		return &BrokenFileError{Msg: "data file does not start with an INTE SEQHDR"}
	}

	staging := make([]byte, 0, initialStagingRows*rowSize)
	rows := 0
	reportStep := int32(1)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		array, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if array.KeywordTrimmed() == "SEQHDR" {
			reportStep++
			// A report step must hold at least one ministep; peek so a
			// trailing SEQHDR is caught here rather than read as success.
			if _, err := r.Next(); err == io.EOF {
				return &UnexpectedEOFError{Msg: "SEQHDR with no records after it"}
			} else if err != nil {
				return err
			}
			r.Unget()
			a.log.Debug("report step", "step", reportStep)
			continue
		}

		if array.KeywordTrimmed() != "MINISTEP" || array.Tag != eclfmt.INTE || array.Count != 1 {
			return &BrokenFileError{Msg: "expected a single-element INTE MINISTEP, got " + array.KeywordTrimmed()}
		}
		ministep := array.Ints()[0]

		params, err := r.Next()
		if err == io.EOF {
			return &UnexpectedEOFError{Msg: "MINISTEP with no PARAMS after it"}
		}
		if err != nil {
			return err
		}
		if params.KeywordTrimmed() != "PARAMS" || params.Tag != eclfmt.REAL {
			return &BrokenFileError{Msg: "expected a REAL PARAMS, got " + params.KeywordTrimmed()}
		}

		staging, err = a.appendRow(staging, reportStep, ministep, params)
		if err != nil {
			return err
		}
		rows++
	}

	buf, err := alloc(rows)
	if err != nil {
		return err
	}
	if len(buf) != rows*rowSize {
		return &AllocSizeError{Got: len(buf), Want: rows * rowSize}
	}
	copy(buf, staging)

	a.log.Debug("matrix assembled", "rows", rows, "columns", len(a.plan.Columns))
	return nil
}

// appendRow stages one matrix row, doubling the staging area on overflow.
func (a *Assembler) appendRow(staging []byte, report, ministep int32, params *eclarray.RawArray) ([]byte, error) {
	if a.maxPos >= 0 && (a.maxPos+1)*4 > len(params.Body) {
		return nil, &BrokenFileError{Msg: "PARAMS array shorter than the column plan"}
	}

	rowSize := a.plan.RowSize()
	if len(staging)+rowSize > cap(staging) {
		grown := make([]byte, len(staging), 2*cap(staging)+rowSize)
		copy(grown, staging)
		staging = grown
	}

	var scratch [4]byte
	binary.NativeEndian.PutUint32(scratch[:], uint32(report))
	staging = append(staging, scratch[:]...)
	binary.NativeEndian.PutUint32(scratch[:], uint32(ministep))
	staging = append(staging, scratch[:]...)
	for _, col := range a.plan.Columns {
		staging = append(staging, params.Body[col.Pos*4:col.Pos*4+4]...)
	}
	return staging, nil
}
