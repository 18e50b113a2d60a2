package eclarray

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/equinor/ecl3/internal/eclfmt"
)

// RawArray is one decoded keyword: its 8-byte name, type tag, declared
// element count, and the reassembled body with every element already
// translated to host-native representation.
//
// A RawArray returned by Reader.Next is only valid until the next call to
// Next: the reader reuses a single scratch array, the same way the on-disk
// format intends these to be streamed.
type RawArray struct {
	Name  [8]byte
	Tag   eclfmt.TypeTag
	Count int32
	Body  []byte
}

// Keyword returns the space-padded 8-character name as it appears on disk.
func (a *RawArray) Keyword() string { return string(a.Name[:]) }

// KeywordTrimmed returns the name with trailing padding removed.
func (a *RawArray) KeywordTrimmed() string {
	return strings.TrimRight(a.Keyword(), " ")
}

// Ints interprets the body as host-native 32-bit signed integers. Only
// meaningful for INTE and LOGI arrays.
func (a *RawArray) Ints() []int32 {
	out := make([]int32, len(a.Body)/4)
	for i := range out {
		out[i] = int32(binary.NativeEndian.Uint32(a.Body[i*4 : i*4+4]))
	}
	return out
}

// Floats interprets the body as host-native 32-bit floats. Only meaningful
// for REAL arrays.
func (a *RawArray) Floats() []float32 {
	out := make([]float32, len(a.Body)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(a.Body[i*4 : i*4+4]))
	}
	return out
}

// Doubles interprets the body as host-native 64-bit floats. Only meaningful
// for DOUB arrays.
func (a *RawArray) Doubles() []float64 {
	out := make([]float64, len(a.Body)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.NativeEndian.Uint64(a.Body[i*8 : i*8+8]))
	}
	return out
}

// Strings splits the body into fixed-width elements, padding included. Only
// meaningful for CHAR and C0NN arrays.
func (a *RawArray) Strings() []string {
	size, err := a.Tag.ElementSize()
	if err != nil || size == 0 {
		return nil
	}
	out := make([]string, len(a.Body)/size)
	for i := range out {
		out[i] = string(a.Body[i*size : (i+1)*size])
	}
	return out
}
