package eclsummary

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// The fixture builders below write Fortran unformatted sequential records
// the way a simulator would: big-endian markers and payloads.

func appendRecord(b, payload []byte) []byte {
	var mark [4]byte
	binary.BigEndian.PutUint32(mark[:], uint32(len(payload)))
	b = append(b, mark[:]...)
	b = append(b, payload...)
	return append(b, mark[:]...)
}

func appendHeader(b []byte, name, tag string, count int32) []byte {
	payload := make([]byte, 16)
	copy(payload[0:8], "        ")
	copy(payload[0:8], name)
	binary.BigEndian.PutUint32(payload[8:12], uint32(count))
	copy(payload[12:16], tag)
	return appendRecord(b, payload)
}

func appendInts(b []byte, name string, values ...int32) []byte {
	b = appendHeader(b, name, "INTE", int32(len(values)))
	if len(values) == 0 {
		return b
	}
	payload := make([]byte, 4*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint32(payload[i*4:], uint32(v))
	}
	return appendRecord(b, payload)
}

func appendFloats(b []byte, name string, values ...float32) []byte {
	b = appendHeader(b, name, "REAL", int32(len(values)))
	if len(values) == 0 {
		return b
	}
	payload := make([]byte, 4*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}
	return appendRecord(b, payload)
}

func appendStrings(b []byte, name string, values ...string) []byte {
	b = appendHeader(b, name, "CHAR", int32(len(values)))
	if len(values) == 0 {
		return b
	}
	payload := make([]byte, 0, 8*len(values))
	for _, v := range values {
		var elem [8]byte
		copy(elem[:], "        ")
		copy(elem[:], v)
		payload = append(payload, elem[:]...)
	}
	return appendRecord(b, payload)
}

func writeFixture(t *testing.T, name string, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// smspecWWPR builds the three-column specification used by the end-to-end
// tests: KEYWORDS=[WWPR, WWPR, WOPR] with configurable WGNAMES.
func smspecWWPR(t *testing.T, wgnames ...string) string {
	t.Helper()
	raw := appendInts(nil, "DIMENS", 3, 1, 1, 1, 0, 0)
	raw = appendStrings(raw, "KEYWORDS", "WWPR", "WWPR", "WOPR")
	raw = appendStrings(raw, "WGNAMES", wgnames...)
	raw = appendInts(raw, "NUMS", 1, 1, 1)
	return writeFixture(t, "CASE.SMSPEC", raw)
}

// unsmryOneStep builds a data file with a single report step holding one
// ministep with the given PARAMS values.
func unsmryOneStep(t *testing.T, ministep int32, params ...float32) string {
	t.Helper()
	raw := appendInts(nil, "SEQHDR", 1)
	raw = appendInts(raw, "MINISTEP", ministep)
	raw = appendFloats(raw, "PARAMS", params...)
	return writeFixture(t, "CASE.UNSMRY", raw)
}

// rowsOf decodes an assembled matrix buffer back into (report, ministep,
// values) tuples for comparison.
type row struct {
	report   int32
	ministep int32
	values   []float32
}

func rowsOf(buf []byte, columns int) []row {
	rowSize := 8 + 4*columns
	out := make([]row, 0, len(buf)/rowSize)
	for off := 0; off+rowSize <= len(buf); off += rowSize {
		r := row{
			report:   int32(binary.NativeEndian.Uint32(buf[off:])),
			ministep: int32(binary.NativeEndian.Uint32(buf[off+4:])),
		}
		for c := 0; c < columns; c++ {
			bits := binary.NativeEndian.Uint32(buf[off+8+c*4:])
			r.values = append(r.values, math.Float32frombits(bits))
		}
		out = append(out, r)
	}
	return out
}
