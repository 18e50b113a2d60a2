package eclarray

import (
	"encoding/binary"
	"math"
)

// appendRecord frames payload the way Fortran unformatted sequential output
// does: big-endian byte count before and after.
func appendRecord(b, payload []byte) []byte {
	var mark [4]byte
	binary.BigEndian.PutUint32(mark[:], uint32(len(payload)))
	b = append(b, mark[:]...)
	b = append(b, payload...)
	return append(b, mark[:]...)
}

// appendHeader frames a 16-byte keyword header record.
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
	for len(values) > 0 {
		n := len(values)
		if n > 1000 {
			n = 1000
		}
		payload := make([]byte, 4*n)
		for i, v := range values[:n] {
			binary.BigEndian.PutUint32(payload[i*4:], math.Float32bits(v))
		}
		b = appendRecord(b, payload)
		values = values[n:]
	}
	return b
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
