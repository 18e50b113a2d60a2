// Package eclrecord reads Fortran unformatted-sequential records: a payload
// bracketed by equal 32-bit big-endian byte-length markers. It is the framing
// layer every Eclipse binary file is built from.
package eclrecord

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ByteSource is the capability eclrecord needs from its input: read exactly
// len(buf) bytes forward, or report why it could not. A clean end-of-stream
// with zero bytes read returns io.EOF; a partial read returns
// io.ErrUnexpectedEOF. There is no seeking.
type ByteSource interface {
	ReadFull(buf []byte) error
	Close() error
}

// StreamSource is a buffered forward reader over an *os.File. It is the
// default ByteSource and works for files of any size.
type StreamSource struct {
	r *bufio.Reader
	f *os.File
}

// OpenStream opens path as a StreamSource.
func OpenStream(path string) (*StreamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &StreamSource{r: bufio.NewReader(f), f: f}, nil
}

// NewStreamSource wraps an arbitrary io.Reader as a ByteSource. Close is a
// no-op unless the reader came from OpenStream.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{r: bufio.NewReader(r)}
}

func (s *StreamSource) ReadFull(buf []byte) error {
	_, err := io.ReadFull(s.r, buf)
	return err
}

func (s *StreamSource) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

// MmapSource maps an entire file read-only and serves ReadFull from the
// mapping. Useful for large .UNSMRY files where the whole file is going to be
// traversed anyway and the page cache should be shared.
type MmapSource struct {
	data []byte
	off  int
}

// OpenMmap maps path read-only. An empty file maps to an empty source.
func OpenMmap(path string) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	size := st.Size()
	if size == 0 {
		return &MmapSource{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("mmap: %w", err)}
	}
	return &MmapSource{data: data}, nil
}

func (m *MmapSource) ReadFull(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if m.off >= len(m.data) {
		return io.EOF
	}
	if m.off+len(buf) > len(m.data) {
		m.off = len(m.data)
		return io.ErrUnexpectedEOF
	}
	copy(buf, m.data[m.off:])
	m.off += len(buf)
	return nil
}

func (m *MmapSource) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return unix.Munmap(data)
}
