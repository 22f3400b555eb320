package core

// reader.go provides the byte-level wrappers applied to every input file
// before CSV parsing:
//
//   - BOMSkippingReader: drops a leading UTF-8 BOM (WHO and World Bank
//     extracts are saved with one)
//   - UTF8Sanitizer: replaces invalid UTF-8 bytes with '?' so Latin-1
//     country names ("Côte d'Ivoire" saved by Excel) still parse
//   - CountingReader: tracks bytes read for load logging
//
// Use WrapInput to apply all three in the correct order.

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(3)
		if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			if _, err := b.r.Discard(3); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// UTF8Sanitizer wraps an io.Reader and replaces invalid UTF-8 bytes with '?'.
// Multi-byte sequences split across reads are carried to the next call.
type UTF8Sanitizer struct {
	reader  io.Reader
	pending []byte
}

// NewUTF8Sanitizer creates a new streaming UTF-8 sanitizer.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{reader: r, pending: make([]byte, 0, utf8.UTFMax)}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) < utf8.UTFMax && len(s.pending) == 0 {
		return s.reader.Read(p)
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.reader.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place and returns the number of bytes to hand out.
// When more input is expected, an incomplete trailing rune is held back.
func (s *UTF8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		if data[read] < utf8.RuneSelf {
			data[write] = data[read]
			write++
			read++
			continue
		}

		if !atEOF && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}

		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// WrapInput wraps a reader with BOM skipping, UTF-8 sanitization, and byte
// counting.
//
// The order matters:
// 1. BOM must be stripped first (before any processing)
// 2. UTF-8 sanitization happens next
// 3. Counting wraps everything
func WrapInput(r io.Reader) *CountingReader {
	return &CountingReader{reader: NewUTF8Sanitizer(NewBOMSkippingReader(r))}
}
