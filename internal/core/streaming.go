package core

// streaming.go wraps the uploaded body before it reaches the CSV reader:
//
//   - the UTF-8 BOM written by spreadsheet exports is dropped, otherwise the
//     Date header would carry the BOM and never match
//   - invalid UTF-8 bytes are replaced with '?'
//   - bytes are counted for the ingest stats

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	return br, nil
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' as data streams through.
// A multi-byte rune split across two reads is held back until it completes.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(s.pending) >= len(p) {
		// Caller buffer smaller than a held-back rune: hand it over raw.
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		return n, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place and returns the number of bytes to emit.
func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	if !atEOF {
		if tail := incompleteTail(data); tail > 0 {
			s.pending = append(s.pending, data[len(data)-tail:]...)
			data = data[:len(data)-tail]
		}
	}
	if utf8.Valid(data) {
		return len(data)
	}

	write := 0
	for read := 0; read < len(data); {
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

// incompleteTail reports how many trailing bytes start a rune that has not
// fully arrived yet.
func incompleteTail(data []byte) int {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b&0xC0 == 0x80 {
			continue // continuation byte
		}
		if b < 0xC0 {
			return 0
		}
		need := 2
		switch {
		case b >= 0xF0:
			need = 4
		case b >= 0xE0:
			need = 3
		}
		if i < need {
			return i
		}
		return 0
	}
	return 0
}

// countingReader tracks bytes read.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// wrapUpload applies BOM skipping, UTF-8 sanitization and byte counting.
// Counting sits on the raw body so the stats reflect the uploaded size.
func wrapUpload(r io.Reader) (io.Reader, *countingReader, error) {
	counter := &countingReader{r: r}
	unbommed, err := skipBOM(counter)
	if err != nil {
		return nil, nil, err
	}
	return newUTF8Sanitizer(unbommed), counter, nil
}
