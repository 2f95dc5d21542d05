package core

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestSkipBOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"file with BOM", append([]byte{0xEF, 0xBB, 0xBF}, "Date,GPT-4"...), "Date,GPT-4"},
		{"file without BOM", []byte("Date,GPT-4"), "Date,GPT-4"},
		{"empty file", []byte{}, ""},
		{"only BOM", []byte{0xEF, 0xBB, 0xBF}, ""},
		{"partial BOM kept", []byte{0xEF, 0xBB, 'a'}, string([]byte{0xEF, 0xBB, 'a'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := skipBOM(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("skipBOM error: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"valid ASCII", []byte("a,b"), "a,b"},
		{"valid multibyte", []byte("Zürich,€"), "Zürich,€"},
		{"invalid byte replaced", []byte{'h', 'e', 0x80, 'l', 'o'}, "he?lo"},
		{"truncated rune at EOF", []byte{'a', 0xE2, 0x82}, "a??"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("read error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_RuneSplitAcrossReads(t *testing.T) {
	// OneByteReader hands the euro sign over one byte at a time.
	input := []byte("x€y")
	got, err := io.ReadAll(newUTF8Sanitizer(iotest.OneByteReader(bytes.NewReader(input))))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(got) != "x€y" {
		t.Errorf("got %q, want %q", got, "x€y")
	}
}

func TestWrapUpload_CountsRawBytes(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte{'h', 'e', 0x80, 'l', 'o'}...)

	r, counter, err := wrapUpload(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("wrapUpload error: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(got) != "he?lo" {
		t.Errorf("got %q, want %q", got, "he?lo")
	}
	if counter.n != int64(len(input)) {
		t.Errorf("counted %d bytes, want %d", counter.n, len(input))
	}
}
