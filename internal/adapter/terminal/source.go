package terminal

import (
	"fmt"
	"io"
	"os"
)

// ReaderSource reads the whole of R as pasted text. MaxBytes > 0 caps the size.
type ReaderSource struct {
	R        io.Reader
	MaxBytes int64
}

func (s ReaderSource) Text() (string, error) {
	r := s.R
	if s.MaxBytes > 0 {
		r = io.LimitReader(s.R, s.MaxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read pasted text: %w", err)
	}
	if s.MaxBytes > 0 && int64(len(b)) > s.MaxBytes {
		return "", fmt.Errorf("pasted text exceeds %d bytes", s.MaxBytes)
	}
	return string(b), nil
}

// FileSource reads Path, or standard input when Path is "" or "-".
type FileSource struct {
	Path     string
	MaxBytes int64
}

func (s FileSource) Text() (string, error) {
	if s.Path == "" || s.Path == "-" {
		return ReaderSource{R: os.Stdin, MaxBytes: s.MaxBytes}.Text()
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReaderSource{R: f, MaxBytes: s.MaxBytes}.Text()
}
