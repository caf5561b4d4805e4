// Package source loads dignified programs into numbered lines and saves the
// generated classic code.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_loader.go -package=mocks Loader

// Sentinel line texts framing every listing.
const (
	ProgramText = "PROGRAM"
	EOFText     = "EOF"
)

// Supported encodings.
const (
	Latin1 = "latin1"
	UTF8   = "utf-8"
)

// ErrNotFound is wrapped by Load when the file does not exist.
var ErrNotFound = errors.New("file not found")

// Line is one source line. Text has its tabs expanded.
type Line struct {
	Number int
	Text   string
	File   string
}

// Loader reads a program into lines framed by the PROGRAM and EOF sentinels.
type Loader interface {
	Load(path string) ([]Line, error)
}

// FileLoader loads from the file system.
type FileLoader struct {
	Encoding  string
	TabLength int
}

// NewFileLoader returns a loader decoding files with the named encoding.
func NewFileLoader(enc string, tabLength int) *FileLoader {
	return &FileLoader{Encoding: enc, TabLength: tabLength}
}

func (l *FileLoader) Load(path string) ([]Line, error) {
	if path == "" {
		return nil, errors.New("file name not given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	enc, err := lookup(l.Encoding)
	if err != nil {
		return nil, err
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Lines(string(text), path, l.TabLength), nil
}

// Lines splits text on any line ending and frames it with the sentinels.
func Lines(text, file string, tabLength int) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	lines := []Line{{Number: 0, Text: ProgramText, File: file}}
	n := 0
	if text != "" {
		for i, s := range strings.Split(text, "\n") {
			n = i + 1
			lines = append(lines, Line{Number: n, Text: ExpandTabs(s, tabLength), File: file})
		}
	}
	return append(lines, Line{Number: n + 1, Text: EOFText, File: file})
}

// ExpandTabs replaces tabs with spaces up to the next multiple of size.
func ExpandTabs(s string, size int) string {
	if size <= 0 || !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			pad := size - col%size
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// Save writes lines, each followed by newline, in the named encoding. A line
// the encoding cannot represent aborts the save.
func Save(path string, lines []string, enc, newline string) error {
	e, err := lookup(enc)
	if err != nil {
		return err
	}
	encoder := e.NewEncoder()

	var b strings.Builder
	for _, line := range lines {
		out, err := encoder.String(line)
		if err != nil {
			return fmt.Errorf("saving encode error: %w\n    %s", err, line)
		}
		b.WriteString(out)
		b.WriteString(newline)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("save folder not found: %s: %w", path, err)
	}
	return nil
}

func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", Latin1, "iso-8859-1":
		return charmap.ISO8859_1, nil
	case UTF8, "utf8":
		return unicode.UTF8, nil
	}
	return nil, fmt.Errorf("unsupported encoding: %s", name)
}
