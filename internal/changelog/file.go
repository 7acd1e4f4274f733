package changelog

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ParseFile reads and parses a changelog file from the given path.
func ParseFile(path string, opts *Options) (*Changelog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog file: %w", err)
	}
	return Parse(string(data), opts)
}

// ParseReader reads and parses a changelog from an io.Reader.
func ParseReader(r io.Reader, opts *Options) (*Changelog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data), opts)
}

// Save renders the changelog and writes it to path. Rendering goes to a
// buffer first, so the file is only touched when rendering succeeds.
func Save(c *Changelog, path string) error {
	var buf bytes.Buffer
	if err := Render(c, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}
