package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes the bundle in format f
func Write(w io.Writer, b Bundle, f Format) error {
	switch f {
	case JSON:
		return WriteJSON(w, b)
	case Workbook:
		return WriteWorkbook(w, b)
	case Archive:
		return WriteArchive(w, b)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteFile writes the bundle into dir under its dated filename and
// returns the path. The file appears atomically.
func WriteFile(dir string, b Bundle, f Format) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".nanotable-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Write(tmp, b, f); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	path := filepath.Join(dir, b.Filename(f))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return path, nil
}
