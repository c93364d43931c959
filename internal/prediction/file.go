package prediction

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Fallback is reported when no prediction file has been written yet.
const Fallback = "Sin datos de predicción"

// Source yields the current prediction text.
type Source interface {
	Read() (string, error)
}

// FileSource reads the prediction produced by the external predictor.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Read returns the whole file with surrounding whitespace removed, or Fallback
// when the file does not exist. Any other read failure is returned.
func (s *FileSource) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read prediction file %s: %w", s.Path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
