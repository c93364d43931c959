package prediction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Read(t *testing.T) {
	testCases := []struct {
		name     string
		content  *string
		expected string
	}{
		{name: "missing file", content: nil, expected: Fallback},
		{name: "trimmed content", content: ptr("  Espacio 10 libre\n"), expected: "Espacio 10 libre"},
		{name: "multi-line content keeps inner newlines", content: ptr("El proximo espacio libre:4\nEsta predicción se actualiza automáticamente.\n"), expected: "El proximo espacio libre:4\nEsta predicción se actualiza automáticamente."},
		{name: "empty file", content: ptr("\n\t "), expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prediccion.txt")
			if tc.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.content), 0o644))
			}

			got, err := NewFileSource(path).Read()
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFileSource_ReadError(t *testing.T) {
	// A directory exists but cannot be read as a file.
	_, err := NewFileSource(t.TempDir()).Read()
	assert.Error(t, err)
}

func ptr(s string) *string { return &s }
