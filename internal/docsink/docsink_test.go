package docsink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	t.Run("SavesUnderDir", func(t *testing.T) {
		dir := t.TempDir()
		sink, err := NewFileSink(dir)
		require.NoError(t, err)

		require.NoError(t, sink.Save([]byte("%PDF-1.4"), "Lieferschein_Altenburg.pdf"))

		data, err := os.ReadFile(filepath.Join(dir, "Lieferschein_Altenburg.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	t.Run("CreatesMissingDir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "downloads")

		_, err := NewFileSink(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
