package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFallbackCatalog(t *testing.T) {
	catalog := DefaultFallbackCatalog()
	require.NotEmpty(t, catalog)
	for _, ref := range catalog {
		require.NotEmpty(t, ref.Slug)
		require.NotEmpty(t, ref.Title)
		require.NotEmpty(t, ref.CoverURL)
	}
}

func TestLoadFallbackCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":"x","title":"Custom","slug":"custom-study","summary":"s","tags":["t"]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	catalog, err := LoadFallbackCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	require.Equal(t, "custom-study", catalog[0].Slug)
	require.NotEmpty(t, catalog[0].CoverURL, "missing covers get the placeholder")
}

func TestLoadFallbackCatalog_Errors(t *testing.T) {
	_, err := LoadFallbackCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	_, err = LoadFallbackCatalog(path)
	require.Error(t, err)
}
