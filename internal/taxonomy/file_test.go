package taxonomy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `
tags:
  - canonical: Marketplace
    category: domain
    aliases: [market, Multi Vendor]
  - canonical: Rust
    category: Technology
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tax, err := taxonomy.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Marketplace", tax.Normalize("multi vendor"))
	require.Equal(t, taxonomy.CategoryDomain, tax.Category("Marketplace"))
	require.Equal(t, []string{"Rust"}, tax.ByCategory(taxonomy.CategoryTechnology))
}

func TestParse_UnknownCategory(t *testing.T) {
	_, err := taxonomy.Parse([]byte("tags:\n  - canonical: X\n    category: Vibes\n"))
	require.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := taxonomy.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
