package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Loads(t *testing.T) {
	c := DefaultCatalog()
	require.NotNil(t, c)
	assert.Greater(t, c.Len(), 100)
	assert.NotEmpty(t, c.CertificationKeywords())

	for _, e := range c.Entries() {
		assert.True(t, e.Category.Valid(), "entry %s has invalid category %s", e.Name, e.Category)
	}
}

func TestCatalog_LookupByAlias(t *testing.T) {
	c := DefaultCatalog()

	e, ok := c.Lookup("golang")
	require.True(t, ok)
	assert.Equal(t, "Go", e.Name)
	assert.Equal(t, types.CategoryLanguage, e.Category)

	e, ok = c.Lookup("  K8S ")
	require.True(t, ok)
	assert.Equal(t, "Kubernetes", e.Name)

	_, ok = c.Lookup("basket weaving")
	assert.False(t, ok)
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		def     CatalogDefinition
		wantErr string
	}{
		{
			name:    "unknown category",
			def:     CatalogDefinition{Categories: map[string][]string{"hobby": {"Knitting"}}},
			wantErr: "unknown skill category",
		},
		{
			name:    "blank name",
			def:     CatalogDefinition{Categories: map[string][]string{"language": {"  "}}},
			wantErr: "blank skill name",
		},
		{
			name:    "duplicate name",
			def:     CatalogDefinition{Categories: map[string][]string{"language": {"Go"}, "tool": {"go"}}},
			wantErr: "duplicate skill",
		},
		{
			name: "dangling alias",
			def: CatalogDefinition{
				Categories: map[string][]string{"language": {"Go"}},
				Aliases:    map[string]string{"py": "Python"},
			},
			wantErr: "points to unknown skill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.def)
			require.Error(t, err)
			assert.Nil(t, c)
			var catErr *CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	content := `{"categories": {"language": ["Zig"], "tool": ["Bazel"]}, "aliases": {"ziglang": "Zig"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	result := NewExtractor(c).Extract("Built compilers in ziglang and Bazel")
	assert.Equal(t, []string{"Zig", "Bazel"}, result.AllSkills)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")

	_, err = ParseCatalog([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog JSON")
}
