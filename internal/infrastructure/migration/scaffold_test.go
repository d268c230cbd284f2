package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold_CreatesFilePair(t *testing.T) {
	dir := t.TempDir()

	result, err := Scaffold(dir, "add tenant pricing table")
	require.NoError(t, err)

	assert.Len(t, result.Version, 14, "version is a YYYYMMDDHHMMSS timestamp")
	assert.True(t, strings.HasSuffix(result.UpPath, "_add_tenant_pricing_table.up.sql"))
	assert.True(t, strings.HasSuffix(result.DownPath, "_add_tenant_pricing_table.down.sql"))

	up, err := os.ReadFile(result.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add tenant pricing table")

	_, err = os.Stat(result.DownPath)
	require.NoError(t, err)
}

func TestScaffold_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := Scaffold(dir, "create items")
	require.NoError(t, err)

	names, err := List(dir)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestScaffold_RejectsUnusableName(t *testing.T) {
	_, err := Scaffold(t.TempDir(), "!!!")
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"add tenant pricing", "add_tenant_pricing"},
		{"Add-Stock-Events", "add_stock_events"},
		{"already_snake_case", "already_snake_case"},
		{"  spaces  around  ", "spaces_around"},
		{"drop%column!", "dropcolumn"},
		{"v2 schema", "v2_schema"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.input), "name %q", tc.input)
	}
}

func TestList_SortedBaseNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"20250301100500_create_stock_events.up.sql",
		"20250301100500_create_stock_events.down.sql",
		"20250301100000_create_items.up.sql",
		"20250301100000_create_items.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0644))
	}

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20250301100000_create_items",
		"20250301100500_create_stock_events",
	}, names)
}

func TestList_MissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
