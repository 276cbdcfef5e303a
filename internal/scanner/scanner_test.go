package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-analyzer/pkg/logger"
)

var testConfig = &ScannerConfig{
	FolderIgnorePatterns: []string{".*", "node_modules/", "dist/"},
	FileIgnorePatterns:   []string{"*.min.js"},
	MaxFileSizeKB:        1,
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestLoadIgnoreRules(t *testing.T) {
	s := NewFileScanner(logger.NewNopLogger(), testConfig)

	t.Run("config rules only", func(t *testing.T) {
		ignore := s.LoadIgnoreRules(t.TempDir())
		require.NotNil(t, ignore)
		assert.True(t, ignore.MatchesPath("node_modules/lodash/index.js"))
		assert.True(t, ignore.MatchesPath("dist/app.js"))
		assert.True(t, ignore.MatchesPath(".git/config"))
		assert.True(t, ignore.MatchesPath("lib/app.min.js"))
		assert.False(t, ignore.MatchesPath("src/main.js"))
	})

	t.Run("merged with .gitignore", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, map[string]string{".gitignore": "# generated\n/generated\n*.gen.js\n"})

		ignore := s.LoadIgnoreRules(root)
		assert.True(t, ignore.MatchesPath("generated/a.js"))
		assert.True(t, ignore.MatchesPath("src/a.gen.js"))
		assert.True(t, ignore.MatchesPath("node_modules/x.js"))
		assert.False(t, ignore.MatchesPath("src/a.js"))
	})
}

func TestCollectSources(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".gitignore":               "legacy/\n",
		"index.js":                 "x = 1;",
		"src/util.ts":              "let a: number;",
		"src/readme.md":            "# docs",
		"src/app.min.js":           "x=1",
		"legacy/old.js":            "x = 0;",
		"node_modules/dep/a.js":    "module.exports = 1;",
		".cache/tmp.js":            "x = 2;",
		"lib/nested/deep/code.mjs": "export const a = 1;",
	})

	s := NewFileScanner(logger.NewNopLogger(), testConfig)
	sources, err := s.CollectSources(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.js", "lib/nested/deep/code.mjs", "src/util.ts"}, relPaths(t, root, sources))
}

func TestCollectSources_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.js": "x = 1;", "notes.txt": "x"})
	s := NewFileScanner(logger.NewNopLogger(), testConfig)

	sources, err := s.CollectSources(filepath.Join(root, "a.js"))
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	_, err = s.CollectSources(filepath.Join(root, "notes.txt"))
	assert.Error(t, err)

	_, err = s.CollectSources(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestCollectSources_MaxFileCount(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.js": "", "b.js": "", "c.js": ""})

	s := NewFileScanner(logger.NewNopLogger(), &ScannerConfig{MaxFileCount: 2})
	sources, err := s.CollectSources(root)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestReadSource(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"small.js": "x = 1;",
		"large.js": strings.Repeat("x = 1;\n", 400),
	})
	s := NewFileScanner(logger.NewNopLogger(), testConfig)

	data, err := s.ReadSource(filepath.Join(root, "small.js"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1;", string(data))

	_, err = s.ReadSource(filepath.Join(root, "large.js"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestScannerConfig(t *testing.T) {
	s := NewFileScanner(logger.NewNopLogger(), nil)
	assert.NotNil(t, s.GetScannerConfig())

	s.SetScannerConfig(nil)
	assert.NotNil(t, s.GetScannerConfig())

	s.SetScannerConfig(testConfig)
	assert.Equal(t, testConfig, s.GetScannerConfig())
}
