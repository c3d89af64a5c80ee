package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files below root. Keys are slash-separated relative
// paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// bufferLogger returns a logger writing text records to the returned
// buffer.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestLoadTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"menu.json":            `{"title": {}}`,
		"levels/one.json":      `{"intro": {}}`,
		"levels/deep/two.json": `{"outro": {}}`,
		"notes.txt":            `not json`,
		"levels/readme.md":     `# readme`,
	})

	log, _ := bufferLogger()
	set := (&Loader{Logger: log}).LoadTree(root)

	assert.Equal(t, []string{"levels/deep/two.json", "levels/one.json", "menu.json"}, set.Paths)
	doc, ok := set.Get("levels/deep/two.json")
	require.True(t, ok)
	assert.True(t, doc.Has("outro"))
}

func TestLoadTreeMissingRoot(t *testing.T) {
	log, buf := bufferLogger()
	set := (&Loader{Logger: log}).LoadTree(filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, 0, set.Len())
	assert.Contains(t, buf.String(), "directory does not exist")
}

func TestLoadTreeSkipsBadFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.json": `{"ok": {}}`,
		"b.json": `{"broken": `,
		"c.json": "{\"bad\": \"\xff\"}",
		"d.json": `{"ok": {}}`,
	})

	log, buf := bufferLogger()
	set := (&Loader{Logger: log}).LoadTree(root)

	assert.Equal(t, []string{"a.json", "d.json"}, set.Paths)
	out := buf.String()
	assert.Contains(t, out, "b.json")
	assert.Contains(t, out, "c.json")
	assert.Equal(t, 2, strings.Count(out, "could not load document"))
}

func TestRelativeDocPath(t *testing.T) {
	root := filepath.Join("base", "structure")
	got := relativeDocPath(root, filepath.Join(root, "levels", "one.json"))
	assert.Equal(t, "levels/one.json", got)
	assert.Equal(t, filepath.Join("es", "levels", "one.json"), docPath("es", "levels/one.json"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.json": `{}`})

	ok, err := fileExists(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fileExists(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = fileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok, "directories are not files")
}
