package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/reindent/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "Main.java", "class A {}\n")

	content, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "class A {}\n", string(content))
	assert.Equal(t, int64(11), snap.Size)
	assert.Equal(t, os.FileMode(0o600), snap.Mode.Perm())

	_, _, err = fsutil.Read(context.Background(), filepath.Join(dir, "missing.c"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.Read(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}

func TestReadCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fsutil.Read(ctx, "whatever")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "int x;\n")

	_, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)

	changed, err := snap.Changed(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("int y;\n"), 0o600))
	require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))
	changed, err = snap.Changed(context.Background())
	require.NoError(t, err)
	assert.True(t, changed, "same size and mod time but different content")

	require.NoError(t, os.Remove(path))
	changed, err = snap.Changed(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.js")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x;\n"), 0))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x;\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteIfUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "a;b;")

	_, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, fsutil.WriteIfUnchanged(context.Background(), snap, []byte("a;\nb;")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;\nb;", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = fsutil.WriteIfUnchanged(context.Background(), snap, []byte("lost"))
	require.ErrorIs(t, err, fsutil.ErrModified)
}

func TestBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "original")
	content, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)

	backupPath, written, err := fsutil.Backup(context.Background(), snap, content)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, path+fsutil.BackupSuffix, backupPath)

	_, written, err = fsutil.Backup(context.Background(), snap, []byte("newer"))
	require.NoError(t, err)
	assert.False(t, written)

	got, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}
