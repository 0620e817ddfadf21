package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	data := []byte(`{"resultcount":0,"results":[]}`)

	var compressed bytes.Buffer
	w := gzip.NewWriter(&compressed)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := GzipReader(&compressed)
	require.NoError(t, err)
	defer r.Close()
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestGzipReaderRejectsPlainData(t *testing.T) {
	_, err := GzipReader(bytes.NewReader([]byte("not gzip")))
	assert.Error(t, err)
}

func TestCalculateChecksums(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PKGBUILD")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	sums, err := CalculateChecksums(path)
	require.NoError(t, err)

	assert.Equal(t, int64(3), sums.Size)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sums.SHA256)
}

func TestExistenceChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	ok, err := DirExists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DirExists(file)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = DirExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = FileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reviewed", "yay")
	require.NoError(t, WriteFile(path, []byte("digest"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "digest", string(data))
	require.NoError(t, EnsureDir(filepath.Dir(path)))
}
