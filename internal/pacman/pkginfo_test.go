package pacman

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fyntora/fyn/internal/utils"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const samplePKGINFO = `# Generated by makepkg 6.1.0
pkgname = yay
pkgbase = yay
pkgver = 12.3.5-1
pkgdesc = Yet another yogurt
url = https://github.com/Jguer/yay
builddate = 1717000000
packager = Unknown Packager
size = 9000000
arch = x86_64
depend = pacman>5
depend = git
`

func buildTar(t *testing.T, pkginfo string) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	files := []struct{ name, body string }{
		{".BUILDINFO", "format = 2\n"},
		{".PKGINFO", pkginfo},
		{"usr/bin/yay", "#!/bin/true\n"},
	}
	for _, f := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: f.name, Mode: 0644, Size: int64(len(f.body))}))
		_, err := tw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func writePackage(t *testing.T, dir, name string, pkginfo string) string {
	t.Helper()
	raw := buildTar(t, pkginfo)

	var out bytes.Buffer
	switch filepath.Ext(name) {
	case ".zst":
		zw, err := zstd.NewWriter(&out)
		require.NoError(t, err)
		_, err = zw.Write(raw)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	case ".xz":
		xw, err := xz.NewWriter(&out)
		require.NoError(t, err)
		_, err = xw.Write(raw)
		require.NoError(t, err)
		require.NoError(t, xw.Close())
	case ".gz":
		gw := gzip.NewWriter(&out)
		_, err := gw.Write(raw)
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	default:
		out.Write(raw)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0644))
	return path
}

func TestReadPackageCompressions(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"yay-12.3.5-1-x86_64.pkg.tar.zst",
		"yay-12.3.5-1-x86_64.pkg.tar.xz",
		"yay-12.3.5-1-x86_64.pkg.tar.gz",
		"yay-12.3.5-1-x86_64.pkg.tar",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path := writePackage(t, dir, name, samplePKGINFO)

			pkg, err := ReadPackage(path)
			require.NoError(t, err)

			assert.Equal(t, "yay", pkg.Name)
			assert.Equal(t, "yay", pkg.Base)
			assert.Equal(t, "12.3.5-1", pkg.Version)
			assert.Equal(t, "x86_64", pkg.Architecture)
			assert.Equal(t, []string{"pacman>5", "git"}, pkg.Dependencies)
			assert.Equal(t, path, pkg.Filename)

			sums, err := utils.CalculateChecksums(path)
			require.NoError(t, err)
			assert.Equal(t, sums.SHA256, pkg.SHA256Sum)
			assert.Equal(t, sums.Size, pkg.Size)
		})
	}
}

func TestReadPackageErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadPackage(filepath.Join(dir, "missing.pkg.tar.zst"))
	assert.Error(t, err)

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0644))
	_, err = ReadPackage(other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported package format")

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.Close())
	empty := filepath.Join(dir, "empty.pkg.tar")
	require.NoError(t, os.WriteFile(empty, buf.Bytes(), 0644))
	_, err = ReadPackage(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".PKGINFO not found")
}

func TestParsePKGINFO(t *testing.T) {
	pkg, err := ParsePKGINFO([]byte("pkgname = python-foo\npkgbase = foo\nbuilddate = 1\nbogus line\n"))
	require.NoError(t, err)
	assert.Equal(t, "python-foo", pkg.Name)
	assert.Equal(t, "foo", pkg.Base)
	assert.Equal(t, "1", pkg.Metadata["builddate"])

	pkg, err = ParsePKGINFO([]byte("pkgname = bar\n"))
	require.NoError(t, err)
	assert.Equal(t, "bar", pkg.Base)

	_, err = ParsePKGINFO([]byte("pkgver = 1\n"))
	assert.Error(t, err)
}

func TestIsPackageFile(t *testing.T) {
	assert.True(t, IsPackageFile("a-1-1-any.pkg.tar.zst"))
	assert.True(t, IsPackageFile("a-1-1-any.pkg.tar"))
	assert.False(t, IsPackageFile("a-1-1-any.pkg.tar.zst.sig"))
	assert.False(t, IsPackageFile("a-1.tar.gz"))
}
