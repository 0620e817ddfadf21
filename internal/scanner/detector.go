package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for archive detection
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	gzipMagic = []byte{0x1F, 0x8B}
	// ustar lives at offset 257 of the first tar header
	tarMagic = []byte("ustar")
)

// DetectCompression determines the compression of a package file from its
// magic bytes. A file whose content disagrees with its extension is
// reported as unknown.
func DetectCompression(path string) (Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return CompressionUnknown, err
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return CompressionUnknown, err
	}
	header = header[:n]

	basename := filepath.Base(path)

	switch {
	case strings.HasSuffix(basename, ".pkg.tar.zst"):
		if bytes.HasPrefix(header, zstdMagic) {
			return CompressionZstd, nil
		}
	case strings.HasSuffix(basename, ".pkg.tar.xz"):
		if bytes.HasPrefix(header, xzMagic) {
			return CompressionXz, nil
		}
	case strings.HasSuffix(basename, ".pkg.tar.gz"):
		if bytes.HasPrefix(header, gzipMagic) {
			return CompressionGzip, nil
		}
	case strings.HasSuffix(basename, ".pkg.tar"):
		if len(header) >= 262 && bytes.Equal(header[257:262], tarMagic) {
			return CompressionNone, nil
		}
	}

	return CompressionUnknown, nil
}
