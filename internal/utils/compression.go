package utils

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipReader wraps r in a gzip decompressor. Closing the returned reader
// does not close r.
func GzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
