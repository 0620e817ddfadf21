package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// Checksum contains the digests fyn records for a file
type Checksum struct {
	SHA256 string
	Size   int64
}

// CalculateChecksums hashes a file and records its size
func CalculateChecksums(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Get file info for size
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	sha256Hash := sha256.New()
	if _, err := io.Copy(sha256Hash, f); err != nil {
		return nil, err
	}

	return &Checksum{
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		Size:   info.Size(),
	}, nil
}

// Blake3Hex returns the hex BLAKE3-256 digest of data
func Blake3Hex(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
