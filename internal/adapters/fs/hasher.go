package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Hasher implements ports.Hasher with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashBytes returns the 16 hex digit xxhash of data.
func (*Hasher) HashBytes(data []byte) string {
	return format(xxhash.Sum64(data))
}

// HashFile streams the file at path through xxhash.
func (*Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // artifact paths are produced internally
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return "", err
	}
	return format(d.Sum64()), nil
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
