// Package fs provides file system adapters for resolving, timestamping and hashing modules.
package fs

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ContentHasher   = (*Hasher)(nil)
	_ ports.TimestampReader = (*Stat)(nil)
)

// Hasher computes content hashes with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the XXHash of content as 16 hex digits.
func (h *Hasher) HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Stat reads modification times from the file system.
type Stat struct{}

// NewStat creates a new Stat.
func NewStat() *Stat {
	return &Stat{}
}

// ModTime returns the modification time of path in Unix milliseconds.
func (s *Stat) ModTime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info.ModTime().UnixMilli(), nil
}
