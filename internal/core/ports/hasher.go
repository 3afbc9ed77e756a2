package ports

// ContentHasher computes the content hash used for cache validation.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	// HashContent returns a stable hex digest of content.
	HashContent(content string) string
}

// TimestampReader reads the modification time of module sources.
type TimestampReader interface {
	// ModTime returns the last modification time of path in Unix milliseconds.
	ModTime(path string) (int64, error)
}
