package storage

import "io"

// BlobStore holds uploaded question images. Keys are flat filenames; URL
// returns the public path a stored key is served under.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	URL(key string) string
}
