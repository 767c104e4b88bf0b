// Package blob provides access to the object storage holding post images and
// avatars. Blobs are addressed by opaque keys; clients never talk to the
// store through the server, only through presigned URLs minted here.
package blob

import "context"

// Storage mints single-use upload and fetch URLs for stored blobs.
type Storage interface {
	// PresignPut returns the key of a fresh object and a URL the caller can
	// PUT the object bytes to.
	PresignPut(ctx context.Context) (key string, url string, err error)

	// PresignGet returns a fetch URL for an existing object key.
	PresignGet(ctx context.Context, key string) (url string, err error)
}
