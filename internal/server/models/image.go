package models

import "context"

// ImageSource is a tagged union over the two ways an image may be attached
// to a record: a direct URL, or a reference to a blob in object storage
// whose fetch URL must be minted on demand. The zero value means no image.
type ImageSource struct {
	kind imageKind
	val  string
}

type imageKind int

const (
	imageNone imageKind = iota
	imageDirectURL
	imageBlobRef
)

func NoImage() ImageSource            { return ImageSource{} }
func DirectURL(url string) ImageSource { return ImageSource{kind: imageDirectURL, val: url} }
func BlobRef(key string) ImageSource   { return ImageSource{kind: imageBlobRef, val: key} }

// IsZero reports whether the source carries no image at all.
func (s ImageSource) IsZero() bool { return s.kind == imageNone }

// URLResolver mints a fetch URL for a stored blob key. blob.Storage
// satisfies it.
type URLResolver interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// Resolve turns the source into a fetchable URL. Resolution is best-effort:
// a blob that no longer resolves yields ("", false) rather than an error,
// matching the contract that a missing image never fails the surrounding
// operation.
func (s ImageSource) Resolve(ctx context.Context, r URLResolver) (string, bool) {
	switch s.kind {
	case imageDirectURL:
		return s.val, true
	case imageBlobRef:
		if r == nil {
			return "", false
		}
		url, err := r.PresignGet(ctx, s.val)
		if err != nil || url == "" {
			return "", false
		}
		return url, true
	default:
		return "", false
	}
}
