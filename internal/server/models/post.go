package models

// Post is a single feed entry. ImageURL is resolved once at creation time
// from ImageStorageID and stored redundantly; a dangling UserID is tolerated
// and rendered as an unknown author on the read path.
type Post struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Content        string `json:"content"`
	ImageURL       string `json:"imageUrl,omitempty"`
	ImageStorageID string `json:"imageStorageId,omitempty"`
	// CreatedAt is epoch milliseconds; feeds order by it descending.
	CreatedAt int64 `json:"createdAt"`
}

// PostAuthor is the public slice of a user joined onto a feed entry.
type PostAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// PostWithAuthor is a feed entry joined with its author. User is nil when
// the authoring user no longer resolves.
type PostWithAuthor struct {
	Post
	User *PostAuthor `json:"user"`
}

// ImageSource returns the post's image source. Posts never carry a direct
// URL that was not derived from a blob, but the resolution rules are shared
// with avatars.
func (p *Post) ImageSource() ImageSource {
	if p.ImageURL != "" {
		return DirectURL(p.ImageURL)
	}
	if p.ImageStorageID != "" {
		return BlobRef(p.ImageStorageID)
	}
	return NoImage()
}
