package models

// PostAuthor is the public slice of a user joined onto a feed entry.
type PostAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Post is a feed entry as served by the backend. User is nil when the
// authoring account no longer resolves.
type Post struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Content   string      `json:"content"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	CreatedAt int64       `json:"createdAt"`
	User      *PostAuthor `json:"user,omitempty"`
}
