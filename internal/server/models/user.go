// Package models defines server-side data models for Framez.
package models

// User is the stored user record. PasswordHash never leaves the auth
// service; every outward-facing path goes through Public().
type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    string
	Avatar          string
	AvatarStorageID string
	// CreatedAt is epoch milliseconds, set once at insert.
	CreatedAt int64
}

// UserPublic is the sanitized projection of a User: the shape returned by
// register/login/getUserById and the shape the client persists as its
// session snapshot.
type UserPublic struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Public returns the sanitized projection of u.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}

// AvatarSource returns the image source for the user's avatar, preferring a
// direct URL over a stored blob reference.
func (u *User) AvatarSource() ImageSource {
	if u.Avatar != "" {
		return DirectURL(u.Avatar)
	}
	if u.AvatarStorageID != "" {
		return BlobRef(u.AvatarStorageID)
	}
	return NoImage()
}
