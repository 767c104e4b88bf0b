// Package models holds client-side representations of the API payloads.
package models

// User is the sanitized account record returned by the backend. It never
// carries a credential digest and is safe to persist locally.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
