package models

// User is the signed-in identity carried by the session cookie. It comes
// from the identity provider; nothing about it is stored locally.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
