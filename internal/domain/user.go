package domain

// User is an account that owns per-category lists. Authentication is
// handled by the surrounding deployment; the server only needs identity.
type User struct {
	Syncable
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
