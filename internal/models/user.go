package models

// User is the identity attached to the current session. It is persisted
// verbatim as the session record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
