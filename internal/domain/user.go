package domain

import "time"

// User is the single persisted identity of the service.
// PasswordHash must never leave the store/hasher boundary; transport DTOs
// build their own safe view.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string

	// Profile is arbitrary client-supplied metadata. No schema is enforced
	// beyond "it is a map".
	Profile map[string]any

	// Settings carries per-user preferences with a default notification shape.
	Settings map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
	// LastLogin stays nil until the first successful login.
	LastLogin *time.Time
}

// DefaultSettings returns the settings shape every new user starts with.
func DefaultSettings() map[string]any {
	return map[string]any{
		"notifications": map[string]any{
			"email":  true,
			"in_app": true,
		},
	}
}
