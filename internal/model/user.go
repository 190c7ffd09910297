package model

import "time"

// Role names seeded by the schema migration.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// User is an account plus its directory profile. ID is a UUID string.
type User struct {
	ID           string    // users.id
	Email        string    // users.email (unique, lower-cased)
	UserName     string    // users.user_name
	PasswordHash string    // users.password_hash (bcrypt)
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	DisplayName  string    // users.display_name
	JobTitle     string    // users.job_title
	Department   string    // users.department
	PhoneNumber  string    // users.phone_number
	PhotoURL     string    // users.photo_url
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role is a named permission set. Membership lives in user_roles.
type Role struct {
	ID          uint64    // roles.id
	Name        string    // roles.name
	Description string    // roles.description
	CreatedAt   time.Time // roles.created_at
	UpdatedAt   time.Time // roles.updated_at
}

// RefreshToken is a stored refresh token. Only the SHA-256 hash of the raw
// token is persisted.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
