package domain

import (
	"context"
	"time"
)

// Role is the closed set of application roles. It determines both the UI
// affordances a user gets and the server-side query filter applied to
// conference listings.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleSpeaker   Role = "speaker"
	RoleAttendee  Role = "attendee"
)

// ParseRole returns the Role for s, and whether s named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOrganizer, RoleSpeaker, RoleAttendee:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, fullName string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		FullName:  fullName,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// TokenRevoker invalidates issued tokens until they expire on their own.
// Implementations may be backed by redis; a nil store disables revocation.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserService defines the business logic for sign-up and authentication.
type UserService interface {
	SignUp(ctx context.Context, email, password, fullName string, role Role) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Logout(ctx context.Context, token string) error
	GetByID(ctx context.Context, id string) (*User, error)
}
