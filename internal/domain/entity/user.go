// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the moderation state of an account.
type UserStatus string

const (
	// UserStatusActive is a normal account.
	UserStatusActive UserStatus = "active"
	// UserStatusSuspended is a temporarily blocked account.
	UserStatusSuspended UserStatus = "suspended"
	// UserStatusBanned is a permanently blocked account.
	UserStatusBanned UserStatus = "banned"
)

// String returns the string representation of the UserStatus.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	default:
		return false
	}
}

// CanPublish reports whether an account in this state may create or mutate
// listings. Suspended and banned profiles keep their data but lose write
// access.
func (s UserStatus) CanPublish() bool {
	return s == UserStatusActive
}

// User is the core entity in the system, representing one seller/buyer
// profile. Accounts are never hard-deleted; moderation flips Status instead.
type User struct {
	ID        uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Username  string     // Public display name, unique across the marketplace.
	Email     string     // Primary contact email, used as the login identifier.
	Phone     string     // WhatsApp number buyers are sent to.
	AvatarURL string     // Optional profile picture URL.
	City      string     // Derived from the profile's CEP, shown on listings.
	State     string     // Two-letter state code.
	Plan      Plan       // Subscription tier deciding quota and listing duration.
	Status    UserStatus // Moderation state (active/suspended/banned).
	CreatedAt time.Time  // Timestamp of when this account was created.
	UpdatedAt time.Time  // Timestamp of the last modification.
}

// PublicProfile is the subset of a profile embedded in feed responses.
// Only fields a stranger may see: never email, plan or status.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Public returns the viewer-safe projection of the user.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
	}
}

// ProviderTypeEmail is the email/password credential provider.
const ProviderTypeEmail = "email"

// Authentication represents a single login credential for a user. Today the
// only provider is "email"; the split from User keeps password material out
// of profile reads.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider, e.g. "email".
	ProviderUserID string    // The login identifier at the provider (the email address).
	PasswordHash   string    // bcrypt hash, only set when Provider is "email".
	CreatedAt      time.Time // When this credential was linked to the account.
}

// RefreshToken represents a long-lived, authorized session. Only a SHA-256
// hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hex digest of the raw refresh token.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When the session was created (login time).
}
