package profile

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsername  = errors.New("username only allows lowercase letters, numbers, and hyphens")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrProfileNotFound  = errors.New("profile not found")

	usernameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// UsernameMinLength is also the threshold below which the availability
// endpoint refuses to consult storage.
const UsernameMinLength = 3

// Profile is the one-to-one public identity of a user. Username is globally
// unique and forms the public portfolio URL.
type Profile struct {
	OwnerID     uuid.UUID      `json:"owner_id"`
	Username    string         `json:"username"`
	FullName    string         `json:"full_name"`
	UserType    string         `json:"user_type"`
	JobTitle    string         `json:"job_title"`
	Company     string         `json:"company"`
	Location    string         `json:"location"`
	Tagline     string         `json:"tagline"`
	Bio         string         `json:"bio"`
	AvatarURL   *string        `json:"avatar_url"`
	ProfileData map[string]any `json:"profile_data"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NormalizeUsername lowercases and trims a candidate before validation.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateUsername checks the normalized form against the global username
// invariant.
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLength {
		return ErrUsernameTooShort
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// PortfolioPath is the public URL path the username resolves to.
func (p *Profile) PortfolioPath() string {
	return "/portfolio/" + p.Username
}

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Upsert(ctx context.Context, p *Profile) error
	SetAvatarURL(ctx context.Context, ownerID uuid.UUID, url string) error
}
