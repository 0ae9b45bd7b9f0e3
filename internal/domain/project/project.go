package project

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the two flavors of the same row: regular portfolio
// projects, and the "teaching resource" variant created for teacher accounts.
type Kind string

const (
	KindProject  Kind = "project"
	KindResource Kind = "resource"
)

// DescriptionPreviewLen bounds the short preview derived from a description
// at creation time.
const DescriptionPreviewLen = 160

var (
	ErrInvalidSlug     = errors.New("slug only allows lowercase letters, numbers, and hyphens")
	ErrProjectNotFound = errors.New("project not found")

	slugRegex    = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

type Project struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Kind          Kind      `json:"kind"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Preview       string    `json:"preview"`
	Technologies  []string  `json:"technologies"`
	RepositoryURL *string   `json:"repository_url"`
	LiveURL       *string   `json:"live_url"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Project) Validate() error {
	if !slugRegex.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// SlugFromTitle derives a URL slug: lowercased, non-alphanumerics collapsed
// to single hyphens, trimmed. "Grade Tracker" becomes "grade-tracker".
func SlugFromTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PreviewOf truncates a description to a short rune-safe preview.
func PreviewOf(description string) string {
	runes := []rune(description)
	if len(runes) <= DescriptionPreviewLen {
		return description
	}
	return strings.TrimSpace(string(runes[:DescriptionPreviewLen])) + "…"
}

type Repository interface {
	Save(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Project, error)
	ListPublicByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Project, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
