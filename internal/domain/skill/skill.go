package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

// DefaultProficiency is assigned to skills created during onboarding, on a
// 1-5 scale. Users tune it later from the dashboard.
const DefaultProficiency = 3

type Skill struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Proficiency int       `json:"proficiency"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Skill, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	Create(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}
