package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
)

// Step is one screen of the wizard. The walk is strictly linear.
type Step string

const (
	StepWelcome  Step = "welcome"
	StepRole     Step = "role"
	StepProfile  Step = "profile"
	StepActivity Step = "activity"
	StepSkills   Step = "skills"
	StepLaunch   Step = "launch"
)

var stepOrder = []Step{StepWelcome, StepRole, StepProfile, StepActivity, StepSkills, StepLaunch}

var (
	ErrSessionNotFound = errors.New("onboarding session not found")
	ErrAlreadyAtStart  = errors.New("already at the first step")
	ErrAlreadyAtEnd    = errors.New("already at the last step")
	ErrNotAtLaunch     = errors.New("completion is only allowed from the launch step")
)

// Steps returns the wizard walk in order.
func Steps() []Step {
	return append([]Step(nil), stepOrder...)
}

func stepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Session is one user's walk through the wizard. It lives in the draft store
// under a TTL; abandonment is expiry, never a partial write.
type Session struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Step      Step      `json:"step"`
	Draft     Draft     `json:"draft"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(ownerID uuid.UUID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Step:      StepWelcome,
		Draft:     Draft{ProfileData: map[string]any{}, ActivityData: map[string]any{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateStep runs the current step's validator against the draft and
// returns a field-keyed error map, empty when the step may be left via Next.
// The schema is the selected role's schema; it is only consulted on the
// profile and activity steps and may be nil before role selection.
func (s *Session) ValidateStep(schema *usertype.Schema) map[string]string {
	errs := map[string]string{}

	switch s.Step {
	case StepRole:
		if s.Draft.UserType == "" {
			errs["user_type"] = "Choose how you want to present yourself"
		}
	case StepProfile:
		if s.Draft.FullName == "" {
			errs["full_name"] = "Full name is required"
		}
		if s.Draft.JobTitle == "" {
			errs["job_title"] = "Job title is required"
		}
		if s.Draft.Username == "" {
			errs["username"] = "Username is required"
		} else if err := profile.ValidateUsername(profile.NormalizeUsername(s.Draft.Username)); err != nil {
			errs["username"] = err.Error()
		}
		if schema != nil {
			for i := range schema.ProfileFields {
				f := &schema.ProfileFields[i]
				if msg := f.Check(s.Draft.ProfileData[f.Name]); msg != "" {
					errs[f.Name] = msg
				}
			}
		}
	case StepActivity:
		// Activity answers are optional across the board; only constraint
		// violations on provided values block the step.
		if schema != nil {
			for i := range schema.ActivityFields {
				f := &schema.ActivityFields[i]
				value, present := s.Draft.ActivityData[f.Name]
				if !present {
					continue
				}
				if msg := f.Check(value); msg != "" {
					errs[f.Name] = msg
				}
			}
		}
	case StepSkills:
		if len(s.Draft.Skills) == 0 {
			errs["skills"] = "Pick at least one skill"
		}
	}

	return errs
}

// Next advances to the following step if the current step validates. The
// returned map is non-empty exactly when the transition was refused.
func (s *Session) Next(schema *usertype.Schema) (map[string]string, error) {
	idx := stepIndex(s.Step)
	if idx < 0 {
		return nil, fmt.Errorf("session is on unknown step %q", s.Step)
	}
	if idx == len(stepOrder)-1 {
		return nil, ErrAlreadyAtEnd
	}
	if errs := s.ValidateStep(schema); len(errs) > 0 {
		return errs, nil
	}
	s.Step = stepOrder[idx+1]
	s.UpdatedAt = time.Now().UTC()
	return nil, nil
}

// Back returns to the previous step without re-validating anything.
func (s *Session) Back() error {
	idx := stepIndex(s.Step)
	if idx <= 0 {
		return ErrAlreadyAtStart
	}
	s.Step = stepOrder[idx-1]
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Skip jumps straight to the launch step, bypassing the validators of every
// step in between. This is an intentional escape hatch: a user may finish
// onboarding with nothing but a role chosen.
func (s *Session) Skip() error {
	if s.Step == StepLaunch {
		return ErrAlreadyAtEnd
	}
	s.Step = StepLaunch
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// AtLaunch reports whether Complete may be attempted.
func (s *Session) AtLaunch() bool {
	return s.Step == StepLaunch
}

// Store keeps at most one live session per user.
type Store interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}
