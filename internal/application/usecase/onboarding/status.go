package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/user"
)

// StatusUseCase answers "where is this account in the onboarding funnel",
// straight from the durable store so the wizard can be resumed or skipped.
type StatusUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	projectRepo project.Repository
	skillRepo   skill.Repository
}

func NewStatusUseCase(
	userRepo user.Repository,
	profileRepo profile.Repository,
	projectRepo project.Repository,
	skillRepo skill.Repository,
) *StatusUseCase {
	return &StatusUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
	}
}

type StatusInput struct {
	OwnerID uuid.UUID
}

type StatusOutput struct {
	Status onboarding.Status
}

func (uc *StatusUseCase) Execute(ctx context.Context, input StatusInput) (*StatusOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	status := onboarding.Status{Completed: u.Onboarded()}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	switch {
	case err == nil:
		status.HasProfile = true
		status.HasUsername = p.Username != ""
	case errors.Is(err, profile.ErrProfileNotFound):
	default:
		return nil, err
	}

	projectCount, err := uc.projectRepo.CountByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	status.HasProjects = projectCount > 0

	skillCount, err := uc.skillRepo.CountByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	status.HasSkills = skillCount > 0

	return &StatusOutput{Status: status}, nil
}
