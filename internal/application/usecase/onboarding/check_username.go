package onboarding

import (
	"context"

	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// AvailabilityCache memoizes check results for a short window; Get reports
// (available, hit, err).
type AvailabilityCache interface {
	Get(ctx context.Context, username string) (bool, bool, error)
	Set(ctx context.Context, username string, available bool) error
}

type CheckUsernameUseCase struct {
	profileRepo profile.Repository
	cache       AvailabilityCache
	logger      logger.Logger
}

func NewCheckUsernameUseCase(repo profile.Repository, cache AvailabilityCache, log logger.Logger) *CheckUsernameUseCase {
	return &CheckUsernameUseCase{
		profileRepo: repo,
		cache:       cache,
		logger:      log,
	}
}

type CheckUsernameInput struct {
	Candidate string
}

type CheckUsernameOutput struct {
	Username  string
	Available bool
}

func (uc *CheckUsernameUseCase) Execute(ctx context.Context, input CheckUsernameInput) (*CheckUsernameOutput, error) {
	username := profile.NormalizeUsername(input.Candidate)

	// Candidates below the minimum length or with bad characters are
	// rejected before any storage access.
	if err := profile.ValidateUsername(username); err != nil {
		return nil, apperror.NewFieldValidation("username", err.Error())
	}

	if uc.cache != nil {
		if available, hit, err := uc.cache.Get(ctx, username); err == nil && hit {
			return &CheckUsernameOutput{Username: username, Available: available}, nil
		} else if err != nil {
			uc.logger.Warn("Availability cache read failed", zap.String("username", username), zap.Error(err))
		}
	}

	taken, err := uc.profileRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	available := !taken

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, username, available); err != nil {
			uc.logger.Warn("Availability cache write failed", zap.String("username", username), zap.Error(err))
		}
	}

	return &CheckUsernameOutput{Username: username, Available: available}, nil
}
