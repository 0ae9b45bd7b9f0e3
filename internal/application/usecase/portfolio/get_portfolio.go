package portfolio

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// publicProjectLimit bounds how many projects a public portfolio page shows.
const publicProjectLimit = 50

// View is the assembled public portfolio for one username.
type View struct {
	Profile  *profile.Profile   `json:"profile"`
	Projects []*project.Project `json:"projects"`
	Skills   []*skill.Skill     `json:"skills"`
}

// ViewCache keeps assembled views hot; the worker warms it right after
// onboarding completes so the first portfolio visit is served from cache.
type ViewCache interface {
	Get(ctx context.Context, username string) (*View, bool, error)
	Set(ctx context.Context, username string, view *View) error
}

type GetPortfolioUseCase struct {
	profileRepo profile.Repository
	projectRepo project.Repository
	skillRepo   skill.Repository
	cache       ViewCache
	logger      logger.Logger
}

func NewGetPortfolioUseCase(
	profileRepo profile.Repository,
	projectRepo project.Repository,
	skillRepo skill.Repository,
	cache ViewCache,
	log logger.Logger,
) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
		cache:       cache,
		logger:      log,
	}
}

type GetPortfolioInput struct {
	Username string
}

type GetPortfolioOutput struct {
	View *View
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	username := profile.NormalizeUsername(input.Username)

	if uc.cache != nil {
		if view, hit, err := uc.cache.Get(ctx, username); err == nil && hit {
			return &GetPortfolioOutput{View: view}, nil
		} else if err != nil {
			uc.logger.Warn("Portfolio cache read failed", zap.String("username", username), zap.Error(err))
		}
	}

	view, err := uc.assemble(ctx, username)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, username, view); err != nil {
			uc.logger.Warn("Portfolio cache write failed", zap.String("username", username), zap.Error(err))
		}
	}
	return &GetPortfolioOutput{View: view}, nil
}

// Warm assembles the view and caches it without serving a request.
func (uc *GetPortfolioUseCase) Warm(ctx context.Context, username string) error {
	username = profile.NormalizeUsername(username)

	view, err := uc.assemble(ctx, username)
	if err != nil {
		return err
	}
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Set(ctx, username, view)
}

func (uc *GetPortfolioUseCase) assemble(ctx context.Context, username string) (*View, error) {
	p, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("portfolio", username)
		}
		return nil, err
	}

	projects, err := uc.projectRepo.ListPublicByOwner(ctx, p.OwnerID, publicProjectLimit, 0)
	if err != nil {
		return nil, err
	}

	skills, err := uc.skillRepo.ListByOwner(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}

	return &View{Profile: p, Projects: projects, Skills: skills}, nil
}
