package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
)

type CreateProjectUseCase struct {
	projectRepo project.Repository
}

func NewCreateProjectUseCase(pRepo project.Repository) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: pRepo,
	}
}

type CreateProjectInput struct {
	OwnerID       uuid.UUID
	Kind          project.Kind
	Title         string
	Slug          string
	Description   string
	Technologies  []string
	RepositoryURL *string
	LiveURL       *string
	IsPublic      bool
}

type CreateProjectOutput struct {
	ProjectID uuid.UUID
	Slug      string
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {

	if input.Slug == "" {
		input.Slug = project.SlugFromTitle(input.Title)
	}
	if input.Kind == "" {
		input.Kind = project.KindProject
	}
	if input.Technologies == nil {
		input.Technologies = []string{}
	}

	now := time.Now().UTC()

	newProject := &project.Project{
		ID:            uuid.New(),
		OwnerID:       input.OwnerID,
		Kind:          input.Kind,
		Slug:          input.Slug,
		Title:         input.Title,
		Description:   input.Description,
		Preview:       project.PreviewOf(input.Description),
		Technologies:  input.Technologies,
		RepositoryURL: input.RepositoryURL,
		LiveURL:       input.LiveURL,
		IsPublic:      input.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := newProject.Validate(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Save(ctx, newProject); err != nil {
		return nil, fmt.Errorf("save project failed: %w", err)
	}

	return &CreateProjectOutput{
		ProjectID: newProject.ID,
		Slug:      newProject.Slug,
	}, nil
}
