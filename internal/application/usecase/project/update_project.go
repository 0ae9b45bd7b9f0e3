package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
)

type UpdateProjectUseCase struct {
	projectRepo project.Repository
}

func NewUpdateProjectUseCase(pRepo project.Repository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projectRepo: pRepo}
}

type UpdateProjectInput struct {
	ProjectID     uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Slug          string
	Description   string
	Technologies  []string
	RepositoryURL *string
	LiveURL       *string
	IsPublic      bool
}

type UpdateProjectOutput struct {
	Project *project.Project
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	existing, err := uc.projectRepo.FindByID(ctx, input.ProjectID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Slug == "" {
		input.Slug = project.SlugFromTitle(input.Title)
	}
	if input.Technologies == nil {
		input.Technologies = []string{}
	}

	existing.Title = input.Title
	existing.Slug = input.Slug
	existing.Description = input.Description
	existing.Preview = project.PreviewOf(input.Description)
	existing.Technologies = input.Technologies
	existing.RepositoryURL = input.RepositoryURL
	existing.LiveURL = input.LiveURL
	existing.IsPublic = input.IsPublic
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update project failed: %w", err)
	}
	return &UpdateProjectOutput{Project: existing}, nil
}
