package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
)

type DeleteProjectUseCase struct {
	projectRepo project.Repository
}

func NewDeleteProjectUseCase(pRepo project.Repository) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{projectRepo: pRepo}
}

type DeleteProjectInput struct {
	ProjectID uuid.UUID
	OwnerID   uuid.UUID
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	return uc.projectRepo.Delete(ctx, input.ProjectID, input.OwnerID)
}
