package skill

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
)

type SkillUseCase struct {
	skillRepo skill.Repository
}

func NewSkillUseCase(repo skill.Repository) *SkillUseCase {
	return &SkillUseCase{skillRepo: repo}
}

type ListSkillsInput struct {
	OwnerID uuid.UUID
}

type ListSkillsOutput struct {
	Skills []*skill.Skill
}

func (uc *SkillUseCase) ExecuteList(ctx context.Context, input ListSkillsInput) (*ListSkillsOutput, error) {
	skills, err := uc.skillRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListSkillsOutput{Skills: skills}, nil
}

type CreateSkillInput struct {
	OwnerID     uuid.UUID
	Name        string
	Proficiency int
}

type CreateSkillOutput struct {
	Skill *skill.Skill
}

func (uc *SkillUseCase) ExecuteCreate(ctx context.Context, input CreateSkillInput) (*CreateSkillOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldValidation("name", "Skill name is required")
	}
	if input.Proficiency == 0 {
		input.Proficiency = skill.DefaultProficiency
	}
	if input.Proficiency < 1 || input.Proficiency > 5 {
		return nil, apperror.NewFieldValidation("proficiency", "Proficiency must be between 1 and 5")
	}

	s := &skill.Skill{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        name,
		Proficiency: input.Proficiency,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.skillRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return &CreateSkillOutput{Skill: s}, nil
}

type UpdateSkillInput struct {
	SkillID     uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Proficiency int
}

type UpdateSkillOutput struct {
	Skill *skill.Skill
}

func (uc *SkillUseCase) ExecuteUpdate(ctx context.Context, input UpdateSkillInput) (*UpdateSkillOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldValidation("name", "Skill name is required")
	}
	if input.Proficiency < 1 || input.Proficiency > 5 {
		return nil, apperror.NewFieldValidation("proficiency", "Proficiency must be between 1 and 5")
	}

	s := &skill.Skill{
		ID:          input.SkillID,
		OwnerID:     input.OwnerID,
		Name:        name,
		Proficiency: input.Proficiency,
	}
	if err := uc.skillRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return &UpdateSkillOutput{Skill: s}, nil
}

type DeleteSkillInput struct {
	SkillID uuid.UUID
	OwnerID uuid.UUID
}

func (uc *SkillUseCase) ExecuteDelete(ctx context.Context, input DeleteSkillInput) error {
	return uc.skillRepo.Delete(ctx, input.SkillID, input.OwnerID)
}
