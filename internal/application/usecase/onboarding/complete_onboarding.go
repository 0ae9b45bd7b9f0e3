package onboarding

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/adapters/event"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

var tracer = otel.Tracer("onboarding_usecase")

// EventPublisher is satisfied by the kafka producer client.
type EventPublisher interface {
	PublishOnboardingCompleted(ctx context.Context, payload event.OnboardingEventPayload) error
}

// CompleteOnboardingUseCase turns a finished draft into the atomic
// completion write, then fans out the completed event.
type CompleteOnboardingUseCase struct {
	completer onboarding.Completer
	registry  usertype.Registry
	store     onboarding.Store
	publisher EventPublisher
	logger    logger.Logger
}

func NewCompleteOnboardingUseCase(
	completer onboarding.Completer,
	registry usertype.Registry,
	store onboarding.Store,
	publisher EventPublisher,
	log logger.Logger,
) *CompleteOnboardingUseCase {
	return &CompleteOnboardingUseCase{
		completer: completer,
		registry:  registry,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

type CompleteInput struct {
	OwnerID uuid.UUID
	Draft   onboarding.Draft
}

type CompleteOutput struct {
	Profile      *profile.Profile
	Project      *project.Project
	PortfolioURL string
}

func (uc *CompleteOnboardingUseCase) Execute(ctx context.Context, input CompleteInput) (*CompleteOutput, error) {

	ctx, span := tracer.Start(ctx, "CompleteOnboarding")
	defer span.End()

	draft := input.Draft
	fieldErrors := map[string]string{}

	if draft.FullName == "" {
		fieldErrors["full_name"] = "Full name is required"
	}

	username := profile.NormalizeUsername(draft.Username)
	if username == "" {
		fieldErrors["username"] = "Username is required"
	} else if err := profile.ValidateUsername(username); err != nil {
		fieldErrors["username"] = err.Error()
	}

	var schema *usertype.Schema
	if draft.UserType != "" {
		var err error
		schema, err = uc.registry.GetSchema(ctx, draft.UserType)
		if err != nil {
			if errors.Is(err, usertype.ErrUnknownUserType) {
				fieldErrors["user_type"] = "Unknown user type"
			} else {
				return nil, err
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidation(fieldErrors)
	}

	now := time.Now().UTC()

	newProfile := &profile.Profile{
		OwnerID:     input.OwnerID,
		Username:    username,
		FullName:    draft.FullName,
		UserType:    draft.UserType,
		JobTitle:    draft.JobTitle,
		Company:     draft.Company,
		Location:    draft.Location,
		Tagline:     draft.Tagline,
		Bio:         draft.Bio,
		ProfileData: draft.ProfileData,
		UpdatedAt:   now,
	}
	if newProfile.ProfileData == nil {
		newProfile.ProfileData = map[string]any{}
	}

	cmd := onboarding.CompletionCommand{Profile: newProfile}

	if title := draft.ActivityTitle(); title != "" {
		kind := project.KindProject
		if schema != nil && schema.Slug == usertype.SlugTeacher {
			kind = project.KindResource
		}

		description := draft.ActivityDescription()
		artifact := &project.Project{
			ID:           uuid.New(),
			OwnerID:      input.OwnerID,
			Kind:         kind,
			Slug:         project.SlugFromTitle(title),
			Title:        title,
			Description:  description,
			Preview:      project.PreviewOf(description),
			Technologies: draft.ActivityTechnologies(),
			IsPublic:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if artifact.Technologies == nil {
			artifact.Technologies = []string{}
		}
		if err := artifact.Validate(); err != nil {
			return nil, apperror.NewFieldValidation("first_project.title", "Could not derive a valid URL slug from this title")
		}
		cmd.Activity = artifact
	}

	seen := map[string]bool{}
	for _, name := range draft.Skills {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cmd.Skills = append(cmd.Skills, &skill.Skill{
			ID:          uuid.New(),
			OwnerID:     input.OwnerID,
			Name:        name,
			Proficiency: skill.DefaultProficiency,
			CreatedAt:   now,
		})
	}

	if err := uc.completer.Complete(ctx, cmd); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("username", username),
		attribute.Int("skills", len(cmd.Skills)),
	)

	// Post-commit housekeeping must not fail the request.
	if uc.store != nil {
		if err := uc.store.Delete(ctx, input.OwnerID); err != nil {
			uc.logger.Warn("Failed to discard onboarding session", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
		}
	}
	if uc.publisher != nil {
		err := uc.publisher.PublishOnboardingCompleted(ctx, event.OnboardingEventPayload{
			EventType:  event.EventOnboardingCompleted,
			OwnerID:    input.OwnerID,
			Username:   username,
			UserType:   draft.UserType,
			OccurredAt: now,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish onboarding event", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
		}
	}

	return &CompleteOutput{
		Profile:      newProfile,
		Project:      cmd.Activity,
		PortfolioURL: newProfile.PortfolioPath(),
	}, nil
}
