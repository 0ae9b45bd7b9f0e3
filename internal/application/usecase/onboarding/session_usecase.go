package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type AdvanceAction string

const (
	ActionNext AdvanceAction = "next"
	ActionBack AdvanceAction = "back"
	ActionSkip AdvanceAction = "skip"
)

// SessionUseCase drives the wizard: one live session per user, stored with a
// TTL, advanced through the fixed step sequence.
type SessionUseCase struct {
	store    onboarding.Store
	registry usertype.Registry
	logger   logger.Logger
}

func NewSessionUseCase(store onboarding.Store, registry usertype.Registry, log logger.Logger) *SessionUseCase {
	return &SessionUseCase{
		store:    store,
		registry: registry,
		logger:   log,
	}
}

type SessionOutput struct {
	Session *onboarding.Session
	// Schema is the selected role's schema, nil until a role is chosen.
	Schema *usertype.Schema
}

func (uc *SessionUseCase) schemaFor(ctx context.Context, session *onboarding.Session) (*usertype.Schema, error) {
	if session.Draft.UserType == "" {
		return nil, nil
	}
	schema, err := uc.registry.GetSchema(ctx, session.Draft.UserType)
	if err != nil {
		if errors.Is(err, usertype.ErrUnknownUserType) {
			return nil, apperror.NewFieldValidation("user_type", "Unknown user type")
		}
		return nil, err
	}
	return schema, nil
}

// ExecuteStart returns the existing session or creates a fresh one at the
// welcome step.
func (uc *SessionUseCase) ExecuteStart(ctx context.Context, ownerID uuid.UUID) (*SessionOutput, error) {
	session, err := uc.store.Get(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, onboarding.ErrSessionNotFound) {
			return nil, err
		}
		session = onboarding.NewSession(ownerID)
		if err := uc.store.Save(ctx, session); err != nil {
			return nil, err
		}
	}

	schema, err := uc.schemaFor(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: session, Schema: schema}, nil
}

func (uc *SessionUseCase) ExecuteGet(ctx context.Context, ownerID uuid.UUID) (*SessionOutput, error) {
	session, err := uc.store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	schema, err := uc.schemaFor(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: session, Schema: schema}, nil
}

type PatchInput struct {
	OwnerID uuid.UUID
	Patch   onboarding.Patch
}

// ExecutePatch merges answers into the draft without moving between steps.
// Field edits are not validated here; validation happens on Next.
func (uc *SessionUseCase) ExecutePatch(ctx context.Context, input PatchInput) (*SessionOutput, error) {
	session, err := uc.store.Get(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Patch.UserType != nil && *input.Patch.UserType != "" {
		if _, err := uc.registry.GetSchema(ctx, *input.Patch.UserType); err != nil {
			if errors.Is(err, usertype.ErrUnknownUserType) {
				return nil, apperror.NewFieldValidation("user_type", "Unknown user type")
			}
			return nil, err
		}
	}

	session.Draft.Apply(input.Patch)
	if err := uc.store.Save(ctx, session); err != nil {
		return nil, err
	}

	schema, err := uc.schemaFor(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: session, Schema: schema}, nil
}

type AdvanceInput struct {
	OwnerID uuid.UUID
	Action  AdvanceAction
}

type AdvanceOutput struct {
	Session *onboarding.Session
	Schema  *usertype.Schema
	// FieldErrors is non-empty when Next was refused by the current step's
	// validator; the session did not move.
	FieldErrors map[string]string
}

func (uc *SessionUseCase) ExecuteAdvance(ctx context.Context, input AdvanceInput) (*AdvanceOutput, error) {
	session, err := uc.store.Get(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	schema, err := uc.schemaFor(ctx, session)
	if err != nil {
		return nil, err
	}

	switch input.Action {
	case ActionNext:
		fieldErrors, err := session.Next(schema)
		if err != nil {
			return nil, apperror.NewInvalidInput("cannot advance", err)
		}
		if len(fieldErrors) > 0 {
			return &AdvanceOutput{Session: session, Schema: schema, FieldErrors: fieldErrors}, nil
		}
	case ActionBack:
		if err := session.Back(); err != nil {
			return nil, apperror.NewInvalidInput("cannot go back", err)
		}
	case ActionSkip:
		if err := session.Skip(); err != nil {
			return nil, apperror.NewInvalidInput("cannot skip", err)
		}
	default:
		return nil, apperror.NewInvalidInput("unknown action", nil)
	}

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &AdvanceOutput{Session: session, Schema: schema}, nil
}
