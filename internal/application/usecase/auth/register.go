package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/user"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/auth"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type RegisterOutput struct {
	UserID      uuid.UUID
	AccessToken string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	if len(input.Password) < 8 {
		return nil, apperror.NewFieldValidation("password", "Password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if input.Name != "" {
		newUser.Name = &input.Name
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token after register", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &RegisterOutput{UserID: newUser.ID, AccessToken: token}, nil
}
