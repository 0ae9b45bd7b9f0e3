package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	onboardingUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type OnboardingHandler struct {
	sessionUseCase  *onboardingUC.SessionUseCase
	completeUseCase *onboardingUC.CompleteOnboardingUseCase
	statusUseCase   *onboardingUC.StatusUseCase
	usernameUseCase *onboardingUC.CheckUsernameUseCase
	logger          logger.Logger
}

func NewOnboardingHandler(
	sessionUC *onboardingUC.SessionUseCase,
	completeUC *onboardingUC.CompleteOnboardingUseCase,
	statusUC *onboardingUC.StatusUseCase,
	usernameUC *onboardingUC.CheckUsernameUseCase,
	log logger.Logger,
) *OnboardingHandler {
	return &OnboardingHandler{
		sessionUseCase:  sessionUC,
		completeUseCase: completeUC,
		statusUseCase:   statusUC,
		usernameUseCase: usernameUC,
		logger:          log,
	}
}

// StartSession returns the caller's live session, creating one at the
// welcome step when none exists.
func (h *OnboardingHandler) StartSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.sessionUseCase.ExecuteStart(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Schema))
}

func (h *OnboardingHandler) GetSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.sessionUseCase.ExecuteGet(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			c.Error(apperror.NewNotFound("onboarding session", ownerID.String()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Schema))
}

func (h *OnboardingHandler) PatchSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req PatchSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := onboardingUC.PatchInput{OwnerID: ownerID, Patch: req.ToDomainPatch()}
	output, err := h.sessionUseCase.ExecutePatch(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			c.Error(apperror.NewNotFound("onboarding session", ownerID.String()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Schema))
}

func (h *OnboardingHandler) AdvanceSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req AdvanceSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := onboardingUC.AdvanceInput{
		OwnerID: ownerID,
		Action:  onboardingUC.AdvanceAction(req.Action),
	}
	output, err := h.sessionUseCase.ExecuteAdvance(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			c.Error(apperror.NewNotFound("onboarding session", ownerID.String()))
			return
		}
		c.Error(err)
		return
	}

	if len(output.FieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "validation failed",
			"message": "The given data was invalid",
			"errors":  output.FieldErrors,
			"session": ToSessionDTO(output.Session, output.Schema),
		})
		return
	}
	c.JSON(http.StatusOK, ToSessionDTO(output.Session, output.Schema))
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := onboardingUC.CompleteInput{OwnerID: ownerID, Draft: req.ToDomainDraft()}
	output, err := h.completeUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	body := gin.H{
		"success":       true,
		"profile":       ToProfileDTO(output.Profile),
		"portfolio_url": output.PortfolioURL,
	}
	if output.Project != nil {
		body["project"] = ToProjectDTO(output.Project)
	}
	c.JSON(http.StatusCreated, body)
}

func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.statusUseCase.Execute(c.Request.Context(), onboardingUC.StatusInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToStatusDTO(output.Status))
}

func (h *OnboardingHandler) CheckUsername(c *gin.Context) {
	candidate := c.Query("username")
	if candidate == "" {
		c.Error(apperror.NewInvalidInput("username query parameter is required", nil))
		return
	}

	output, err := h.usernameUseCase.Execute(c.Request.Context(), onboardingUC.CheckUsernameInput{Candidate: candidate})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":  output.Username,
		"available": output.Available,
	})
}
