package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/media"
	profileUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type ProfileHandler struct {
	profileUseCase      *profileUC.ProfileUseCase
	uploadAvatarUseCase *mediaUC.UploadAvatarUseCase
	logger              logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, avatarUC *mediaUC.UploadAvatarUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase:      uc,
		uploadAvatarUseCase: avatarUC,
		logger:              log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	input := profileUC.GetProfileInput{OwnerID: ownerID}
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		OwnerID:     ownerID,
		FullName:    req.FullName,
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Location:    req.Location,
		Tagline:     req.Tagline,
		Bio:         req.Bio,
		ProfileData: req.ProfileData,
	}
	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("avatar file is required", err))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.Error(apperror.NewInvalidInput("avatar file exceeds the 5MB limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("could not read avatar file", err))
		return
	}
	defer file.Close()

	input := mediaUC.UploadAvatarInput{OwnerID: ownerID, File: file}
	output, err := h.uploadAvatarUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": output.AvatarURL})
}
