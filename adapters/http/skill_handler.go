package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	skillUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
}

func NewSkillHandler(uc *skillUC.SkillUseCase) *SkillHandler {
	return &SkillHandler{skillUseCase: uc}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.skillUseCase.ExecuteList(c.Request.Context(), skillUC.ListSkillsInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTOs(output.Skills))
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req CreateOrUpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := skillUC.CreateSkillInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Proficiency: req.Proficiency,
	}
	output, err := h.skillUseCase.ExecuteCreate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToSkillDTO(output.Skill))
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	skillID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill ID", err))
		return
	}
	var req CreateOrUpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := skillUC.UpdateSkillInput{
		SkillID:     skillID,
		OwnerID:     ownerID,
		Name:        req.Name,
		Proficiency: req.Proficiency,
	}
	output, err := h.skillUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTO(output.Skill))
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	skillID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill ID", err))
		return
	}

	input := skillUC.DeleteSkillInput{SkillID: skillID, OwnerID: ownerID}
	if err := h.skillUseCase.ExecuteDelete(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
