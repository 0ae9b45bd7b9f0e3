package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/portfolio"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type PortfolioHandler struct {
	getPortfolioUseCase *portfolioUC.GetPortfolioUseCase
	logger              logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.GetPortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		getPortfolioUseCase: uc,
		logger:              log,
	}
}

// GetPortfolio serves the public page payload for one username.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	username := c.Param("username")

	output, err := h.getPortfolioUseCase.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{Username: username})
	if err != nil {
		c.Error(err)
		return
	}

	view := output.View
	dto := PortfolioDTO{
		Profile:  ToProfileDTO(view.Profile),
		Projects: make([]ProjectSummaryDTO, len(view.Projects)),
		Skills:   ToSkillDTOs(view.Skills),
	}
	for i, p := range view.Projects {
		dto.Projects[i] = ToProjectSummaryDTO(p)
	}
	c.JSON(http.StatusOK, dto)
}
