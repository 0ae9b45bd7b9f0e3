package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
)

// UserTypeHandler exposes the role catalog. Both endpoints are public so the
// wizard can render before the user has picked anything.
type UserTypeHandler struct {
	registry usertype.Registry
}

func NewUserTypeHandler(registry usertype.Registry) *UserTypeHandler {
	return &UserTypeHandler{registry: registry}
}

func (h *UserTypeHandler) ListUserTypes(c *gin.Context) {
	schemas, err := h.registry.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]UserTypeSummaryDTO, len(schemas))
	for i, s := range schemas {
		dtos[i] = ToUserTypeSummaryDTO(s)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *UserTypeHandler) GetUserType(c *gin.Context) {
	slug := c.Param("slug")
	schema, err := h.registry.GetSchema(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, usertype.ErrUnknownUserType) {
			c.Error(apperror.NewNotFound("user type", slug))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserTypeDTO(schema))
}
