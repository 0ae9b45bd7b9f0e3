package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

func errorRouter(isProduction bool, err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(logger.NewNop(), isProduction))
	router.GET("/boom", func(c *gin.Context) {
		c.Error(err)
	})
	return router
}

func fireRequest(t *testing.T, router *gin.Engine) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(rr, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestErrorMiddleware_AppErrorShowsCauseInDevelopment(t *testing.T) {
	appErr := apperror.NewInternal("completion transaction failed", errors.New("pq: connection refused"))
	status, body := fireRequest(t, errorRouter(false, appErr))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "completion transaction failed", body["details"])
	assert.Equal(t, "pq: connection refused", body["cause"])
}

func TestErrorMiddleware_AppErrorHidesCauseInProduction(t *testing.T) {
	appErr := apperror.NewInternal("completion transaction failed", errors.New("pq: connection refused"))
	status, body := fireRequest(t, errorRouter(true, appErr))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "details")
	assert.NotContains(t, body, "cause")
}

func TestErrorMiddleware_ValidationBodyShape(t *testing.T) {
	appErr := apperror.NewFieldValidation("username", "username is taken")
	status, body := fireRequest(t, errorRouter(true, appErr))

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "The given data was invalid", body["message"])

	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "username is taken", fields["username"])
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	status, body := fireRequest(t, errorRouter(false, errors.New("nil pointer somewhere")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "An internal server error occurred", body["message"])
	assert.Equal(t, "nil pointer somewhere", body["details"])

	status, body = fireRequest(t, errorRouter(true, errors.New("nil pointer somewhere")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "details")
}
