package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"website_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	base := New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest)
	withDetails := base.WithDetails(map[string]string{"email": "required"})

	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
	assert.True(t, errors.Is(withDetails, base))
}

func TestIsMatchesWrappedCopies(t *testing.T) {
	err := fmt.Errorf("login: %w", ErrInvalidCredentials.WithError(errors.New("bcrypt mismatch")))

	assert.True(t, Is(err, ErrInvalidCredentials))
	assert.False(t, Is(err, ErrOneTimeTokenDoesNotExist))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestFieldErrorsShape(t *testing.T) {
	details, ok := ErrOneTimeTokenDoesNotExist.Details.(map[string][]string)
	assert.True(t, ok)
	assert.Equal(t, []string{MsgInvalidToken}, details["token"])
}

func TestHandleGinError_HidesInternalDetailsButKeepsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(logger.WithRequestID(req.Context(), "req-7"))

	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","domain":"system","message":"Internal server error","details":{"request_id":"req-7"}}}`, w.Body.String())
}
