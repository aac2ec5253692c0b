package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFieldErrorsFlattensAndSorts(t *testing.T) {
	verrs := validation.Errors{
		"name":  errors.New("cannot be blank"),
		"email": errors.New("must be a valid email address"),
	}

	details := FieldErrors(verrs)
	require.Len(t, details, 2)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "must be a valid email address", details[0].Message)
	assert.Equal(t, "name", details[1].Field)
}

func TestFieldErrorsNonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestValidationErrorResponseBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationError(c, validation.Errors{"overall_rating": errors.New("must be no greater than 5")})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "request validation failed",
			"details": [{"field": "overall_rating", "message": "must be no greater than 5"}]
		}
	}`, w.Body.String())
}

func TestValidationErrorFallsBackForPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationError(c, errors.New("invalid request"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success": true, "data": {"id": "abc"}}`, w.Body.String())
}
