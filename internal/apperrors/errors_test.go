package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Project not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Unauthorized("x"), http.StatusForbidden},
		{Validation("end_date", "x"), http.StatusUnprocessableEntity},
		{Conflict("x"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{Internal("x", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), tt.err.Error())
	}
}

func TestUserMessageHidesInternalCause(t *testing.T) {
	assert.Equal(t, "An error occurred", UserMessage(Internal("store failed", errors.New("connection refused"))))
	assert.Equal(t, "An error occurred", UserMessage(errors.New("raw")))
	assert.Equal(t, "Member already added", UserMessage(Conflict("Member already added")))
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(Validation("end_date", "End date must be after the start date"))

	assert.Equal(t, ErrorResponse{
		Error: "End date must be after the start date",
		Code:  KindValidationFailed,
		Field: "end_date",
	}, resp)
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(Conflict("x")))
	assert.False(t, IsDomain(errors.New("x")))
	assert.False(t, IsDomain(nil))
}
