package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputErrorMatchesValidation(t *testing.T) {
	err := fmt.Errorf("create request: %w", NewInvalidInputError("field %s is required", "description"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "create request: field description is required", err.Error())
}

func TestHttpErrorUnwrap(t *testing.T) {
	httpErr := NewHttpError(http.StatusNotFound, "Request not found", ErrNotFound, nil)

	assert.True(t, errors.Is(httpErr, ErrNotFound))
	assert.Contains(t, httpErr.Error(), "404 Request not found")

	var target *HttpError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", httpErr), &target))
	assert.Equal(t, http.StatusNotFound, target.Code)
}
