package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"littlelemon/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinels(t *testing.T) {
	err := apperr.NotFound("menu item with ID %s not found", "abc")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "menu item with ID abc not found", apperr.Message(err))

	wrapped := fmt.Errorf("checkout: %w", apperr.Validation("cart is empty"))
	assert.True(t, errors.Is(wrapped, apperr.ErrValidation))
	assert.Equal(t, "checkout: cart is empty", apperr.Message(wrapped))
}

func TestMessageLeavesPlainErrorsAlone(t *testing.T) {
	assert.Equal(t, "database is locked", apperr.Message(errors.New("database is locked")))
}

func TestFieldErrorIsValidation(t *testing.T) {
	var err error = &apperr.FieldError{Fields: map[string]string{"price": "Field 'price' failed on the 'money' tag"}}
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var fe *apperr.FieldError
	assert.True(t, errors.As(fmt.Errorf("create: %w", err), &fe))
	assert.Contains(t, fe.Fields, "price")
}
