package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := conflict("user already exists")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "user already exists", err.Error())

	wrapped := fmt.Errorf("signup: %w", err)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("op", nil))

	domain := notFound("user not found")
	assert.Same(t, domain, classify("op", domain))

	dup := classify("op", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))
	assert.ErrorIs(t, dup, ErrConflict)
	assert.ErrorIs(t, dup, gorm.ErrDuplicatedKey)

	cause := errors.New("disk full")
	failure := classify("create entry", cause)
	assert.ErrorIs(t, failure, ErrStorageFailure)
	assert.ErrorIs(t, failure, cause)
	assert.Equal(t, "create entry: disk full", failure.Error())
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindStorageFailure, KindOf(errors.New("boom")))
	assert.Equal(t, "invalid_input", KindInvalidInput.String())
}
