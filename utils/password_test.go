package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p4ssword")
	require.NoError(t, err)
	assert.NotEqual(t, "p4ssword", hash)

	assert.True(t, CheckPassword(hash, "p4ssword"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("p4ssword", "p4ssword"), "plaintext is never a valid hash")
}
