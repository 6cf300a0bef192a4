package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.Error(t, VerifyPassword(hash, "wrong horse"))
}

func TestCheckPassword(t *testing.T) {
	assert.Empty(t, CheckPassword("s3cure-enough", "alice"))

	assert.Len(t, CheckPassword("short1", "alice"), 1)
	assert.Contains(t, CheckPassword("12345678", "alice"), "This password is entirely numeric.")
	assert.Contains(t, CheckPassword("12345678", "alice"), "This password is too common.")
	assert.Contains(t, CheckPassword("alicealice", "alice"), "The password is too similar to the username.")
	assert.Contains(t, CheckPassword("Bobsleigh", "bob"), "The password is too similar to the username.")
}

func TestBurnPasswordCheck(t *testing.T) {
	assert.NotPanics(t, func() { BurnPasswordCheck("anything") })
}
