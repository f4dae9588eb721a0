package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPasswordBcrypt(t *testing.T) {
	h := HashPassword("s3cret-pass")
	assert.True(t, VerifyPassword("s3cret-pass", h))
	assert.False(t, VerifyPassword("wrong", h))
}

func TestVerifyPasswordLegacyMD5(t *testing.T) {
	legacy := MD5Hex("oldpass")
	assert.True(t, IsLegacyMD5(legacy))
	assert.True(t, VerifyPassword("oldpass", legacy))
	assert.False(t, VerifyPassword("other", legacy))
}

func TestIsLegacyMD5RejectsBcrypt(t *testing.T) {
	assert.False(t, IsLegacyMD5(HashPassword("x")))
	assert.False(t, IsLegacyMD5("short"))
}
