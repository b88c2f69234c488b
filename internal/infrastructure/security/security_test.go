package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSysOpTokenRoundTrip(t *testing.T) {
	token, err := GenerateSysOpToken("t1", "secret")
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "secret")
	require.NoError(t, err)

	assert.True(t, IsSysOpClaims(claims))
	assert.Equal(t, "t1", claims["tenantId"])
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateSysOpToken("t1", "secret")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestGenerateULIDIsUniqueAndSortable(t *testing.T) {
	first := GenerateULID()
	second := GenerateULID()

	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
