package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	id, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-123"}, id)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", []byte("secret"), -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret"))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u3"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_MissingUserID(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("", []byte("k"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
