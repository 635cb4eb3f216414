package credentials

import (
	"testing"
	"time"

	"portfolio/testutil"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", digest)
	assert.True(t, h.Verify("pw123", digest))
	assert.False(t, h.Verify("pw124", digest))
	assert.False(t, h.Verify("pw123", "not-a-hash"))

	again, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "hashes are salted")
}

func TestNewBcryptHasher_UsesDefaultCost(t *testing.T) {
	digest, err := NewBcryptHasher().Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer("secret", 0, clock.Now)
	require.NoError(t, err)

	token, err := issuer.Issue("acc-1")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, int64(168*3600), claims.ExpiresAt-claims.IssuedAt)

	clock.Advance(167 * time.Hour)
	_, err = issuer.Parse(token)
	assert.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsForeignTokens(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour, nil)
	require.NoError(t, err)
	other, err := NewJWTIssuer("other-secret", time.Hour, nil)
	require.NoError(t, err)

	forged, err := other.Issue("acc-1")
	require.NoError(t, err)
	_, err = issuer.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"accountId": "acc-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("", time.Hour, nil)
	assert.Error(t, err)
}
