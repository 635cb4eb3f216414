package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 168 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the account identity. Subject mirrors AccountID.
type Claims struct {
	AccountID string `json:"accountId"`
	jwt.StandardClaims
}

type TokenIssuer interface {
	Issue(accountID string) (string, error)
	Parse(token string) (*Claims, error)
}

// JWTIssuer signs HS256 tokens with a shared secret. Tokens are stateless and
// cannot be revoked before they expire.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, now func() time.Time) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: now}, nil
}

func (j *JWTIssuer) Issue(accountID string) (string, error) {
	now := j.now()
	claims := Claims{
		AccountID: accountID,
		StandardClaims: jwt.StandardClaims{
			Subject:   accountID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature and expiry and returns the claims.
func (j *JWTIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	// Expiry is checked here so an injected clock applies.
	if !claims.VerifyExpiresAt(j.now().Unix(), true) || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
