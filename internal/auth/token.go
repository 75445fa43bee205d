package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ikeike55momo/schedule/internal/domain"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload the hosted auth service signs.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens.
type Verifier struct {
	secret   []byte
	audience string
}

func NewVerifier(secret, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), audience: audience}
}

// Verify parses token and returns the session it describes.
func (v *Verifier) Verify(token string) (domain.Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return domain.Session{}, fmt.Errorf("%w: audience", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return domain.Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	s := domain.Session{UserID: claims.Subject, Email: claims.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if s.TokenID == "" {
		s.TokenID = token
	}
	return s, nil
}
