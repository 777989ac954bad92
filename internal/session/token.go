package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenRevoked = errors.New("session token revoked")
)

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies the HS256 session tokens the dashboard
// carries as its bearer credential.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

func (s *TokenSigner) Issue(u *User, now time.Time) (string, *Session, error) {
	jti := uuid.NewString()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, &Session{
		TokenID:   jti,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenSigner) Parse(raw string) (*Session, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	sess := &Session{
		TokenID: claims.ID,
		UserID:  userID,
		Email:   claims.Email,
		Name:    claims.Name,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}

	return sess, nil
}
