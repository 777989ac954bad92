package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const revokedKeyPrefix = "session:revoked:"

type Service struct {
	repo      Repository
	signer    *TokenSigner
	rdb       *redis.Client
	broadcast *Broadcaster
}

func NewService(repo Repository, signer *TokenSigner, rdb *redis.Client, broadcast *Broadcaster) *Service {
	return &Service{
		repo:      repo,
		signer:    signer,
		rdb:       rdb,
		broadcast: broadcast,
	}
}

func (s *Service) SignUp(ctx context.Context, email, name, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidCredentials)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password too short", ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.CreateUser(ctx, User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (string, *Session, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token, sess, err := s.signer.Issue(u, now)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.broadcast.Publish(Event{Type: EventSignedIn, UserID: u.ID, At: now})

	return token, sess, nil
}

// Current resolves the bearer token to a session, honoring revocation. A
// revocation-store outage fails closed for safety.
func (s *Service) Current(ctx context.Context, token string) (*Session, error) {
	sess, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		revoked, err := s.rdb.Exists(ctx, revokedKeyPrefix+sess.TokenID).Result()
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return sess, nil
}

// SignOut revokes the token until its natural expiry and broadcasts the
// transition.
func (s *Service) SignOut(ctx context.Context, sess *Session) error {
	if s.rdb != nil {
		ttl := time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := s.rdb.Set(ctx, revokedKeyPrefix+sess.TokenID, "1", ttl).Err(); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	s.broadcast.Publish(Event{Type: EventSignedOut, UserID: sess.UserID, At: time.Now()})

	log.Printf("session: user %s signed out", sess.UserID)
	return nil
}
