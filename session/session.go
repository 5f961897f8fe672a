package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"adminconsole/apiclient"
	"adminconsole/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ContextKey is where the auth middleware leaves the current *Session.
const ContextKey = "session"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrMissingLogin = errors.New("missing-email-or-password")
)

// Session is what a logged-in console user carries between requests.
// UpstreamToken authenticates that user's calls to the remote API.
type Session struct {
	Id            string      `json:"id"`
	User          models.User `json:"user"`
	UpstreamToken string      `json:"upstream_token"`
	CreatedAt     time.Time   `json:"created_at"`
	ExpiresAt     time.Time   `json:"expires_at"`
}

type claims struct {
	SessionId string `json:"session-id"`
	jwt.StandardClaims
}

// Authenticator is the upstream login call.
type Authenticator interface {
	Login(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error)
}

// Service replaces ad hoc token and role reads with one login/logout/current contract.
// Sessions live in redis under session:<id>; auth:<user id> points at the user's
// current session so a new login evicts the old one.
type Service struct {
	Redis *redis.Client
	Auth  Authenticator
	Key   []byte
	TTL   time.Duration
	Log   *zap.Logger
}

func NewService(rdb *redis.Client, auth Authenticator, key []byte, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Redis: rdb, Auth: auth, Key: key, TTL: ttl, Log: log}
}

// Login authenticates upstream and returns the session with its signed token.
func (s *Service) Login(ctx context.Context, req models.AuthRequest) (*Session, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", ErrMissingLogin
	}

	resp, err := s.Auth.Login(ctx, req)
	if err != nil {
		return nil, "", err
	}

	authKey := "auth:" + resp.User.Id.String()
	old, err := s.Redis.Get(ctx, authKey).Result()
	if err != nil && err != redis.Nil {
		return nil, "", err
	}
	if old != "" {
		s.Log.Info("removing old session", zap.String("user", resp.User.Id.String()))
		if err := s.Redis.Del(ctx, "session:"+old).Err(); err != nil {
			return nil, "", err
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	sess := &Session{
		Id:            id.String(),
		User:          resp.User,
		UpstreamToken: resp.Token,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.TTL),
	}

	token, err := s.sign(sess)
	if err != nil {
		return nil, "", err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, "", err
	}

	if err := s.Redis.Set(ctx, "session:"+sess.Id, string(payload), s.TTL).Err(); err != nil {
		return nil, "", err
	}

	if err := s.Redis.Set(ctx, authKey, sess.Id, s.TTL).Err(); err != nil {
		return nil, "", err
	}

	return sess, "Bearer " + token, nil
}

// Current resolves a bearer token to its live session.
func (s *Service) Current(ctx context.Context, token string) (*Session, error) {
	id, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	payload, err := s.Redis.Get(ctx, "session:"+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	return &sess, nil
}

func (s *Service) Logout(ctx context.Context, sess *Session) error {
	if err := s.Redis.Del(ctx, "session:"+sess.Id).Err(); err != nil {
		return err
	}
	return s.Redis.Del(ctx, "auth:"+sess.User.Id.String()).Err()
}

func (s *Service) sign(sess *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionId: sess.Id,
		StandardClaims: jwt.StandardClaims{
			Subject:   sess.User.Id.String(),
			IssuedAt:  sess.CreatedAt.Unix(),
			ExpiresAt: sess.ExpiresAt.Unix(),
		},
	})
	return token.SignedString(s.Key)
}

func (s *Service) parse(token string) (string, error) {
	if !strings.HasPrefix(token, "Bearer ") {
		return "", ErrUnauthorized
	}
	tokenString := strings.TrimPrefix(token, "Bearer ")

	var c claims
	parsed, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Key, nil
	})
	if err != nil || !parsed.Valid || c.SessionId == "" {
		return "", ErrUnauthorized
	}

	return c.SessionId, nil
}

var _ Authenticator = (*apiclient.Client)(nil)
