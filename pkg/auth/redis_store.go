package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/crypto"
	"github.com/justresults/hirepay-console/pkg/logging"
	"github.com/justresults/hirepay-console/pkg/retry"
)

// RedisKeyPrefix namespaces session keys in a shared Redis.
const RedisKeyPrefix = "hirepay:session:"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// OpenRedis connects to Redis and verifies the connection with a ping. A Redis that is
// still starting is retried with backoff (retryCfg nil means retry.DefaultConfig).
func OpenRedis(ctx context.Context, opts RedisOptions, retryCfg *retry.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	err := retry.Do(ctx, retryCfg, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}, func(attempt int, err error) {
		logger.Warn("Redis not reachable, retrying",
			zap.String("addr", opts.Addr),
			zap.Int("attempt", attempt),
			zap.String("error", logging.SanitizeError(err)))
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisTokenStore keeps tokens in Redis, sealed with AES-GCM. The browser cookie
// carries only a random session id.
type RedisTokenStore struct {
	client  *redis.Client
	sealer  *crypto.TokenSealer
	cookies *sessions.CookieStore
	ttl     time.Duration
	logger  *zap.Logger
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewRedisTokenStore creates a Redis-backed token store. Entries expire after ttl.
func NewRedisTokenStore(client *redis.Client, sealer *crypto.TokenSealer, cookies *sessions.CookieStore, ttl time.Duration, logger *zap.Logger) *RedisTokenStore {
	return &RedisTokenStore{
		client:  client,
		sealer:  sealer,
		cookies: cookies,
		ttl:     ttl,
		logger:  logger.Named("redis_session"),
	}
}

func (s *RedisTokenStore) Kind() string { return "redis" }

func (s *RedisTokenStore) key(sessionID string) string {
	return RedisKeyPrefix + sessionID
}

// Load returns the token for the cookie's session id. An expired entry reads as no session.
func (s *RedisTokenStore) Load(r *http.Request) (string, error) {
	sessionID, err := s.sessionID(r)
	if err != nil || sessionID == "" {
		return "", err
	}

	sealed, err := s.client.Get(r.Context(), s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	token, err := s.sealer.Open(sealed, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to unseal session token: %w", err)
	}
	return token, nil
}

// Save stores the token under a new session id and sets the id cookie.
// Any previous entry for this browser is removed first.
func (s *RedisTokenStore) Save(w http.ResponseWriter, r *http.Request, token string) error {
	if previous, _ := s.sessionID(r); previous != "" {
		// A stale entry left behind still expires with its TTL.
		if err := s.client.Del(r.Context(), s.key(previous)).Err(); err != nil {
			s.logger.Warn("Failed to remove previous session",
				zap.String("error", logging.SanitizeError(err)))
		}
	}

	sessionID := uuid.NewString()
	sealed, err := s.sealer.Seal(token, sessionID)
	if err != nil {
		return fmt.Errorf("failed to seal session token: %w", err)
	}

	if err := s.client.Set(r.Context(), s.key(sessionID), sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	session := newSession(s.cookies)
	session.Values[sessionKeySessionID] = sessionID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session cookie: %w", err)
	}
	return nil
}

// Clear deletes the Redis entry and expires the cookie.
func (s *RedisTokenStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if sessionID, _ := s.sessionID(r); sessionID != "" {
		if err := s.client.Del(r.Context(), s.key(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	return expireSession(s.cookies, w, r)
}

func (s *RedisTokenStore) sessionID(r *http.Request) (string, error) {
	session, err := s.cookies.Get(r, SessionName)
	if err != nil {
		return "", fmt.Errorf("failed to read session cookie: %w", err)
	}
	sessionID, _ := session.Values[sessionKeySessionID].(string)
	return sessionID, nil
}
