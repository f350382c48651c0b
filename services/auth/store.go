package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"innroutes/models"
	"innroutes/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore holds the transient state of the auth flow: the single
// live OTP session per device and, in provider mode, the provider access
// token per user. Semantics are last-write-wins with no transactional
// guarantee.
type SessionStore interface {
	SaveOTP(ctx context.Context, deviceID string, session models.OTPSession) error
	// GetOTP returns (nil, nil) when no live session exists.
	GetOTP(ctx context.Context, deviceID string) (*models.OTPSession, error)
	DeleteOTP(ctx context.Context, deviceID string) error

	SaveProviderToken(ctx context.Context, userID, token string) error
	// GetProviderToken returns "" when no token is cached.
	GetProviderToken(ctx context.Context, userID string) (string, error)
	DeleteProviderToken(ctx context.Context, userID string) error
}

// RedisSessionStore is the production SessionStore. OTP keys are written
// with a TTL of twice the logical expiry so a late verify can still
// distinguish an expired code from a missing session.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps a redis client as a SessionStore.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func otpKey(deviceID string) string {
	return utils.OTPSessionPrefix + deviceID
}

func providerTokenKey(userID string) string {
	return "providerToken:" + userID
}

func (s *RedisSessionStore) SaveOTP(ctx context.Context, deviceID string, session models.OTPSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode OTP session: %w", err)
	}
	if err := s.client.Set(ctx, otpKey(deviceID), data, 2*utils.OTPSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store OTP session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) GetOTP(ctx context.Context, deviceID string) (*models.OTPSession, error) {
	data, err := s.client.Get(ctx, otpKey(deviceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read OTP session: %w", err)
	}
	var session models.OTPSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode OTP session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) DeleteOTP(ctx context.Context, deviceID string) error {
	return s.client.Del(ctx, otpKey(deviceID)).Err()
}

func (s *RedisSessionStore) SaveProviderToken(ctx context.Context, userID, token string) error {
	return s.client.Set(ctx, providerTokenKey(userID), token, utils.TokenTTL).Err()
}

func (s *RedisSessionStore) GetProviderToken(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, providerTokenKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read provider token: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStore) DeleteProviderToken(ctx context.Context, userID string) error {
	return s.client.Del(ctx, providerTokenKey(userID)).Err()
}

// MemorySessionStore is an in-process SessionStore for tests and
// redis-less development environments.
type MemorySessionStore struct {
	mu     sync.Mutex
	otps   map[string]models.OTPSession
	otpTTL map[string]time.Time
	tokens map[string]string
	now    func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		otps:   make(map[string]models.OTPSession),
		otpTTL: make(map[string]time.Time),
		tokens: make(map[string]string),
		now:    time.Now,
	}
}

func (s *MemorySessionStore) SaveOTP(ctx context.Context, deviceID string, session models.OTPSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[deviceID] = session
	s.otpTTL[deviceID] = s.now().Add(2 * utils.OTPSessionTTL)
	return nil
}

func (s *MemorySessionStore) GetOTP(ctx context.Context, deviceID string) (*models.OTPSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.otps[deviceID]
	if !ok {
		return nil, nil
	}
	if s.now().After(s.otpTTL[deviceID]) {
		delete(s.otps, deviceID)
		delete(s.otpTTL, deviceID)
		return nil, nil
	}
	return &session, nil
}

func (s *MemorySessionStore) DeleteOTP(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, deviceID)
	delete(s.otpTTL, deviceID)
	return nil
}

func (s *MemorySessionStore) SaveProviderToken(ctx context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *MemorySessionStore) GetProviderToken(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userID], nil
}

func (s *MemorySessionStore) DeleteProviderToken(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}
