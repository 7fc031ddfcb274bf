package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/redis/go-redis/v9"
)

// stateTTL expires conversation steps and date selections of idle chats
const stateTTL = 24 * time.Hour

// RedisManager keeps chat state in Redis so it survives restarts
type RedisManager struct {
	client *redis.Client
}

var _ StateManager = (*RedisManager)(nil)

// NewRedisManager connects and pings the configured server
func NewRedisManager(ctx context.Context, cfg config.RedisConfig) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(chatID int64) string { return fmt.Sprintf("chat:%d:state", chatID) }
func authKey(chatID int64) string  { return fmt.Sprintf("chat:%d:auth", chatID) }
func dateKey(chatID int64) string  { return fmt.Sprintf("chat:%d:date", chatID) }

// SetUserState sets the state for a chat with TTL. None clears it.
func (m *RedisManager) SetUserState(ctx context.Context, chatID int64, state string) error {
	if state == None {
		return m.client.Del(ctx, stateKey(chatID)).Err()
	}
	return m.client.Set(ctx, stateKey(chatID), state, stateTTL).Err()
}

// GetUserState gets the state for a chat
func (m *RedisManager) GetUserState(ctx context.Context, chatID int64) (string, error) {
	val, err := m.client.Get(ctx, stateKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return None, nil
	}
	if err != nil {
		return None, err
	}
	return val, nil
}

// Authorize marks the chat as logged in until ttl passes
func (m *RedisManager) Authorize(ctx context.Context, chatID int64, ttl time.Duration) error {
	return m.client.Set(ctx, authKey(chatID), "1", ttl).Err()
}

func (m *RedisManager) IsAuthorized(ctx context.Context, chatID int64) (bool, error) {
	n, err := m.client.Exists(ctx, authKey(chatID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (m *RedisManager) Revoke(ctx context.Context, chatID int64) error {
	return m.client.Del(ctx, authKey(chatID)).Err()
}

func (m *RedisManager) SetSelectedDate(ctx context.Context, chatID int64, date domain.Date) error {
	return m.client.Set(ctx, dateKey(chatID), date.String(), stateTTL).Err()
}

func (m *RedisManager) SelectedDate(ctx context.Context, chatID int64) (domain.Date, bool, error) {
	val, err := m.client.Get(ctx, dateKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Date{}, false, nil
	}
	if err != nil {
		return domain.Date{}, false, err
	}
	d, err := domain.ParseDate(val)
	if err != nil {
		return domain.Date{}, false, err
	}
	return d, true, nil
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
