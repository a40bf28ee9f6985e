package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned by stores for unknown or expired keys.
var ErrNotFound = errors.New("not found")

const (
	meetLinkKeyPrefix = "consultation:"
	subscribersKey    = "newsletter:subscribers"
)

// MeetLinkStore keeps the conference link of a booking so it can be
// fetched again after the confirmation screen is gone.
type MeetLinkStore interface {
	Save(ctx context.Context, bookingID, link string) error
	Get(ctx context.Context, bookingID string) (string, error)
}

// SubscriberStore records newsletter addresses. Add reports whether the
// address was new.
type SubscriberStore interface {
	Add(ctx context.Context, email string) (bool, error)
	Remove(ctx context.Context, email string) error
}

type RedisMeetLinkStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMeetLinkStore(client *redis.Client, ttl time.Duration) *RedisMeetLinkStore {
	return &RedisMeetLinkStore{client: client, ttl: ttl}
}

func (s *RedisMeetLinkStore) Save(ctx context.Context, bookingID, link string) error {
	if err := s.client.Set(ctx, meetLinkKeyPrefix+bookingID, link, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache meet link for %s: %w", bookingID, err)
	}
	return nil
}

func (s *RedisMeetLinkStore) Get(ctx context.Context, bookingID string) (string, error) {
	link, err := s.client.Get(ctx, meetLinkKeyPrefix+bookingID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read meet link for %s: %w", bookingID, err)
	}
	return link, nil
}

type RedisSubscriberStore struct {
	client *redis.Client
}

func NewRedisSubscriberStore(client *redis.Client) *RedisSubscriberStore {
	return &RedisSubscriberStore{client: client}
}

// Add normalises the address to lower case so repeated signups with a
// different capitalisation are recognised.
func (s *RedisSubscriberStore) Add(ctx context.Context, email string) (bool, error) {
	n, err := s.client.SAdd(ctx, subscribersKey, normalizeEmail(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to store subscriber: %w", err)
	}
	return n == 1, nil
}

func (s *RedisSubscriberStore) Remove(ctx context.Context, email string) error {
	if err := s.client.SRem(ctx, subscribersKey, normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to remove subscriber: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
