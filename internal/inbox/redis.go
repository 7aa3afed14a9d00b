package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

const inboxKeyPrefix = "inbox:item:"

// RedisInbox stores inbox items in Redis with a per-item TTL, letting the
// server expire them without any sweeper.
type RedisInbox struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisInbox creates a Redis-backed inbox from the configured URL.
func NewRedisInbox(cfg *config.Config) *RedisInbox {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisInbox{
		client: redis.NewClient(opts),
		ttl:    cfg.Inbox.TTL,
	}
}

func (r *RedisInbox) Put(ctx context.Context, item *models.InboxItem) (string, error) {
	token := newToken()
	item.Token = token
	if item.ReceivedAt.IsZero() {
		item.ReceivedAt = time.Now().UTC()
	}

	data, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("marshal inbox item: %w", err)
	}

	ttl := r.ttl
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := r.client.Set(ctx, inboxKeyPrefix+token, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("store inbox item: %w", err)
	}
	return token, nil
}

func (r *RedisInbox) Get(ctx context.Context, token string) (*models.InboxItem, error) {
	data, err := r.client.Get(ctx, inboxKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch inbox item: %w", err)
	}

	var item models.InboxItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("decode inbox item: %w", err)
	}
	return &item, nil
}

func (r *RedisInbox) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisInbox) Close() error {
	return r.client.Close()
}
