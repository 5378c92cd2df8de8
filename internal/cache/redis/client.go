package redis

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/pkg/logger"
)

// Client caches generated replies so repeated questions skip the
// retrieval chain (and any remote calls) entirely. A nil *Client is
// valid and disables caching.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// ReplyKey builds the cache key from the normalized English query, the
// routed department, and the output language.
func ReplyKey(queryEN, dept, lang string) string {
	sum := md5.Sum([]byte(queryEN + "|" + dept + "|" + lang))
	return fmt.Sprintf("%x", sum)
}

func (c *Client) SetReply(ctx context.Context, key string, reply interface{}) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	if err := c.client.Set(ctx, "reply:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set reply cache: %w", err)
	}

	logger.Debug("Reply cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *Client) GetReply(ctx context.Context, key string, reply interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, "reply:"+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get reply cache: %w", err)
	}

	if err := json.Unmarshal(data, reply); err != nil {
		return false, fmt.Errorf("failed to unmarshal reply: %w", err)
	}

	logger.Debug("Reply cache hit", zap.String("key", key))
	return true, nil
}

// InvalidateReplies flushes all cached replies. Called when an admin
// edits the FAQ set so stale answers never outlive the content they
// were built from.
func (c *Client) InvalidateReplies(ctx context.Context) error {
	if c == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, "reply:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.Error(err))
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate cache keys: %w", err)
	}

	logger.Info("Reply cache invalidated")
	return nil
}
