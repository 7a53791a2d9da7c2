package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Article bodies change rarely once published; the feed and
// like counts churn, so they expire fast.
const (
	TTLArticle  = 10 * time.Minute
	TTLFeed     = 30 * time.Second
	TTLAuthor   = 5 * time.Minute
	TTLComments = 1 * time.Minute
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixArticle  = "article:"
	PrefixFeed     = "feed:"
	PrefixAuthor   = "author:"
	PrefixComments = "comments:"
)

// Service is the Redis cache facade. Every method tolerates a nil client
// so the API keeps serving when Redis is down.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetArticle(ctx context.Context, slug string) ([]byte, error)
	SetArticle(ctx context.Context, slug string, data interface{}) error
	InvalidateArticle(ctx context.Context, slug string) error

	GetFeed(ctx context.Context, page, limit int) ([]byte, error)
	SetFeed(ctx context.Context, page, limit int, data interface{}) error
	InvalidateFeed(ctx context.Context) error

	GetComments(ctx context.Context, articleID uint64) ([]byte, error)
	SetComments(ctx context.Context, articleID uint64, data interface{}) error
	InvalidateComments(ctx context.Context, articleID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates the cache service. client may be nil.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) articleKey(slug string) string {
	return PrefixArticle + slug
}

func (c *redisCache) GetArticle(ctx context.Context, slug string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.articleKey(slug)).Bytes()
}

func (c *redisCache) SetArticle(ctx context.Context, slug string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.articleKey(slug), jsonData, TTLArticle).Err()
}

func (c *redisCache) InvalidateArticle(ctx context.Context, slug string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.articleKey(slug)).Err()
}

func (c *redisCache) feedKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", PrefixFeed, page, limit)
}

func (c *redisCache) GetFeed(ctx context.Context, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.feedKey(page, limit)).Bytes()
}

func (c *redisCache) SetFeed(ctx context.Context, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.feedKey(page, limit), jsonData, TTLFeed).Err()
}

// InvalidateFeed drops every cached feed page.
func (c *redisCache) InvalidateFeed(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixFeed+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) commentsKey(articleID uint64) string {
	return fmt.Sprintf("%s%d", PrefixComments, articleID)
}

func (c *redisCache) GetComments(ctx context.Context, articleID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.commentsKey(articleID)).Bytes()
}

func (c *redisCache) SetComments(ctx context.Context, articleID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.commentsKey(articleID), jsonData, TTLComments).Err()
}

func (c *redisCache) InvalidateComments(ctx context.Context, articleID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.commentsKey(articleID)).Err()
}
