package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CommentCache keeps serialized comment pages in Redis so repeat views of a
// chapter's first pages skip the database. Every comment mutation for a
// chapter invalidates all of that chapter's cached pages; the next read
// refetches. The cache is an accelerator only, never the source of truth.
type CommentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCommentCache(addr, password string, ttl time.Duration) (*CommentCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CommentCache{client: rdb, ttl: ttl}, nil
}

func pageKey(chapterID int64, sort string, page int) string {
	return fmt.Sprintf("comments:chapter:%d:sort:%s:page:%d", chapterID, sort, page)
}

// GetPage returns the cached payload for a chapter page, or found=false.
func (c *CommentCache) GetPage(ctx context.Context, chapterID int64, sort string, page int) ([]byte, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, pageKey(chapterID, sort, page)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SetPage stores a serialized page with the configured TTL.
func (c *CommentCache) SetPage(ctx context.Context, chapterID int64, sort string, page int, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, pageKey(chapterID, sort, page), payload, c.ttl).Err()
}

// InvalidateChapter drops every cached page for the chapter.
func (c *CommentCache) InvalidateChapter(ctx context.Context, chapterID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	pattern := fmt.Sprintf("comments:chapter:%d:*", chapterID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying Redis connection.
func (c *CommentCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
