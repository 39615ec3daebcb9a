package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"smartquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// TopicSource loads the full topic record from the backing store.
type TopicSource interface {
	FindByID(ctx context.Context, topicID, ownerID string) (domain.Topic, error)
}

// SafeTopicCache caches answer-safe topic projections in Redis and falls
// back to the repository on miss. Only the stripped projection is ever
// written to Redis, so the cache cannot leak answer keys; grading reads the
// full record from the repository directly.
type SafeTopicCache struct {
	client *redis.Client
	source TopicSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewSafeTopicCache(client *redis.Client, source TopicSource, ttl time.Duration) *SafeTopicCache {
	return &SafeTopicCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *SafeTopicCache) GetSafeTopic(ctx context.Context, topicID, ownerID string) (domain.SafeTopic, error) {
	key := c.key(topicID, ownerID)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var topic domain.SafeTopic
		if err := json.Unmarshal(cached, &topic); err == nil {
			return topic, nil
		}
		// Unreadable entry: fall through and rebuild it.
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var topic domain.SafeTopic
			if err := json.Unmarshal(cached, &topic); err == nil {
				return topic, nil
			}
		}

		full, err := c.source.FindByID(ctx, topicID, ownerID)
		if err != nil {
			return domain.SafeTopic{}, err
		}
		safe := full.Safe()

		if payload, err := json.Marshal(safe); err == nil {
			_ = c.client.Set(ctx, key, payload, c.ttlWithJitter()).Err()
		}
		return safe, nil
	})
	if err != nil {
		return domain.SafeTopic{}, err
	}
	return result.(domain.SafeTopic), nil
}

// key scopes the cache entry by owner so a hit can never cross users.
func (c *SafeTopicCache) key(topicID, ownerID string) string {
	return fmt.Sprintf("topic:%s:%s:safe", ownerID, topicID)
}

func (c *SafeTopicCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
