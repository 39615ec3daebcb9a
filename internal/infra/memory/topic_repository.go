package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartquiz-service/internal/domain"
	"github.com/google/uuid"
)

// TopicRepository is an in-memory topic store for tests and Postgres-less
// dev setups. Records are immutable once created, so reads only ever need
// the lock for the map itself.
type TopicRepository struct {
	clock func() time.Time

	mu     sync.RWMutex
	topics map[string]domain.Topic
	seq    map[string]int // insertion order, tie-breaker for equal timestamps
	nextSq int
}

func NewTopicRepository() *TopicRepository {
	return &TopicRepository{
		clock:  time.Now,
		topics: make(map[string]domain.Topic),
		seq:    make(map[string]int),
	}
}

// NewTopicRepositoryWithClock allows deterministic timestamps in tests.
func NewTopicRepositoryWithClock(clock func() time.Time) *TopicRepository {
	r := NewTopicRepository()
	r.clock = clock
	return r
}

func (r *TopicRepository) Create(_ context.Context, topic domain.Topic) (domain.Topic, error) {
	topic.ID = uuid.NewString()
	topic.CreatedAt = r.clock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[topic.ID] = topic
	r.seq[topic.ID] = r.nextSq
	r.nextSq++
	return topic, nil
}

func (r *TopicRepository) FindByID(_ context.Context, topicID, ownerID string) (domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topic, ok := r.topics[topicID]
	if !ok || topic.CreatedBy != ownerID {
		return domain.Topic{}, domain.ErrTopicNotFound
	}
	return topic, nil
}

func (r *TopicRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.TopicSummary, error) {
	summaries := []domain.TopicSummary{}
	for _, topic := range r.ownedNewestFirst(ownerID) {
		summaries = append(summaries, domain.TopicSummary{
			ID:            topic.ID,
			Title:         topic.Title,
			Description:   topic.Description,
			QuestionCount: len(topic.Questions),
			CreatedAt:     topic.CreatedAt,
		})
	}
	return summaries, nil
}

func (r *TopicRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, topic := range r.topics {
		if topic.CreatedBy == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *TopicRepository) RecentByOwner(_ context.Context, ownerID string, limit int) ([]domain.RecentTopic, error) {
	recent := []domain.RecentTopic{}
	for _, topic := range r.ownedNewestFirst(ownerID) {
		if len(recent) == limit {
			break
		}
		recent = append(recent, domain.RecentTopic{
			ID:        topic.ID,
			Title:     topic.Title,
			CreatedAt: topic.CreatedAt,
		})
	}
	return recent, nil
}

func (r *TopicRepository) ownedNewestFirst(ownerID string) []domain.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := []domain.Topic{}
	for _, topic := range r.topics {
		if topic.CreatedBy == ownerID {
			owned = append(owned, topic)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return r.seq[owned[i].ID] > r.seq[owned[j].ID]
	})
	return owned
}
