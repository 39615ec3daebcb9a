package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartquiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// TopicRepository stores topics in Postgres with questions as JSONB.
type TopicRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRepository(pool *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{pool: pool}
}

func (r *TopicRepository) Create(ctx context.Context, topic domain.Topic) (domain.Topic, error) {
	topic.ID = uuid.NewString()
	topic.CreatedAt = time.Now().UTC()

	questions, err := json.Marshal(topic.Questions)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("marshal questions: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO topics (id, owner_id, title, description, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		topic.ID, topic.CreatedBy, topic.Title, topic.Description, questions, topic.CreatedAt)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("insert topic: %w", err)
	}
	return topic, nil
}

func (r *TopicRepository) FindByID(ctx context.Context, topicID, ownerID string) (domain.Topic, error) {
	var (
		topic domain.Topic
		raw   []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, description, questions, created_at
		 FROM topics WHERE id = $1 AND owner_id = $2`,
		topicID, ownerID,
	).Scan(&topic.ID, &topic.CreatedBy, &topic.Title, &topic.Description, &raw, &topic.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Topic{}, domain.ErrTopicNotFound
	}
	if err != nil {
		return domain.Topic{}, fmt.Errorf("find topic: %w", err)
	}
	if err := json.Unmarshal(raw, &topic.Questions); err != nil {
		return domain.Topic{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	return topic, nil
}

func (r *TopicRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.TopicSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, jsonb_array_length(questions), created_at
		 FROM topics WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	summaries := []domain.TopicSummary{}
	for rows.Next() {
		var s domain.TopicSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.QuestionCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *TopicRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM topics WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return count, nil
}

func (r *TopicRepository) RecentByOwner(ctx context.Context, ownerID string, limit int) ([]domain.RecentTopic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, created_at
		 FROM topics WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`,
		ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent topics: %w", err)
	}
	defer rows.Close()

	recent := []domain.RecentTopic{}
	for rows.Next() {
		var t domain.RecentTopic
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent topic: %w", err)
		}
		recent = append(recent, t)
	}
	return recent, rows.Err()
}
