package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"smartquiz-service/internal/domain"
	"smartquiz-service/internal/generator"
)

// Sampling parameters for the generation call. Fixed: changing them changes
// cost and output length characteristics observably.
const (
	genTemperature float32 = 0.7
	genMaxTokens           = 2000
)

// TopicRepository persists owner-scoped quiz topics. Reads must filter by
// owner; a cross-owner lookup returns domain.ErrTopicNotFound.
type TopicRepository interface {
	Create(ctx context.Context, topic domain.Topic) (domain.Topic, error)
	FindByID(ctx context.Context, topicID, ownerID string) (domain.Topic, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.TopicSummary, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	RecentByOwner(ctx context.Context, ownerID string, limit int) ([]domain.RecentTopic, error)
}

// SafeTopicSource serves answer-safe topic projections. In production this
// is the Redis-backed cache; the repo-backed fallback works without Redis.
type SafeTopicSource interface {
	GetSafeTopic(ctx context.Context, topicID, ownerID string) (domain.SafeTopic, error)
}

// TopicService contains the quiz use cases: generation, retrieval, grading
// and statistics.
type TopicService struct {
	topics TopicRepository
	safe   SafeTopicSource
	gen    generator.TextGenerator
	logger *slog.Logger
}

func NewTopicService(topics TopicRepository, safe SafeTopicSource, gen generator.TextGenerator, logger *slog.Logger) *TopicService {
	if safe == nil {
		safe = repoSafeSource{topics}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TopicService{topics: topics, safe: safe, gen: gen, logger: logger}
}

// Generate builds a prompt from the topic request, calls the external
// generator once, validates its output and persists the resulting topic.
// Nothing is written unless the whole pipeline succeeds. The returned
// projection carries no answer keys.
func (s *TopicService) Generate(ctx context.Context, ownerID, title, description string, count int) (domain.SafeTopic, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return domain.SafeTopic{}, domain.ErrTitleRequired
	}
	if count < 1 || count > maxQuestions {
		return domain.SafeTopic{}, domain.ErrInvalidQuestionCount
	}
	if s.gen == nil || !s.gen.Configured() {
		return domain.SafeTopic{}, domain.ErrGeneratorNotConfigured
	}

	prompt := generator.BuildPrompt(title, description, count)
	raw, err := s.gen.GenerateText(ctx, generator.SystemInstruction, prompt, genTemperature, genMaxTokens)
	if err != nil {
		s.logger.Error("generation call failed", "owner", ownerID, "title", title, "err", err)
		return domain.SafeTopic{}, &domain.GeneratorError{Reason: "generation call failed", Err: err}
	}

	var payload any
	if err := json.Unmarshal([]byte(generator.StripCodeFence(raw)), &payload); err != nil {
		s.logger.Warn("generator returned unparseable JSON", "owner", ownerID, "title", title)
		return domain.SafeTopic{}, &domain.ValidationError{Kind: domain.InvalidGeneratorJSON, Index: -1}
	}

	questions, err := validateQuestionSet(payload, count)
	if err != nil {
		return domain.SafeTopic{}, err
	}

	topic, err := s.topics.Create(ctx, domain.Topic{
		Title:       title,
		Description: description,
		CreatedBy:   ownerID,
		Questions:   questions,
	})
	if err != nil {
		return domain.SafeTopic{}, err
	}

	s.logger.Info("topic generated", "topic", topic.ID, "owner", ownerID, "questions", len(topic.Questions))
	return topic.Safe(), nil
}

// GetTopic returns the answer-safe projection of a topic for its owner.
func (s *TopicService) GetTopic(ctx context.Context, topicID, ownerID string) (domain.SafeTopic, error) {
	return s.safe.GetSafeTopic(ctx, topicID, ownerID)
}

// ListTopics returns the owner's topics as summaries, newest first.
func (s *TopicService) ListTopics(ctx context.Context, ownerID string) ([]domain.TopicSummary, error) {
	return s.topics.ListByOwner(ctx, ownerID)
}

// recentLimit bounds the statistics recent-topics list.
const recentLimit = 5

// Statistics returns the owner's topic count and most recent topics.
func (s *TopicService) Statistics(ctx context.Context, ownerID string) (domain.Statistics, error) {
	total, err := s.topics.CountByOwner(ctx, ownerID)
	if err != nil {
		return domain.Statistics{}, err
	}
	recent, err := s.topics.RecentByOwner(ctx, ownerID, recentLimit)
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.Statistics{TotalTopics: total, RecentTopics: recent}, nil
}

// SubmitAnswers grades a submission against the stored answer keys. Answers
// map question index (as a decimal string) to the chosen label; an absent
// index counts as unanswered, not as an error. Comparison is
// case-insensitive. The result reveals answer keys: grading implies the
// quiz is complete.
func (s *TopicService) SubmitAnswers(ctx context.Context, topicID, ownerID string, answers map[string]string) (domain.GradedResult, error) {
	if answers == nil {
		return domain.GradedResult{}, domain.ErrAnswersRequired
	}

	topic, err := s.topics.FindByID(ctx, topicID, ownerID)
	if err != nil {
		return domain.GradedResult{}, err
	}

	result := domain.GradedResult{
		Total:   len(topic.Questions),
		Results: make([]domain.QuestionResult, 0, len(topic.Questions)),
	}
	for i, q := range topic.Questions {
		correct := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		qr := domain.QuestionResult{
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: correct,
		}
		if raw, ok := answers[strconv.Itoa(i)]; ok {
			submitted := strings.ToUpper(strings.TrimSpace(raw))
			qr.UserAnswer = &submitted
			qr.IsCorrect = submitted == correct
		}
		if qr.IsCorrect {
			result.Score++
		}
		result.Results = append(result.Results, qr)
	}
	return result, nil
}

// repoSafeSource serves safe projections straight from the repository.
type repoSafeSource struct {
	topics TopicRepository
}

func (r repoSafeSource) GetSafeTopic(ctx context.Context, topicID, ownerID string) (domain.SafeTopic, error) {
	topic, err := r.topics.FindByID(ctx, topicID, ownerID)
	if err != nil {
		return domain.SafeTopic{}, err
	}
	return topic.Safe(), nil
}
