package domain

import "time"

// OptionSet holds the four answer choices of a question, keyed A through D.
type OptionSet struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is the full record of a quiz item, including the answer key.
// It must never be serialized to a quiz-taking client; hand out a
// SafeQuestion instead.
type Question struct {
	Text          string    `json:"question"`
	Options       OptionSet `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"` // one of A, B, C, D
}

// SafeQuestion is the answer-free projection of a Question. Keeping it a
// separate type means a handler cannot leak the answer key by accident.
type SafeQuestion struct {
	Text    string    `json:"question"`
	Options OptionSet `json:"options"`
}

// Safe strips the answer key from a question.
func (q Question) Safe() SafeQuestion {
	return SafeQuestion{Text: q.Text, Options: q.Options}
}

// Topic is a generated quiz: a titled, described, immutable question set
// owned by exactly one user.
type Topic struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"-"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SafeTopic is the answer-free projection served while a quiz is taken.
type SafeTopic struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []SafeQuestion `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Safe returns the projection of the topic with every answer key removed.
func (t Topic) Safe() SafeTopic {
	questions := make([]SafeQuestion, len(t.Questions))
	for i, q := range t.Questions {
		questions[i] = q.Safe()
	}
	return SafeTopic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Questions:   questions,
		CreatedAt:   t.CreatedAt,
	}
}

// TopicSummary is the list view of a topic; it carries no questions.
type TopicSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecentTopic is the compact shape used by the statistics view.
type RecentTopic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Statistics summarizes a user's generated topics.
type Statistics struct {
	TotalTopics  int           `json:"totalTopics"`
	RecentTopics []RecentTopic `json:"recentTopics"`
}

// QuestionResult is the graded outcome for a single question. UserAnswer is
// nil when the question was left unanswered.
type QuestionResult struct {
	Question      string    `json:"question"`
	Options       OptionSet `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	UserAnswer    *string   `json:"userAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
}

// GradedResult is computed per submission and never persisted. This is the
// one projection that is allowed to reveal answer keys.
type GradedResult struct {
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Results []QuestionResult `json:"results"`
}
