package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTopicNotFound covers both true absence and cross-owner access, so a
	// caller can never probe for another user's topic IDs.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrTitleRequired is returned when the topic title is empty after trimming.
	ErrTitleRequired = errors.New("please provide both title and description")
	// ErrInvalidQuestionCount is returned when the requested question count is
	// outside [1, 20].
	ErrInvalidQuestionCount = errors.New("number of questions must be between 1 and 20")
	// ErrAnswersRequired is returned when a submission carries no answers object.
	ErrAnswersRequired = errors.New("answers are required")
	// ErrGeneratorNotConfigured indicates the generation credential is missing.
	ErrGeneratorNotConfigured = errors.New("question generator is not configured")
)

// GeneratorError wraps a failure of the external question generator. These
// are recoverable from the caller's point of view: the request can simply be
// retried.
type GeneratorError struct {
	Reason string
	Err    error
}

func (e *GeneratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generator: %s: %v", e.Reason, e.Err)
	}
	return "generator: " + e.Reason
}

func (e *GeneratorError) Unwrap() error { return e.Err }

// ValidationKind identifies which rule the generator output violated.
type ValidationKind string

const (
	MalformedGeneratorOutput ValidationKind = "malformed_generator_output"
	EmptyGeneratorOutput     ValidationKind = "empty_generator_output"
	InvalidGeneratorJSON     ValidationKind = "invalid_generator_json"
	MissingQuestionText      ValidationKind = "missing_question_text"
	MissingOptions           ValidationKind = "missing_options"
	MissingCorrectAnswer     ValidationKind = "missing_correct_answer"
)

// ValidationError reports why the generator output was rejected. Index is
// the zero-based question position for the per-question kinds, -1 otherwise.
type ValidationError struct {
	Kind  ValidationKind
	Index int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MalformedGeneratorOutput:
		return "invalid response format from question generator"
	case EmptyGeneratorOutput:
		return "question generator returned no questions"
	case InvalidGeneratorJSON:
		return "failed to parse generator response, please try again"
	case MissingQuestionText:
		return fmt.Sprintf("question %d is missing its text", e.Index)
	case MissingOptions:
		return fmt.Sprintf("question %d is missing its options", e.Index)
	case MissingCorrectAnswer:
		return fmt.Sprintf("question %d is missing its correct answer", e.Index)
	}
	return "invalid generator output"
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
