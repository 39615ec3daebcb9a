package app

import (
	"encoding/json"
	"errors"
	"testing"

	"smartquiz-service/internal/domain"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("test payload does not parse: %v", err)
	}
	return payload
}

func TestValidateRejectsMissingQuestionList(t *testing.T) {
	for _, raw := range []string{`{}`, `{"questions": "nope"}`, `[1,2]`, `"text"`} {
		_, err := validateQuestionSet(decode(t, raw), 5)
		ve := requireValidationError(t, err)
		if ve.Kind != domain.MalformedGeneratorOutput {
			t.Fatalf("payload %s: expected malformed output, got %s", raw, ve.Kind)
		}
	}
}

func TestValidateRejectsEmptyList(t *testing.T) {
	_, err := validateQuestionSet(decode(t, `{"questions": []}`), 5)
	ve := requireValidationError(t, err)
	if ve.Kind != domain.EmptyGeneratorOutput {
		t.Fatalf("expected empty output, got %s", ve.Kind)
	}
}

func TestValidateTruncatesSurplusAndKeepsShortfall(t *testing.T) {
	surplus := decode(t, `{"questions": [`+questionJSON("q1")+`,`+questionJSON("q2")+`,`+questionJSON("q3")+`]}`)
	got, err := validateQuestionSet(surplus, 2)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(got) != 2 || got[0].Text != "q1" || got[1].Text != "q2" {
		t.Fatalf("expected first 2 questions in order, got %+v", got)
	}

	shortfall := decode(t, `{"questions": [`+questionJSON("q1")+`]}`)
	got, err = validateQuestionSet(shortfall, 10)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("shortfall must be accepted, got %d questions", len(got))
	}
}

func TestValidatePerQuestionFailuresNameTheIndex(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind domain.ValidationKind
	}{
		{
			name: "missing text",
			raw:  `{"questions": [` + questionJSON("q1") + `, {"options": {"A":"a"}, "correctAnswer":"A"}]}`,
			kind: domain.MissingQuestionText,
		},
		{
			name: "blank text",
			raw:  `{"questions": [` + questionJSON("q1") + `, {"question":"   ", "options": {"A":"a"}, "correctAnswer":"A"}]}`,
			kind: domain.MissingQuestionText,
		},
		{
			name: "missing options",
			raw:  `{"questions": [` + questionJSON("q1") + `, {"question":"q2", "correctAnswer":"A"}]}`,
			kind: domain.MissingOptions,
		},
		{
			name: "options not an object",
			raw:  `{"questions": [` + questionJSON("q1") + `, {"question":"q2", "options": ["a","b"], "correctAnswer":"A"}]}`,
			kind: domain.MissingOptions,
		},
		{
			name: "missing correct answer",
			raw:  `{"questions": [` + questionJSON("q1") + `, {"question":"q2", "options": {"A":"a"}}]}`,
			kind: domain.MissingCorrectAnswer,
		},
	}

	for _, tc := range cases {
		_, err := validateQuestionSet(decode(t, tc.raw), 5)
		ve := requireValidationError(t, err)
		if ve.Kind != tc.kind {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.kind, ve.Kind)
		}
		if ve.Index != 1 {
			t.Fatalf("%s: expected failure at index 1, got %d", tc.name, ve.Index)
		}
	}
}

func TestValidateNormalizesCorrectAnswerAndFillsOptions(t *testing.T) {
	raw := `{"questions": [{"question":"q1", "options": {"A":"alpha", "C":"gamma"}, "correctAnswer":" c "}]}`
	got, err := validateQuestionSet(decode(t, raw), 1)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	q := got[0]
	if q.CorrectAnswer != "C" {
		t.Fatalf("expected answer normalized to C, got %q", q.CorrectAnswer)
	}
	if q.Options.A != "alpha" || q.Options.B != "" || q.Options.C != "gamma" || q.Options.D != "" {
		t.Fatalf("expected missing labels coerced to empty, got %+v", q.Options)
	}
}

func requireValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return ve
}

func questionJSON(text string) string {
	return `{"question":"` + text + `", "options": {"A":"a","B":"b","C":"c","D":"d"}, "correctAnswer":"A"}`
}
