package generator

import (
	"fmt"
	"strings"
)

// SystemInstruction constrains the model to raw JSON output.
const SystemInstruction = "You are a helpful assistant that generates educational multiple choice questions. Always return valid JSON format only."

// BuildPrompt renders the deterministic generation prompt for a topic. The
// exact-count instruction and the embedded schema keep the model output
// parseable; models still wrap it in code fences often enough that the
// caller must run StripCodeFence on the response.
func BuildPrompt(title, description string, count int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate exactly %d multiple choice questions (MCQ) based on the following topic:\n\n", count)
	fmt.Fprintf(&sb, "Topic Title: %s\n", title)
	fmt.Fprintf(&sb, "Topic Description: %s\n\n", description)

	sb.WriteString("Requirements:\n")
	fmt.Fprintf(&sb, "- Generate exactly %d questions\n", count)
	sb.WriteString("- Each question should have 4 options labeled A, B, C, and D\n")
	sb.WriteString("- Each question should have one correct answer (A, B, C, or D)\n")
	sb.WriteString("- Questions should be well-formatted and educational\n")
	sb.WriteString("- Return the response in the following JSON format:\n")
	sb.WriteString(`{
  "questions": [
    {
      "question": "Question text here?",
      "options": {
        "A": "Option A text",
        "B": "Option B text",
        "C": "Option C text",
        "D": "Option D text"
      },
      "correctAnswer": "A"
    }
  ]
}
`)
	sb.WriteString("\nReturn ONLY valid JSON, no additional text or markdown formatting.")

	return sb.String()
}

// StripCodeFence removes a surrounding markdown code fence, with or without
// a language tag, from the raw model output. Unfenced input is returned
// trimmed and otherwise untouched.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line (``` or ```json).
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
