package gemini

import (
	"encoding/json"
	"strings"
)

// questionSchema is the JSON object the prompt instructs the model to return.
type questionSchema struct {
	// Question is the prompt text shown to the user
	Question string `json:"question"`

	// Code is the self-contained PSeInt fragment the question is about
	Code string `json:"code"`

	// Answers are the selectable options
	Answers answerList `json:"answers"`

	// CorrectAnswer must match one of the options verbatim
	CorrectAnswer string `json:"correct_answer"`

	// Explanation is shown after answering
	Explanation string `json:"explanation"`
}

// answerList decodes the answers field whether the model emitted a proper
// JSON array or a single comma-joined string. Models occasionally do the
// latter despite the prompt.
type answerList []string

func (a *answerList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*a = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}

	parts := strings.Split(asString, ",")
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			answers = append(answers, trimmed)
		}
	}
	*a = answers
	return nil
}
