package entity

import (
	"encoding/json"
	"fmt"
)

// AnswerValue holds a question response that arrives over the wire either as
// a free-text string or as a bare boolean (legacy clients). The original
// JSON shape is preserved on marshal.
type AnswerValue struct {
	text   string
	isBool bool
	b      bool
}

func StringAnswer(s string) AnswerValue {
	return AnswerValue{text: s}
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{isBool: true, b: b}
}

func (v AnswerValue) IsBool() bool {
	return v.isBool
}

func (v AnswerValue) IsZero() bool {
	return !v.isBool && v.text == ""
}

// Render returns the human-readable form used in LLM transcripts:
// booleans as Yes/No, strings verbatim.
func (v AnswerValue) Render() string {
	if v.isBool {
		if v.b {
			return "Yes"
		}
		return "No"
	}
	return v.text
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.b)
	}
	return json.Marshal(v.text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolAnswer(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringAnswer(s)
		return nil
	}

	return fmt.Errorf("answer response must be a string or a boolean, got %s", string(data))
}
