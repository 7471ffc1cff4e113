package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// QuizAnswer is one answered question as reported by the client.
type QuizAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

type QuizAssessment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	QuizData  RawJSON   `db:"quiz_data" json:"quiz_data"`
	Score     int       `db:"score" json:"score"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScoreAnswers counts the answers flagged correct.
func ScoreAnswers(answers []QuizAnswer) int {
	score := 0
	for _, a := range answers {
		if a.Correct {
			score++
		}
	}
	return score
}

// ParseAnswers decodes a submitted answers array item by item. A "correct"
// value counts when truthy (true, non-zero number, non-empty string, array or
// object). Items that are not objects are skipped; input that is not an array
// yields no answers.
func ParseAnswers(data []byte) []QuizAnswer {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return []QuizAnswer{}
	}

	answers := make([]QuizAnswer, 0, len(items))
	for _, raw := range items {
		var item map[string]interface{}
		if err := json.Unmarshal(raw, &item); err != nil || item == nil {
			continue
		}
		answers = append(answers, QuizAnswer{
			Question: answerText(item["question"]),
			Answer:   answerText(item["answer"]),
			Correct:  truthy(item["correct"]),
		})
	}
	return answers
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return false
}

func answerText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	return fmt.Sprint(v)
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return string(r), nil
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*r = append(RawJSON(nil), v...)
	case string:
		*r = RawJSON(v)
	}
	return nil
}

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}
