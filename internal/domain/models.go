package domain

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// AnswerSlot is one ranked answer of a question.
type AnswerSlot struct {
	Rank   int    `json:"rank"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// Question models a survey question with its ranked answers.
// Answers are stored in rank order and never reordered.
type Question struct {
	Prompt  string       `json:"prompt"`
	Answers []AnswerSlot `json:"answers"`
}

// Slot returns the answer with the given rank.
func (q Question) Slot(rank int) (AnswerSlot, bool) {
	if rank < 1 || rank > len(q.Answers) {
		return AnswerSlot{}, false
	}
	return q.Answers[rank-1], true
}

// Match returns the first answer (in rank order) whose normalized text equals the normalized guess.
func (q Question) Match(guess string) (AnswerSlot, bool) {
	normalized := NormalizeAnswer(guess)
	if normalized == "" {
		return AnswerSlot{}, false
	}
	return lo.Find(q.Answers, func(slot AnswerSlot) bool {
		return NormalizeAnswer(slot.Text) == normalized
	})
}

// AnswerRecord is the on-disk shape of a single answer.
type AnswerRecord struct {
	Text   string `json:"text" yaml:"text"`
	Points int    `json:"points" yaml:"points"`
}

// QuestionRecord is the on-disk shape of a question, shared by every question source.
type QuestionRecord struct {
	Question string         `json:"question" yaml:"question"`
	Answers  []AnswerRecord `json:"answers" yaml:"answers"`
}

// BuildQuestions converts source records into questions, assigning 1-based ranks in source order.
func BuildQuestions(records []QuestionRecord) ([]Question, error) {
	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Question) == "" {
			return nil, &RecordError{Index: i, Err: ErrEmptyPrompt}
		}
		for _, ans := range rec.Answers {
			if ans.Points < 0 {
				return nil, &RecordError{Index: i, Err: ErrInvalidPoints}
			}
		}
		questions = append(questions, Question{
			Prompt: rec.Question,
			Answers: lo.Map(rec.Answers, func(ans AnswerRecord, idx int) AnswerSlot {
				return AnswerSlot{Rank: idx + 1, Text: ans.Text, Points: ans.Points}
			}),
		})
	}
	return questions, nil
}

// Records converts questions back into their source shape (used when importing into Postgres).
func Records(questions []Question) []QuestionRecord {
	return lo.Map(questions, func(q Question, _ int) QuestionRecord {
		return QuestionRecord{
			Question: q.Prompt,
			Answers: lo.Map(q.Answers, func(slot AnswerSlot, _ int) AnswerRecord {
				return AnswerRecord{Text: slot.Text, Points: slot.Points}
			}),
		}
	})
}

// NormalizeAnswer trims surrounding whitespace and case-folds s.
// Guesses and stored answer text go through the same function before comparison.
func NormalizeAnswer(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
