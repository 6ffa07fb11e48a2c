package domain

import (
	"errors"
	"testing"
)

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Paris", "paris"},
		{"  PARIS  ", "paris"},
		{"\tMusical Chairs\n", "musical chairs"},
		{"ÉCOLE", "école"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeAnswer(c.in); got != c.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildQuestionsAssignsRanks(t *testing.T) {
	questions, err := BuildQuestions([]QuestionRecord{
		{Question: "Name a color", Answers: []AnswerRecord{{Text: "Red", Points: 30}, {Text: "Blue", Points: 20}}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(questions) != 1 || len(questions[0].Answers) != 2 {
		t.Fatalf("unexpected questions: %+v", questions)
	}
	for i, slot := range questions[0].Answers {
		if slot.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, slot.Rank)
		}
	}
	if back := Records(questions); back[0].Answers[1].Text != "Blue" || back[0].Answers[1].Points != 20 {
		t.Fatalf("expected records to round-trip, got %+v", back)
	}
}

func TestBuildQuestionsRejectsInvalidRecords(t *testing.T) {
	_, err := BuildQuestions([]QuestionRecord{
		{Question: "ok", Answers: []AnswerRecord{{Text: "a", Points: 1}}},
		{Question: "bad", Answers: []AnswerRecord{{Text: "b", Points: -3}}},
	})
	if !errors.Is(err, ErrInvalidPoints) {
		t.Fatalf("expected invalid points, got %v", err)
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.Index != 1 {
		t.Fatalf("expected record error at index 1, got %v", err)
	}

	if _, err := BuildQuestions([]QuestionRecord{{Question: "  "}}); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected empty prompt, got %v", err)
	}
}

func TestMatchFirstSlotWins(t *testing.T) {
	q := Question{
		Prompt: "dupes",
		Answers: []AnswerSlot{
			{Rank: 1, Text: "Cat", Points: 5},
			{Rank: 2, Text: "cat ", Points: 3},
		},
	}
	slot, ok := q.Match("CAT")
	if !ok || slot.Rank != 1 {
		t.Fatalf("expected first match rank 1, got %+v ok=%v", slot, ok)
	}
	if _, ok := q.Match(""); ok {
		t.Fatalf("expected blank guess to match nothing")
	}
	if _, ok := q.Slot(3); ok {
		t.Fatalf("expected rank 3 out of range")
	}
}
