package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"feud-board-service/internal/domain"
)

const sampleJSON = `[
  {"question": "Name a capital city", "answers": [{"text": "Paris", "points": 10}, {"text": "London", "points": 8}]},
  {"question": "Name a fruit", "answers": [{"text": "Apple", "points": 12}]}
]`

const sampleYAML = `
- question: Name a capital city
  answers:
    - text: Paris
      points: 10
    - text: London
      points: 8
`

func TestLoadJSONQuestions(t *testing.T) {
	path := writeFile(t, "questions.json", sampleJSON)

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	second := questions[0].Answers[1]
	if second.Rank != 2 || second.Text != "London" || second.Points != 8 {
		t.Fatalf("unexpected second answer: %+v", second)
	}
}

func TestLoadYAMLQuestions(t *testing.T) {
	path := writeFile(t, "questions.yml", sampleYAML)

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 1 || questions[0].Answers[0].Text != "Paris" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
	if questions == nil || len(questions) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", questions)
	}
}

func TestMalformedFileFails(t *testing.T) {
	path := writeFile(t, "questions.json", `[{"question": "x", "answers": [`)

	if _, err := NewQuestionLoader(path).LoadQuestions(context.Background()); err == nil {
		t.Fatalf("expected malformed file error")
	}
}

func TestInvalidRecordFails(t *testing.T) {
	path := writeFile(t, "questions.json", `[{"question": "x", "answers": [{"text": "a", "points": -1}]}]`)

	_, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if !errors.Is(err, domain.ErrInvalidPoints) {
		t.Fatalf("expected invalid points, got %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
