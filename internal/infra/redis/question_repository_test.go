package redis

import (
	"context"
	"testing"
	"time"

	"feud-board-service/internal/domain"
	"feud-board-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(sampleQuestions())}
	repo := NewQuestionRepository(client, loader, "default", time.Minute)

	questions, err := repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 1 || loader.calls != 1 {
		t.Fatalf("expected one question from one load, got %d questions, %d calls", len(questions), loader.calls)
	}
	if !mr.Exists("questions:default") {
		t.Fatalf("expected question set cached in redis")
	}

	// The next process start for the same stored set reads the cache instead of the database.
	other := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(nil)}
	cached, err := NewQuestionRepository(client, other, "default", time.Minute).Questions(context.Background())
	if err != nil {
		t.Fatalf("cached questions: %v", err)
	}
	if other.calls != 0 {
		t.Fatalf("expected cache hit, loader calls=%d", other.calls)
	}
	if len(cached) != 1 || cached[0].Answers[1].Rank != 2 || cached[0].Answers[1].Text != "London" {
		t.Fatalf("expected ranks rebuilt from cache, got %+v", cached)
	}
}

func TestQuestionRepositoryKeepsFirstResult(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(sampleQuestions())}
	repo := NewQuestionRepository(newClient(mr), loader, "default", time.Minute)

	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}
	mr.FlushAll()
	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions again: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected in-process result reused, loader calls=%d", loader.calls)
	}
}

func TestQuestionRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("questions:default", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(sampleQuestions())}
	questions, err := NewQuestionRepository(newClient(mr), loader, "default", time.Minute).Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if loader.calls != 1 || len(questions) != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Prompt: "Name a capital city",
			Answers: []domain.AnswerSlot{
				{Rank: 1, Text: "Paris", Points: 10},
				{Rank: 2, Text: "London", Points: 8},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
