package memory

import (
	"context"
	"sync"

	"feud-board-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches questions from a backing source (file, Postgres, ...).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionRepository loads questions once and serves the same slice afterwards.
type QuestionRepository struct {
	loader QuestionLoader
	sf     singleflight.Group

	mu        sync.RWMutex
	loaded    bool
	questions []domain.Question
}

func NewQuestionRepository(loader QuestionLoader) *QuestionRepository {
	return &QuestionRepository{loader: loader}
}

func (r *QuestionRepository) Questions(ctx context.Context) ([]domain.Question, error) {
	r.mu.RLock()
	if r.loaded {
		defer r.mu.RUnlock()
		return r.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("questions", func() (interface{}, error) {
		r.mu.RLock()
		if r.loaded {
			defer r.mu.RUnlock()
			return r.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.questions = questions
		r.loaded = true
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// StaticQuestionLoader is a simple loader backed by a fixed slice (useful for tests/demos).
type StaticQuestionLoader struct {
	questions []domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	return l.questions, nil
}
