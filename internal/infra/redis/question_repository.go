package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"feud-board-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches questions from a backing source (file, Postgres, ...).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionRepository caches the question list in Redis and falls back to a loader on cache miss.
// The list is stored as JSON records under: questions:{setID}
// Only id-keyed sources such as a Postgres set belong behind it; the cache never rechecks the loader.
// Within one process the first result is kept, so the list never changes under a running board.
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	setID  string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	loaded    bool
	questions []domain.Question
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, setID string, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		setID:  setID,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) Questions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := r.memoized(); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(r.setID, func() (interface{}, error) {
		if questions, ok := r.memoized(); ok {
			return questions, nil
		}

		questions, ok := r.fromCache(ctx)
		if !ok {
			var err error
			questions, err = r.loader.LoadQuestions(ctx)
			if err != nil {
				return nil, err
			}
			r.store(ctx, questions)
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

func (r *QuestionRepository) memoized() ([]domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.questions, r.loaded
}

func (r *QuestionRepository) fromCache(ctx context.Context) ([]domain.Question, bool) {
	raw, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		return nil, false
	}
	var records []domain.QuestionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("discarding unreadable question cache %s: %v", r.key(), err)
		return nil, false
	}
	questions, err := domain.BuildQuestions(records)
	if err != nil {
		log.Printf("discarding invalid question cache %s: %v", r.key(), err)
		return nil, false
	}
	return questions, true
}

// store is best-effort; an empty list is not cached so a fixed source is picked up on the next start.
func (r *QuestionRepository) store(ctx context.Context, questions []domain.Question) {
	if len(questions) == 0 {
		return
	}
	raw, err := json.Marshal(domain.Records(questions))
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, r.key(), raw, r.ttlWithJitter()).Err(); err != nil {
		log.Printf("cache questions: %v", err)
	}
}

func (r *QuestionRepository) key() string {
	return "questions:" + r.setID
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
