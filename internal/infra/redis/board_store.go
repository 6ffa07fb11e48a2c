package redis

import (
	"context"
	"sync"
	"time"

	"feud-board-service/internal/app"
	"feud-board-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// BoardStore is a Redis-aware implementation of app.BoardRepository.
// The board itself stays in process memory; Redis only carries a liveness
// marker so operators can see that a display is running.
type BoardStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	board  *app.Board
}

func NewBoardStore(client *redis.Client, ttl time.Duration) *BoardStore {
	return &BoardStore{client: client, ttl: ttl}
}

func (s *BoardStore) GetOrCreate(questions []domain.Question) *app.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board != nil {
		return s.board
	}
	s.board = app.NewBoard(questions)
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(), len(questions), s.ttl).Err()
	return s.board
}

func (s *BoardStore) Get() (*app.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.board != nil
}

func (s *BoardStore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return
	}
	s.board = nil
	_ = s.client.Del(context.Background(), s.key()).Err()
}

func (s *BoardStore) key() string {
	return "board:session"
}
