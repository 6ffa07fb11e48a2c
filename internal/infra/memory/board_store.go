package memory

import (
	"sync"

	"feud-board-service/internal/app"
	"feud-board-service/internal/domain"
)

// BoardStore is an in-memory implementation of app.BoardRepository.
type BoardStore struct {
	mu    sync.RWMutex
	board *app.Board
}

func NewBoardStore() *BoardStore {
	return &BoardStore{}
}

func (s *BoardStore) GetOrCreate(questions []domain.Question) *app.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board != nil {
		return s.board
	}
	s.board = app.NewBoard(questions)
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
	s.board = nil
}
