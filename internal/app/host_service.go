package app

import (
	"context"
	"log"

	"feud-board-service/internal/domain"
)

// BoardRepository abstracts where the single host board lives (in-memory, Redis-marked, etc).
type BoardRepository interface {
	GetOrCreate(questions []domain.Question) *Board
	Get() (*Board, bool)
	Release()
}

// QuestionRepository hands out the question list, loading it at most once.
type QuestionRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// HostService contains the host-facing board use cases.
type HostService struct {
	boards    BoardRepository
	questions QuestionRepository
}

func NewHostService(boards BoardRepository, questions QuestionRepository) *HostService {
	return &HostService{boards: boards, questions: questions}
}

// Start loads the questions and opens the board. A malformed source is the only error.
func (s *HostService) Start(ctx context.Context) (*Board, error) {
	questions, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		log.Printf("no questions loaded; board stays empty")
	} else {
		log.Printf("loaded %d questions", len(questions))
	}
	return s.boards.GetOrCreate(questions), nil
}

// Stop drops the board.
func (s *HostService) Stop() {
	s.boards.Release()
}

// SubmitGuess forwards a guess to the board.
func (s *HostService) SubmitGuess(_ context.Context, guess string) (domain.GuessResult, domain.BoardSnapshot, error) {
	board, ok := s.boards.Get()
	if !ok {
		return domain.GuessResult{}, domain.BoardSnapshot{}, domain.ErrBoardNotStarted
	}
	result, snapshot := board.GuessAndSnapshot(guess)
	switch result.Outcome {
	case domain.GuessCorrect:
		log.Printf("guess %q opened #%d (%d points)", guess, result.Rank, result.Points)
	case domain.GuessIncorrect:
		log.Printf("guess %q matched nothing", guess)
	}
	return result, snapshot, nil
}

// Reveal opens a slot on the host's behalf.
func (s *HostService) Reveal(_ context.Context, rank int) (bool, domain.BoardSnapshot, error) {
	board, ok := s.boards.Get()
	if !ok {
		return false, domain.BoardSnapshot{}, domain.ErrBoardNotStarted
	}
	revealed, snapshot := board.RevealAndSnapshot(rank)
	if revealed {
		log.Printf("host revealed #%d", rank)
	}
	return revealed, snapshot, nil
}

// Next advances to the following question.
func (s *HostService) Next(ctx context.Context) (bool, domain.BoardSnapshot, error) {
	return s.navigate(ctx, (*Board).NextAndSnapshot)
}

// Prev goes back to the previous question.
func (s *HostService) Prev(ctx context.Context) (bool, domain.BoardSnapshot, error) {
	return s.navigate(ctx, (*Board).PrevAndSnapshot)
}

func (s *HostService) navigate(_ context.Context, step func(*Board) (bool, domain.BoardSnapshot)) (bool, domain.BoardSnapshot, error) {
	board, ok := s.boards.Get()
	if !ok {
		return false, domain.BoardSnapshot{}, domain.ErrBoardNotStarted
	}
	moved, snapshot := step(board)
	if moved {
		log.Printf("moved to question %d/%d", snapshot.Index+1, snapshot.Count)
	}
	return moved, snapshot, nil
}

// Snapshot returns the current board view.
func (s *HostService) Snapshot(_ context.Context) (domain.BoardSnapshot, error) {
	board, ok := s.boards.Get()
	if !ok {
		return domain.BoardSnapshot{}, domain.ErrBoardNotStarted
	}
	return board.Snapshot(), nil
}

// PopupActive consumes the one-shot wrong-guess signal.
func (s *HostService) PopupActive(_ context.Context) (bool, error) {
	board, ok := s.boards.Get()
	if !ok {
		return false, domain.ErrBoardNotStarted
	}
	return board.PopupActive(), nil
}

// Subscribe returns a channel that receives board snapshots.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *HostService) Subscribe(_ context.Context) (<-chan domain.BoardSnapshot, func(), error) {
	board, ok := s.boards.Get()
	if !ok {
		return nil, nil, domain.ErrBoardNotStarted
	}
	ch, cancel := board.Subscribe()
	return ch, cancel, nil
}
