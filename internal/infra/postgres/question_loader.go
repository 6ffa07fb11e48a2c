package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"feud-board-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads a question set stored as a JSONB array in Postgres.
type QuestionLoader struct {
	pool  *pgxpool.Pool
	setID string
}

func NewQuestionLoader(pool *pgxpool.Pool, setID string) *QuestionLoader {
	return &QuestionLoader{pool: pool, setID: setID}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, l.setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Printf("question set %q not found, starting empty", l.setID)
		return []domain.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	var records []domain.QuestionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("unmarshal question set: %w", err)
	}
	questions, err := domain.BuildQuestions(records)
	if err != nil {
		return nil, fmt.Errorf("build question set %q: %w", l.setID, err)
	}
	return questions, nil
}
