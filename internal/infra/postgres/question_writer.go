package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"feud-board-service/internal/domain"
	"github.com/uptrace/bun"
)

type questionSetRow struct {
	bun.BaseModel `bun:"table:question_sets"`

	ID        string          `bun:"id,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at"`
}

// QuestionWriter stores question sets for QuestionLoader to read back.
type QuestionWriter struct {
	db  *bun.DB
	now func() time.Time
}

func NewQuestionWriter(db *bun.DB) *QuestionWriter {
	return &QuestionWriter{db: db, now: time.Now}
}

// SaveQuestionSet inserts or replaces a question set.
func (w *QuestionWriter) SaveQuestionSet(ctx context.Context, setID string, questions []domain.Question) error {
	data, err := json.Marshal(domain.Records(questions))
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	row := &questionSetRow{ID: setID, Data: data, UpdatedAt: w.now()}
	_, err = w.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save question set %q: %w", setID, err)
	}
	return nil
}
