package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"feud-board-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// QuestionLoader reads a question list from a JSON or YAML file.
// A missing or unreadable file yields an empty list; only malformed content is an error.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

func (l *QuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		log.Printf("question file %s not readable, starting empty: %v", l.path, err)
		return []domain.Question{}, nil
	}
	records, err := DecodeRecords(l.path, data)
	if err != nil {
		return nil, err
	}
	questions, err := domain.BuildQuestions(records)
	if err != nil {
		return nil, fmt.Errorf("build questions from %s: %w", l.path, err)
	}
	return questions, nil
}

// DecodeRecords parses question records, picking YAML for .yaml/.yml paths and JSON otherwise.
func DecodeRecords(path string, data []byte) ([]domain.QuestionRecord, error) {
	var records []domain.QuestionRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode json %s: %w", path, err)
		}
	}
	return records, nil
}
