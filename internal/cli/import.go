package cli

import (
	"context"
	"fmt"
	"log"

	"feud-board-service/internal/config"
	"feud-board-service/internal/infra/file"
	"feud-board-service/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewImportCmd copies a question file into Postgres so several hosts can share it.
func NewImportCmd(configPath *string) *cobra.Command {
	var setID string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a JSON or YAML question file into Postgres",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			path := cfg.Questions.Path
			if len(args) == 1 {
				path = args[0]
			}
			if setID != "" {
				cfg.Questions.SetID = setID
			}
			return runImport(cmd.Context(), cfg, path)
		},
	}
	cmd.Flags().StringVar(&setID, "set", "", "question set id (overrides config)")
	return cmd
}

func runImport(ctx context.Context, cfg config.Config, path string) error {
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	questions, err := file.NewQuestionLoader(path).LoadQuestions(ctx)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", path)
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.NewQuestionWriter(db).SaveQuestionSet(ctx, cfg.Questions.SetID, questions); err != nil {
		return err
	}
	log.Printf("imported %d questions into set %q", len(questions), cfg.Questions.SetID)
	return nil
}
