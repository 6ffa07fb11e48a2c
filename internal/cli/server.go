package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feud-board-service/internal/app"
	"feud-board-service/internal/config"
	"feud-board-service/internal/infra/file"
	"feud-board-service/internal/infra/memory"
	pgloader "feud-board-service/internal/infra/postgres"
	redisstore "feud-board-service/internal/infra/redis"
	transport "feud-board-service/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the board server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 12*time.Hour)

	var loader memory.QuestionLoader = file.NewQuestionLoader(cfg.Questions.Path)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewQuestionLoader(pool, cfg.Questions.SetID)
	}

	questions := newQuestionRepository(cfg, loader, redisClient)

	var boards app.BoardRepository
	if redisClient != nil {
		boards = redisstore.NewBoardStore(redisClient, redisTTL)
	} else {
		boards = memory.NewBoardStore()
	}

	service := app.NewHostService(boards, questions)
	// questions are read exactly once; a malformed source stops startup here
	if _, err := service.Start(ctx); err != nil {
		return err
	}
	defer service.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := transport.NewRouter(service, transport.RouterOptions{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	// no read/write timeouts: /ws connections stay open for the whole show
	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("starting board service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newQuestionRepository caches in redis only for Postgres-backed sets, whose id names stable content.
// A file source is re-read on every start so an edited or removed file takes effect.
func newQuestionRepository(cfg config.Config, loader memory.QuestionLoader, client *redis.Client) app.QuestionRepository {
	if client == nil || cfg.Postgres.URL == "" {
		return memory.NewQuestionRepository(loader)
	}
	ttl := config.TTLDuration(cfg.Questions.TTL, time.Hour)
	return redisstore.NewQuestionRepository(client, loader, cfg.Questions.SetID, ttl)
}
