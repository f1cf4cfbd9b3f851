package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wikigraph/internal/queue"
	mid "wikigraph/internal/server/middleware"
	"wikigraph/internal/storage"
	"wikigraph/internal/util"
	"wikigraph/pkg/explorer"
	"wikigraph/pkg/logger"
	storepgx "wikigraph/pkg/store/pgx"
	"wikigraph/pkg/wiki"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func runMigrations() {
	m, err := migrate.New("file://migrations", util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to init migrations", "err", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	jwksUrl := util.GetEnv("AUTH_URL") + "/jwks"
	k, err := keyfunc.NewDefault([]string{jwksUrl})
	if err != nil {
		logger.Fatal("Failed to load jwks keys", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runMigrations()

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}

	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	wikiClient := wiki.NewClient(wiki.NewClientParams{
		RestURL:   util.GetEnvString("WIKI_REST_URL", ""),
		ActionURL: util.GetEnvString("WIKI_ACTION_URL", ""),
		UserAgent: util.GetEnvString("WIKI_USER_AGENT", ""),
		MaxLinks:  util.GetEnvInt("WIKI_MAX_LINKS", 50),
	})

	exp := explorer.NewExplorer(explorer.NewExplorerParams{
		Source:               wikiClient,
		MaxConcurrentFetches: util.GetEnvInt("EXPLORER_MAX_FETCHES", 12),
		FetchTimeout:         time.Duration(util.GetEnvInt("EXPLORER_FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		BuildBudget:          time.Duration(util.GetEnvInt("EXPLORER_BUDGET_SECONDS", 90)) * time.Second,
		MaxRetries:           util.GetEnvInt("EXPLORER_MAX_RETRIES", 2),
		CacheTTL:             time.Duration(util.GetEnvInt("EXPLORER_CACHE_TTL_HOURS", 168)) * time.Hour,
		LinksPerNode:         util.GetEnvInt("EXPLORER_LINKS_PER_NODE", 0),
	})
	defer exp.Flush()

	app := &mid.App{
		DBConn:       conn,
		Queue:        ch,
		Key:          &k,
		S3:           s3,
		Wiki:         wikiClient,
		Explorer:     exp,
		Explorations: storepgx.NewExplorationDBStorage(conn),
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
