package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nba_api/internal/httpserver"
	"github.com/Skotchmaster/nba_api/internal/middleware/auth"
	"github.com/Skotchmaster/nba_api/internal/mykafka"
	"github.com/Skotchmaster/nba_api/internal/repo"
	"github.com/Skotchmaster/nba_api/internal/search"
	"github.com/Skotchmaster/nba_api/internal/seed"
	"github.com/Skotchmaster/nba_api/internal/service"
	"github.com/Skotchmaster/nba_api/pkg/config"
	pkgdb "github.com/Skotchmaster/nba_api/pkg/db"
	"github.com/Skotchmaster/nba_api/pkg/logging"
	"github.com/Skotchmaster/nba_api/pkg/middleware/metrics"
	loggingmw "github.com/Skotchmaster/nba_api/pkg/middleware/logging"
	"github.com/Skotchmaster/nba_api/pkg/tokens"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	db, err := openDB(ctx, cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := repo.New(db)
	if err := r.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := seed.EnsureDefaultRoles(ctx, r); err != nil {
		log.Fatalf("seed roles: %v", err)
	}
	if err := seed.EnsureTeams(ctx, r); err != nil {
		log.Fatalf("seed teams: %v", err)
	}
	if err := seed.EnsureAdmin(ctx, r, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	var events service.EventPublisher
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer

		topicCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := mykafka.EnsureTopics(topicCtx, cfg.KafkaBrokers[0], service.Topics...); err != nil {
			logger.Warn("kafka_topics_not_created", "error", err)
		}
		cancel()
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	players := &service.PlayerService{Repo: r, Events: events}
	if cfg.SearchEnabled() {
		esCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err := search.NewClient(esCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err == nil {
			idx := search.NewPlayerIndex(client, cfg.ESPlayersIndex)
			if err = idx.EnsureIndex(esCtx); err == nil {
				players.Index = idx
				logger.Info("search_enabled", "index", cfg.ESPlayersIndex)
			}
		}
		cancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		}
	}

	issuer := tokens.NewIssuer([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)
	users := &service.UserService{Repo: r, Events: events}
	prom := metrics.New("nba_api", nil)
	prom.Skipper = func(c echo.Context) bool { return c.Path() == "/metrics" }

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(prom.Middleware())
	e.Use(loggingmw.RequestLoggerWithConfig(loggingmw.Config{
		Logger: logger,
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/health/live", "/health/ready", "/metrics":
				return true
			}
			return false
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echomw.BodyLimit("1M"))

	httpserver.Register(e, &httpserver.Deps{
		Guard:   &auth.Guard{Tokens: issuer, Users: users},
		Auth:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: issuer, Events: events}},
		Players: &httpserver.PlayerHTTP{Svc: players},
		Teams:   &httpserver.TeamHTTP{Svc: &service.TeamService{Repo: r, Index: players.Index, Events: events}},
		Users:   &httpserver.UserHTTP{Svc: users},
		Roles:   &httpserver.RoleHTTP{Svc: &service.RoleService{Repo: r, Events: events}},
		System:  &httpserver.SystemHTTP{DB: db, Service: cfg.ServiceName, Version: version},
		Metrics: prom.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}

func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if cfg.UsesPostgres() {
		return pkgdb.Open(ctx, cfg.DatabaseURL)
	}
	slog.Warn("database_fallback", "driver", "sqlite", "path", cfg.SQLitePath)
	return pkgdb.OpenSQLite(ctx, cfg.SQLitePath)
}
