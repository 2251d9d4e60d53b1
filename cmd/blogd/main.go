// Command blogd runs the blogging backend: user registration and login
// with bearer-token auth, and owner-guarded post CRUD on PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"

	"github.com/kbukum/blogd/api"
	"github.com/kbukum/blogd/auth"
	"github.com/kbukum/blogd/auth/password"
	"github.com/kbukum/blogd/auth/token"
	"github.com/kbukum/blogd/config"
	"github.com/kbukum/blogd/database"
	"github.com/kbukum/blogd/logger"
	"github.com/kbukum/blogd/observability"
	"github.com/kbukum/blogd/server"
	"github.com/kbukum/blogd/store"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default: standard locations)")
	envFile := flag.String("env-file", "", "path to a .env file (default: ./.env if present)")
	flag.Parse()

	cfg, err := config.Load(config.LoaderOptions{ConfigFile: *configFile, EnvFile: *envFile})
	if err != nil {
		logger.NewDefault("blogd").Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Service exited with error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: cfg.Name,
			Environment: cfg.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Environment != "production",
		})
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	db, err := database.New(ctx, postgres.Open(cfg.Database.DSN), cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(store.Models()...); err != nil {
			return err
		}
	}

	st := store.New()
	hasher := password.NewHasher(cfg.Auth.Password)
	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return err
	}
	resolver := auth.NewResolver(tokens, func(ctx context.Context, id uint) (*store.User, error) {
		return st.UserByID(db.GormDB.WithContext(ctx), id)
	})

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	if cfg.Tracing.Enabled {
		srv.GinEngine().Use(observability.TraceRequests())
	}
	api.New(db, st, hasher, tokens, resolver, log).Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("blogd is ready", map[string]interface{}{
		"addr":        srv.Addr(),
		"environment": cfg.Environment,
	})

	<-ctx.Done()
	log.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(stopCtx)
}
