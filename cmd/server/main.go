package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"wikimark/app/internal/article"
	"wikimark/app/internal/auth"
	"wikimark/app/internal/config"
	appdb "wikimark/app/internal/db"
	apphttp "wikimark/app/internal/http"
	applog "wikimark/app/internal/log"
	"wikimark/app/internal/markdown"
	"wikimark/app/internal/user"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	dbConn, err := appdb.Open(appdb.Options{Path: cfg.DBPath})
	if err != nil {
		return eris.Wrap(err, "opening database")
	}
	defer func() {
		if closeErr := appdb.Close(dbConn); closeErr != nil {
			logger.WithError(closeErr).Error("closing database")
		}
	}()

	if err := user.Migrate(ctx, dbConn, logger); err != nil {
		return eris.Wrap(err, "running user migrations")
	}

	if err := article.Migrate(ctx, dbConn, logger); err != nil {
		return eris.Wrap(err, "running article migrations")
	}

	articleRepo, err := article.NewRepository(dbConn, logger)
	if err != nil {
		return eris.Wrap(err, "building article repository")
	}

	userRepo, err := user.NewRepository(dbConn, logger)
	if err != nil {
		return eris.Wrap(err, "building user repository")
	}

	resolver, err := auth.NewHeaderResolver(cfg.IdentityHeader, userRepo, logger)
	if err != nil {
		return eris.Wrap(err, "building identity resolver")
	}

	articleService, err := article.NewService(articleRepo, logger, sentryHub)
	if err != nil {
		return eris.Wrap(err, "creating article service")
	}

	transport, err := apphttp.NewServer(apphttp.Options{
		Articles:   articleService,
		Repository: articleRepo,
		Users:      userRepo,
		Resolver:   resolver,
		Renderer:   markdown.NewRenderer(),
		Database:   dbConn,
		Logger:     logger,
		SentryHub:  sentryHub,
		RateLimiter: apphttp.RateLimiterSettings{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			ClientTTL:         cfg.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return eris.Wrap(err, "initialising http transport")
	}
	defer transport.Close()

	httpServer := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.ServerPort),
		Handler: transport.Handler(),
	}

	logger.WithFields(logrus.Fields{
		"addr": httpServer.Addr,
	}).Info("starting http server")

	serverErrCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			return eris.Wrap(err, "http server error")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	logger.Info("http server shut down cleanly")
	return nil
}
