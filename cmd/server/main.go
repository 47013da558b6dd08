package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/cesargomez89/meting-gateway/internal/catalog"
	"github.com/cesargomez89/meting-gateway/internal/config"
	httpapp "github.com/cesargomez89/meting-gateway/internal/http"
	"github.com/cesargomez89/meting-gateway/internal/httpclient"
	"github.com/cesargomez89/meting-gateway/internal/logger"
	"github.com/cesargomez89/meting-gateway/internal/store"
	"github.com/cesargomez89/meting-gateway/internal/weapi"
)

func main() {
	app := &cli.Command{
		Name:  "meting-gateway",
		Usage: "HTTP gateway for music platform metadata, covers, lyrics and playback links",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to a TOML configuration file"},
			&cli.StringFlag{Name: "host", Usage: "Listen host"},
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.IntFlag{Name: "concurrency", Usage: "Maximum concurrent upstream requests"},
			&cli.IntFlag{Name: "playlist-retry", Usage: "Default retry budget for playlist batches"},
			&cli.BoolFlag{Name: "random-ip", Usage: "Send a random X-Real-IP header upstream"},
			&cli.BoolFlag{Name: "mock", Usage: "Register the mock provider"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides configuration values with flags given on the command line.
func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.String("port")
	}
	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = int64(cmd.Int("concurrency"))
	}
	if cmd.IsSet("playlist-retry") {
		cfg.PlaylistRetry = int(cmd.Int("playlist-retry"))
	}
	if cmd.IsSet("random-ip") {
		cfg.RandomIP = cmd.Bool("random-ip")
	}
	if cmd.IsSet("mock") {
		cfg.EnableMock = cmd.Bool("mock")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init DB: %w", err)
	}
	defer db.Close()

	settingsRepo := store.NewSettingsRepo(db)

	encoder, err := weapi.NewEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to init encoder: %w", err)
	}

	client := httpclient.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, httpclient.Options{
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
		RandomIP:    cfg.RandomIP,
		Logger:      appLogger,
	})

	providerManager := catalog.NewProviderManager(appLogger)
	providerManager.Register(catalog.NewNeteaseProvider(client, encoder, appLogger))
	if cfg.EnableMock {
		providerManager.Register(catalog.NewMockProvider())
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := httpapp.NewHandler(providerManager, settingsRepo, appLogger)
	h.DefaultRetry = uint8(cfg.PlaylistRetry)
	h.SearchLimit = cfg.SearchLimit
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "providers", providerManager.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("Server exiting")
	return nil
}
