package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradeview/httpapi"
	"tradeview/kvstore"
	"tradeview/pricefeed"
	"tradeview/service"
)

// serveCmd runs the HTTP API server.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API server" }
func (*serveCmd) Usage() string {
	return `tv serve [-addr <addr>]

  Run the HTTP API server over the local store. Configuration is read from
  the environment (and a .env file when present):

    PORT            listen port, when -addr is not given (default 8080)
    QUOTE_URL       optional quote endpoint with a %s symbol placeholder
    QUOTE_JSONPATH  jsonpath of the price in the quote response
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, like :8080. Overrides PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// a .env file is optional, the environment alone is a valid configuration
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()

	addr := c.addr
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		addr = ":" + port
	}

	store, err := kvstore.NewDir(*storePath)
	if err != nil {
		logger.Error("cannot open store", zap.Error(err))
		return subcommands.ExitFailure
	}
	svc := service.New(store, quoteFeedFromEnv(), logger)

	srv := &http.Server{
		Addr:         addr,
		Handler:      httpapi.New(svc, logger).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("store", *storePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return subcommands.ExitFailure
	}
	logger.Info("server exited")
	return subcommands.ExitSuccess
}

// quoteFeedFromEnv builds the optional live quote feed. Without QUOTE_URL the
// dashboard relies on workbook closing prices alone.
func quoteFeedFromEnv() pricefeed.Feed {
	url := os.Getenv("QUOTE_URL")
	if url == "" {
		return nil
	}
	path := os.Getenv("QUOTE_JSONPATH")
	if path == "" {
		path = "$.data.price"
	}
	return &pricefeed.QuoteFeed{URL: url, Path: path}
}
