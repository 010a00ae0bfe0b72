package main

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

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/paraphrase-relay/internal/config"
	"github.com/kiliankoe/paraphrase-relay/internal/server"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		hostFlag    = flag.String("host", "", "Host to bind (overrides HOST env var)")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
		envFile     = flag.String("env-file", ".env", "Optional dotenv file to load")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`paraphrase-relay - relays text to OpenAI for paraphrasing

Usage: %s [options]

Options:
  -h, --help        Show this help message
  -v, --version     Show version information
  --host HOST       Host to bind (default: 127.0.0.1 or HOST env var)
  --port PORT       Port to listen on (default: 8080 or PORT env var)
  --env-file PATH   Dotenv file to load if present (default: .env)

Environment Variables:
  OPENAI_API_KEY      OpenAI API key (requests fail with 500 when unset)
  OPENAI_BASE_URL     Custom OpenAI API base URL (optional)
  OPENAI_MODEL        Chat model (default: gpt-3.5-turbo)
  UPSTREAM_TIMEOUT    Timeout for OpenAI calls (default: 60s)
  HOST                Host to bind (default: 127.0.0.1)
  PORT                Port to listen on (default: 8080)
  LOG_LEVEL           debug, info, warn, error (default: info)

Example:
  curl -X POST http://127.0.0.1:8080/paraphrase -d '{"text":"hello"}'
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("paraphrase-relay %s\n", version)
		return
	}

	cfg := config.Load(*envFile)
	if *hostFlag != "" {
		cfg.Host = *hostFlag
	}
	if *portFlag != "" {
		cfg.Port = *portFlag
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.HasOpenAIKey() {
		zerologlog.Warn().Msg("OPENAI_API_KEY not set, /paraphrase will answer 500")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.New(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zerologlog.Info().Str("addr", "http://"+cfg.Addr()).Str("model", cfg.Model).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerologlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	zerologlog.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerologlog.Error().Err(err).Msg("shutdown")
	}
}
