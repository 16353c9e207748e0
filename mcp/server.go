package mcp

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
	"github.com/Hypersave-AI/hypersave-sdk/mcp/internal/handlers"
)

// Configuration holds all settings for the MCP server
type config struct {
	ServerName      string
	ServerVersion   string
	HTTPAddr        string
	LogLevel        zerolog.Level
	ShutdownTimeout time.Duration
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

// loadConfig loads configuration from environment variables and args.
// Flags override env vars. The Hypersave API itself is configured through
// HYPERSAVE_* variables read by hypersave.NewFromEnv.
func loadConfig(args []string) (*config, error) {
	cfg := &config{
		ServerName:      getEnvOrDefault("MCP_SERVER_NAME", "hypersave-mcp-server"),
		ServerVersion:   getEnvOrDefault("MCP_SERVER_VERSION", hypersave.Version),
		HTTPAddr:        getEnvOrDefault("MCP_HTTP_ADDR", ":11546"),
		ShutdownTimeout: parseDurationOrDefault("SHUTDOWN_TIMEOUT", "10s"),
		HTTPReadTimeout: parseDurationOrDefault("HTTP_READ_TIMEOUT", "5s"),
		HTTPIdleTimeout: parseDurationOrDefault("HTTP_IDLE_TIMEOUT", "120s"),
	}
	cfg.LogLevel = parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info"))

	fs := flag.NewFlagSet("hypersave-mcp", flag.ContinueOnError)
	var rawLogLevel string
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for the Streamable HTTP transport")
	fs.StringVar(&rawLogLevel, "log-level", cfg.LogLevel.String(), "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rawLogLevel != "" {
		cfg.LogLevel = parseLogLevel(rawLogLevel)
	}
	return cfg, nil
}

// initLogger initializes the logger with the configured level. Logs go to
// stderr so they never corrupt the stdio transport.
func (c *config) initLogger() {
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(envKey, defaultValue string) time.Duration {
	if value := os.Getenv(envKey); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing Hypersave tools backed by c.
func NewServer(c *hypersave.Client, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, h := range []struct {
		name string
		reg  toolRegisterer
	}{
		{"memory", handlers.NewMemoryHandler(c)},
		{"search", handlers.NewSearchHandler(c)},
		{"profile", handlers.NewProfileHandler(c)},
		{"entity", handlers.NewEntityHandler(c)},
	} {
		if err := h.reg.RegisterTools(s); err != nil {
			log.Error().Err(err).Msgf("Failed to register %s tools", h.name)
			return nil, err
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server with configuration from the process
// environment and arguments.
func RunMCPServer() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	cfg.initLogger()

	hs, err := hypersave.NewFromEnv(
		hypersave.WithUserAgent("hypersave-mcp/"+cfg.ServerVersion),
		hypersave.WithLogger(log.Logger),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Hypersave client; is HYPERSAVE_API_KEY set?")
		return err
	}
	log.Info().Str("base_url", hs.BaseURL()).Msg("Hypersave client created")

	s, err := NewServer(hs, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		// Stdio transport (for desktop hosts, launched processes)
		log.Info().Msg("Starting Hypersave MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

func serveHTTP(s *server.MCPServer, cfg *config) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting Hypersave MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // SSE streams have no write deadline
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server error")
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Auto-detect: use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
