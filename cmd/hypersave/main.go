package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

type globalFlags struct {
	apiKey  string
	baseURL string
	userID  string
	timeout time.Duration
	debug   bool
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Str("kind", string(hypersave.KindOf(err))).Msg("command failed")
		os.Exit(exitCode(err))
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "hypersave",
		Short:         "Command line client for the Hypersave memory API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if g.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.apiKey, "api-key", "", "API key (default $HYPERSAVE_API_KEY)")
	pf.StringVar(&g.baseURL, "base-url", "", "API base URL (default $HYPERSAVE_BASE_URL or "+hypersave.DefaultBaseURL+")")
	pf.StringVarP(&g.userID, "user-id", "u", "", "Act on behalf of this user (default $HYPERSAVE_USER_ID)")
	pf.DurationVar(&g.timeout, "timeout", 0, "Per-request timeout (default $HYPERSAVE_TIMEOUT or 30s)")
	pf.BoolVarP(&g.debug, "debug", "d", false, "Enable verbose debug output including HTTP dumps")

	rootCmd.AddCommand(
		newSaveCmd(g),
		newGetCmd(g),
		newUpdateCmd(g),
		newDeleteCmd(g),
		newListCmd(g),
		newAskCmd(g),
		newSearchCmd(g),
		newQueryCmd(g),
		newProfileCmd(g),
		newGraphCmd(g),
		newRemindCmd(g),
		newUsageCmd(g),
		newHealthCmd(g),
		newIngestCmd(g),
		newIngestStatusCmd(g),
		newExtractCmd(g),
	)
	return rootCmd
}

// client builds an SDK client from the environment, then applies flags.
func (g *globalFlags) client() (*hypersave.Client, error) {
	cfg, err := hypersave.LoadConfig()
	if err != nil {
		return nil, err
	}
	if g.apiKey != "" {
		cfg.APIKey = g.apiKey
	}
	if g.baseURL != "" {
		cfg.BaseURL = g.baseURL
	}
	if g.userID != "" {
		cfg.UserID = g.userID
	}
	if g.timeout > 0 {
		cfg.Timeout = g.timeout
	}
	if g.debug {
		cfg.Debug = true
	}
	log.Debug().Str("base_url", cfg.BaseURL).Str("user_id", cfg.UserID).Dur("timeout", cfg.Timeout).Msg("creating client")
	return hypersave.NewFromConfig(cfg, hypersave.WithUserAgent("hypersave-cli/"+hypersave.Version), hypersave.WithLogger(log.Logger))
}

// run executes one SDK call and prints its result as indented JSON.
func run[T any](cmd *cobra.Command, g *globalFlags, op string, fn func(context.Context, *hypersave.Client) (T, error)) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := fn(cmd.Context(), c)
	elapsed := time.Since(start)
	if err != nil {
		ev := log.Debug().Err(err).Str("op", op).Dur("elapsed", elapsed)
		if e, ok := hypersave.AsError(err); ok {
			ev = ev.Str("request_id", e.RequestID).Int("status", e.StatusCode)
		}
		ev.Msg("request failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("request completed")
	return printJSON(cmd.OutOrStdout(), res)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
