package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/scoring"
)

// newLogger discards all logs unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// scoringConfig overlays the `scoring:` section of the config file onto the
// defaults for the requested year. An explicit --top wins over the file.
func scoringConfig() (scoring.Config, error) {
	year := viper.GetInt("year")
	cfg := scoring.DefaultConfig(year)
	if viper.IsSet("scoring") {
		if err := viper.UnmarshalKey("scoring", &cfg); err != nil {
			return scoring.Config{}, fmt.Errorf("unable to unmarshal scoring config: %w", err)
		}
	}
	cfg.TargetYear = year
	if viper.IsSet("top") {
		cfg.Language.TopN = viper.GetInt("top")
	}
	return cfg, nil
}

// tokensFromEnv reads GITHUB_TOKENS (comma-separated) and falls back to GITHUB_TOKEN.
func tokensFromEnv() []string {
	if tokens := os.Getenv("GITHUB_TOKENS"); tokens != "" {
		return gateway.ParseTokens(tokens)
	}
	return []string{os.Getenv("GITHUB_TOKEN")}
}

// newFetcher wires the token pool, the GitHub gateway and the response cache.
func newFetcher(logger *log.Logger) (*gateway.CachedFetcher, error) {
	pool, err := gateway.NewTokenPool(tokensFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("GITHUB_TOKENS or GITHUB_TOKEN environment variable is not set: %w", err)
	}
	logger.Printf("Using %d GitHub token(s).\n", pool.Len())

	githubGateway, err := gateway.NewGitHubGateway(pool, viper.GetFloat64("rps"), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return gateway.NewCachedFetcher(githubGateway, viper.GetDuration("cache-ttl")), nil
}

func loadLocation() (*time.Location, error) {
	name := viper.GetString("timezone")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --timezone %q: %w", name, err)
	}
	return loc, nil
}
