package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/render"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Builds a year-in-review report for a GitHub user",
	Long: `Fetches a GitHub user's profile, repositories, contribution calendar and recent
events, scores them and prints the year in review as text or JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		if err := readConfigFile(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		user, _ := cmd.Flags().GetString("user")
		cfg, err := scoringConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		loc, err := loadLocation()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		terminal := term.IsTerminal(int(os.Stdout.Fd()))
		format, err := render.Resolve(viper.GetString("output"), terminal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		fetcher, err := newFetcher(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reporter := usecase.NewReporter(fetcher, cfg, loc, logger)

		report, err := reporter.Build(ctx, user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build report: %v\n", err)
			if errors.Is(err, gateway.ErrRateLimited) {
				fmt.Fprintln(os.Stderr, "Hint: add more tokens to GITHUB_TOKENS or lower --rps.")
			}
			os.Exit(1)
		}

		switch format {
		case render.FormatJSON:
			err = render.JSON(os.Stdout, report)
		default:
			err = render.Text(os.Stdout, report, render.TextOptions{
				UseColors: terminal && !viper.GetBool("no-color"),
			})
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	reportCmd.Flags().StringP("output", "o", "auto", "Output format: auto, json or text")
	reportCmd.Flags().Bool("no-color", false, "Disable colored text output")
	_ = reportCmd.MarkFlagRequired("user")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding report flags: %v\n", err)
		os.Exit(1)
	}
}
