// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "github-wrapped",
	Short: "A CLI tool to build a GitHub year in review.",
	Long: `github-wrapped scores a GitHub user's public activity for one calendar year:
top repository, language mix, streaks, busiest weekday, peak hour and a
developer archetype. Reports can be printed or served over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default is ./.github-wrapped.yaml or $HOME/.github-wrapped.yaml)")
	rootCmd.PersistentFlags().Int("year", time.Now().Year(), "Calendar year to review")
	rootCmd.PersistentFlags().Int("top", 3, "Number of top languages to report")
	rootCmd.PersistentFlags().String("timezone", "UTC", "IANA time zone used to bucket activity into hours (e.g. Asia/Tokyo, Local)")
	rootCmd.PersistentFlags().Duration("cache-ttl", 5*time.Minute, "How long fetched GitHub data is reused (0 disables caching)")
	rootCmd.PersistentFlags().Float64("rps", 10, "Maximum GitHub REST requests per second (0 disables pacing)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding root flags: %v\n", err)
		os.Exit(1)
	}
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine; tokens may come from the real environment.
	_ = godotenv.Load()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".github-wrapped")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("WRAPPED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output", "auto")
	viper.SetDefault("addr", ":8080")
}

// readConfigFile merges the config file into viper. A missing file is not an error.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
