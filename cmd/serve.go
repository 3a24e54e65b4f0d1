package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-wrapped/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves year-in-review reports as JSON over HTTP",
	Long: `Starts an HTTP server answering GET /api/report/{user}?year=N with a JSON
report. Fetched GitHub data is cached for --cache-ttl and requests rotate
through every token in GITHUB_TOKENS.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger := newLogger(cmd)

		if err := readConfigFile(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
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
		fetcher, err := newFetcher(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if ttl := fetcher.TTL(); ttl > 0 {
			go func() {
				ticker := time.NewTicker(ttl)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := fetcher.Purge(); n > 0 {
							logger.Printf("Cache: purged %d expired entries.\n", n)
						}
					}
				}
			}()
		}

		gin.SetMode(gin.ReleaseMode)
		srv := &http.Server{
			Addr:              viper.GetString("addr"),
			Handler:           server.New(fetcher, cfg, loc, logger).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "Listening on %s\n", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
				os.Exit(1)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintf(os.Stderr, "Shutdown failed: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding serve flags: %v\n", err)
		os.Exit(1)
	}
}
