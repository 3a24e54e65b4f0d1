// Package server exposes year-in-review reports over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/scoring"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
)

// GitHub logins are alphanumerics separated by single hyphens, at most 39 long.
var loginPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)

const (
	maxLoginLength  = 39
	firstGitHubYear = 2008
)

func validLogin(user string) bool {
	return len(user) <= maxLoginLength && loginPattern.MatchString(user)
}

// Server builds reports on request. Each request gets its own Reporter, so the
// year can vary per request while the fetcher (and its cache) is shared.
type Server struct {
	fetcher  gateway.Fetcher
	cfg      scoring.Config
	location *time.Location
	logger   *log.Logger
}

// New creates a Server. cfg.TargetYear is the year used when a request names none.
func New(fetcher gateway.Fetcher, cfg scoring.Config, loc *time.Location, logger *log.Logger) *Server {
	return &Server{fetcher: fetcher, cfg: cfg, location: loc, logger: logger}
}

// Router returns the HTTP handler.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/report/:user", s.handleReport)
	return r
}

func (s *Server) handleReport(c *gin.Context) {
	user := c.Param("user")
	if !validLogin(user) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid GitHub user name"})
		return
	}

	cfg := s.cfg
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < firstGitHubYear || year > time.Now().Year() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		cfg.TargetYear = year
	}

	reporter := usecase.NewReporter(s.fetcher, cfg, s.location, s.logger)
	report, err := reporter.Build(c.Request.Context(), user)
	if err != nil {
		s.logger.Printf("Server: report for %s failed: %v\n", user, err)
		c.JSON(statusFor(err), gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, report)
}

// statusFor maps fetch failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// errorMessage hides upstream details such as token failures from clients.
func errorMessage(err error) string {
	for _, sentinel := range []error{gateway.ErrNotFound, gateway.ErrRateLimited} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "failed to fetch GitHub data"
}
