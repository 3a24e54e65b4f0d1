package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
)

// Caller-visible fetch failures. Returned errors wrap one of these when the
// cause is known, so callers can test with errors.Is.
var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("GitHub user not found")

	// ErrRateLimited indicates a primary or secondary rate limit was hit.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded")

	// ErrUnauthorized indicates the token was rejected.
	ErrUnauthorized = errors.New("GitHub token rejected")
)

func translateRESTError(action string, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("failed to %s: %w: %w", action, ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("failed to %s: %w: %w", action, ErrNotFound, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("failed to %s: %w: %w", action, ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// translateGraphQLError classifies githubv4 errors, which only carry a message.
func translateGraphQLError(action string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Could not resolve to a User"):
		return fmt.Errorf("failed to %s: %w: %w", action, ErrNotFound, err)
	case strings.Contains(msg, "rate limit"):
		return fmt.Errorf("failed to %s: %w: %w", action, ErrRateLimited, err)
	case strings.Contains(msg, "401 Unauthorized"):
		return fmt.Errorf("failed to %s: %w: %w", action, ErrUnauthorized, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
