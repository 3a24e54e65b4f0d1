package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/scoring"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context, user string) (domain.CommunityStats, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.CommunityStats), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, user string) ([]domain.RepositoryRecord, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositoryRecord), args.Error(1)
}

func (m *mockFetcher) FetchContributions(ctx context.Context, user string, year int) (*gateway.Contributions, error) {
	args := m.Called(ctx, user, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Contributions), args.Error(1)
}

func (m *mockFetcher) FetchEventTimes(ctx context.Context, user string) ([]time.Time, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func setupRouter(fetcher gateway.Fetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := New(fetcher, scoring.DefaultConfig(2025), time.UTC, log.New(io.Discard, "", 0))
	return s.Router()
}

func stubUser(fetcher *mockFetcher, user string, year int, err error) {
	if err != nil {
		fetcher.On("FetchProfile", mock.Anything, user).Return(domain.CommunityStats{}, err).Maybe()
		fetcher.On("FetchRepositories", mock.Anything, user).Return(nil, err).Maybe()
		fetcher.On("FetchContributions", mock.Anything, user, year).Return(nil, err).Maybe()
		fetcher.On("FetchEventTimes", mock.Anything, user).Return(nil, err).Maybe()
		return
	}
	fetcher.On("FetchProfile", mock.Anything, user).Return(domain.CommunityStats{Followers: 7}, nil)
	fetcher.On("FetchRepositories", mock.Anything, user).Return([]domain.RepositoryRecord{{Name: "wrapped", Language: "Go"}}, nil)
	fetcher.On("FetchContributions", mock.Anything, user, year).Return(&gateway.Contributions{
		Days: []domain.DailyContribution{{Date: time.Date(year, time.June, 2, 0, 0, 0, 0, time.UTC), Count: 4}},
	}, nil)
	fetcher.On("FetchEventTimes", mock.Anything, user).Return([]time.Time{}, nil)
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(new(mockFetcher))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReportEndpoint(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		user           string
		year           int
		fetchErr       error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "default year",
			path:           "/api/report/octocat",
			user:           "octocat",
			year:           2025,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit year",
			path:           "/api/report/octocat?year=2023",
			user:           "octocat",
			year:           2023,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			path:           "/api/report/ghost",
			user:           "ghost",
			year:           2025,
			fetchErr:       fmt.Errorf("failed to get user: %w", gateway.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedError:  gateway.ErrNotFound.Error(),
		},
		{
			name:           "rate limited",
			path:           "/api/report/busy",
			user:           "busy",
			year:           2025,
			fetchErr:       fmt.Errorf("failed to list repositories: %w", gateway.ErrRateLimited),
			expectedStatus: http.StatusTooManyRequests,
			expectedError:  gateway.ErrRateLimited.Error(),
		},
		{
			name:           "bad token is not leaked",
			path:           "/api/report/locked",
			user:           "locked",
			year:           2025,
			fetchErr:       fmt.Errorf("failed to get user: %w: %w", gateway.ErrUnauthorized, errors.New("401 Bad credentials")),
			expectedStatus: http.StatusBadGateway,
			expectedError:  "failed to fetch GitHub data",
		},
		{
			name:           "invalid login",
			path:           "/api/report/-bad-",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid GitHub user name",
		},
		{
			name:           "login too long",
			path:           "/api/report/" + strings.Repeat("a", 40),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid GitHub user name",
		},
		{
			name:           "invalid year",
			path:           "/api/report/octocat?year=abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid year",
		},
		{
			name:           "year before GitHub",
			path:           "/api/report/octocat?year=1999",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid year",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.user != "" {
				stubUser(fetcher, tc.user, tc.year, tc.fetchErr)
			}
			r := setupRouter(fetcher)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tc.expectedError, body["error"])
				return
			}

			var report domain.YearReport
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
			assert.Equal(t, tc.user, report.Username)
			assert.Equal(t, tc.year, report.Year)
			assert.Equal(t, 4, report.TotalCommits)
			assert.Equal(t, "wrapped", report.TopRepository.Name)
			fetcher.AssertExpectations(t)
		})
	}
}
