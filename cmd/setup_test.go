package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-wrapped/internal/scoring"
)

func loadYAML(t *testing.T, doc string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(doc)))
}

func TestScoringConfig_Defaults(t *testing.T) {
	loadYAML(t, "year: 2024\n")

	cfg, err := scoringConfig()
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultConfig(2024), cfg)
}

func TestScoringConfig_Overlay(t *testing.T) {
	loadYAML(t, `
year: 2023
scoring:
  year: 1999
  repository:
    star-multiplier: 10
  language:
    top-n: 5
  archetype:
    min-pattern-commits: 80
`)

	cfg, err := scoringConfig()
	require.NoError(t, err)

	expected := scoring.DefaultConfig(2023)
	expected.Repository.StarMultiplier = 10
	expected.Language.TopN = 5
	expected.Archetype.MinPatternCommits = 80
	assert.Equal(t, expected, cfg)
}

func TestScoringConfig_TopOverridesFile(t *testing.T) {
	loadYAML(t, `
year: 2025
top: 1
scoring:
  language:
    top-n: 5
`)

	cfg, err := scoringConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Language.TopN)
}

func TestTokensFromEnv(t *testing.T) {
	testCases := []struct {
		name     string
		tokens   string
		token    string
		expected []string
	}{
		{name: "comma separated list wins", tokens: "a,b", token: "c", expected: []string{"a", "b"}},
		{name: "single token fallback", token: "c", expected: []string{"c"}},
		{name: "nothing set", expected: []string{""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKENS", tc.tokens)
			t.Setenv("GITHUB_TOKEN", tc.token)
			assert.Equal(t, tc.expected, tokensFromEnv())
		})
	}
}

func TestLoadLocation(t *testing.T) {
	loadYAML(t, "timezone: Asia/Tokyo\n")
	loc, err := loadLocation()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	viper.Set("timezone", "Nowhere/Special")
	_, err = loadLocation()
	assert.Error(t, err)
}
