package gateway

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// TokenPool hands out access tokens round-robin. It implements
// oauth2.TokenSource, so every outgoing request uses the next token.
type TokenPool struct {
	mu     sync.Mutex
	tokens []string
	next   int
}

// NewTokenPool creates a pool from the non-blank tokens given.
func NewTokenPool(tokens ...string) (*TokenPool, error) {
	pool := &TokenPool{}
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			pool.tokens = append(pool.tokens, t)
		}
	}
	if len(pool.tokens) == 0 {
		return nil, errors.New("no GitHub token provided")
	}
	return pool, nil
}

// ParseTokens splits a comma-separated token list.
func ParseTokens(s string) []string {
	return strings.Split(s, ",")
}

// Token returns the next token in rotation.
func (p *TokenPool) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tok := p.tokens[p.next]
	p.next = (p.next + 1) % len(p.tokens)
	return &oauth2.Token{AccessToken: tok}, nil
}

// Len returns the number of tokens in rotation.
func (p *TokenPool) Len() int {
	return len(p.tokens)
}
