package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotConfigured reports that no credential source is available at all.
// Callers should surface setup instructions instead of retrying.
var ErrNotConfigured = errors.New("no API token configured")

// sessionFile mirrors the session document written by the login helper.
type sessionFile struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// FileTokenSource reads a bearer token from a session file on every call,
// so a refreshed session is picked up without restarting the server.
type FileTokenSource struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

func (s *FileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session file %s: %w", s.path, ErrNotConfigured)
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session sessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", s.path, err)
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return nil, fmt.Errorf("session file %s has no access_token: %w", s.path, ErrNotConfigured)
	}

	token := &oauth2.Token{AccessToken: session.AccessToken, TokenType: session.TokenType}
	if session.ExpiresAt != "" {
		if expiry, err := time.Parse(time.RFC3339, session.ExpiresAt); err == nil {
			token.Expiry = expiry
		}
	}
	return token, nil
}

// NewTokenSource picks the credential source: a permanent token from the
// environment wins, otherwise the session file is consulted per call.
func NewTokenSource(permanentToken, sessionPath string) (oauth2.TokenSource, error) {
	if strings.TrimSpace(permanentToken) != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: permanentToken}), nil
	}
	if strings.TrimSpace(sessionPath) != "" {
		return NewFileTokenSource(sessionPath), nil
	}
	return nil, ErrNotConfigured
}
