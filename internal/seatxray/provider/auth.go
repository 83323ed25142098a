package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	tokenExpiryBuffer    = 60 * time.Second
	defaultTokenLifetime = 1799 * time.Second
)

// tokenSource holds an OAuth2 client-credentials token. Concurrent callers that find the
// token missing or about to expire share a single refresh, which is bounded by the http
// client timeout rather than by any one caller's context.
type tokenSource struct {
	httpClient *http.Client
	tokenURL   string
	apiKey     string
	apiSecret  string

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group
	now   func() time.Time
}

func newTokenSource(httpClient *http.Client, tokenURL, apiKey, apiSecret string) *tokenSource {
	return &tokenSource{
		httpClient: httpClient,
		tokenURL:   tokenURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		now:        time.Now,
	}
}

func (s *tokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.valid(); ok {
		return token, nil
	}

	ch := s.group.DoChan("token", func() (any, error) {
		if token, ok := s.valid(); ok {
			return token, nil
		}
		return s.refresh(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Refresh fetches a new token regardless of the cached one.
func (s *tokenSource) Refresh(ctx context.Context) error {
	ch := s.group.DoChan("token", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (s *tokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *tokenSource) valid() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.now().Before(s.expiresAt.Add(-tokenExpiryBuffer)) {
		return "", false
	}
	return s.token, true
}

func (s *tokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.apiKey)
	form.Set("client_secret", s.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.Invalidate()
		return "", fmt.Errorf("token request: %w: %w", ErrTemporary, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.Invalidate()
		return "", fmt.Errorf("token read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusBadRequest:
		s.Invalidate()
		return "", fmt.Errorf("token request (%d): %w", resp.StatusCode, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		s.Invalidate()
		return "", fmt.Errorf("token request (%d): %w", resp.StatusCode, ErrTemporary)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		s.Invalidate()
		return "", fmt.Errorf("token decode: %w", err)
	}
	if result.AccessToken == "" {
		s.Invalidate()
		return "", fmt.Errorf("token decode: empty access token: %w", ErrUnauthorized)
	}

	lifetime := defaultTokenLifetime
	if result.ExpiresIn > 0 {
		lifetime = time.Duration(result.ExpiresIn) * time.Second
	}

	s.mu.Lock()
	s.token = result.AccessToken
	s.expiresAt = s.now().Add(lifetime)
	s.mu.Unlock()

	return result.AccessToken, nil
}
