// Package identity is the HTTP gateway to the user directory service.
// Tickets and comments reference users only by id; all attribute lookups go
// through here.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
)

// ErrUserNotFound is returned when no directory entry matches.
var ErrUserNotFound = errors.New("user not found in directory")

type User struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *sharedconfig.IdentityConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolveByEmail maps an email address to a directory user. Returns
// ErrUserNotFound when the address is unknown; callers treat that as a
// non-fatal condition (external sender).
func (c *Client) ResolveByEmail(ctx context.Context, email string) (*User, error) {
	endpoint := fmt.Sprintf("%s/api/users/lookup?email=%s", c.baseURL, url.QueryEscape(email))
	return c.getUser(ctx, endpoint)
}

// GetUser fetches a directory user by id.
func (c *Client) GetUser(ctx context.Context, id uint) (*User, error) {
	endpoint := fmt.Sprintf("%s/api/users/%d", c.baseURL, id)
	return c.getUser(ctx, endpoint)
}

func (c *Client) getUser(ctx context.Context, endpoint string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("identity service unreachable", err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("identity service returned status %d", resp.StatusCode))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	if user.ID == 0 {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
