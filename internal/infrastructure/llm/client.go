// Package llm is the chat-completions gateway used by the ingestion
// pipeline for content extraction, summarization and title generation.
// Every call site must carry a deterministic fallback; a failure here must
// never block ticket creation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

const maxRetries = 2

type Client struct {
	baseURL     string
	apiKey      string
	temperature float64
	httpClient  *http.Client
	log         logger.Interface
}

func NewClient(cfg *sharedconfig.LLMConfig, log logger.Interface) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log.Named("llm"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system+user exchange to the given model and returns
// the raw assistant text. Transient failures are retried with backoff.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	payload := chatRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		content, err := c.send(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		c.log.Warnw("chat completion attempt failed", "model", model, "attempt", attempt+1, "error", err)
	}
	return "", lastErr
}

// CompleteJSON runs Complete and unmarshals the reply into out. Code fences
// around the JSON are stripped first; models add them regardless of
// instructions.
func (c *Client) CompleteJSON(ctx context.Context, model, system, user string, out interface{}) error {
	content, err := c.Complete(ctx, model, system, user)
	if err != nil {
		return err
	}

	cleaned := stripCodeFence(content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("parse model reply as JSON: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("llm service unreachable", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewUpstreamError(
			fmt.Sprintf("llm service returned status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", apperrors.NewUpstreamError("llm error", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.NewUpstreamError("llm returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.NewUpstreamError("llm returned empty content")
	}
	return content, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
