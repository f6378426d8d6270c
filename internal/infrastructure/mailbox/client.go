// Package mailbox reads the shared helpdesk inbox through a Graph-style
// mail API. The pipeline only ever reads; messages are never deleted or
// marked so ingestion state lives entirely in the local ledger.
package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"helpdesk/internal/domain/inbound"
	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
)

type Client struct {
	baseURL     string
	address     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg *sharedconfig.MailboxConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		address:     cfg.Address,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// messageEnvelope mirrors the provider's message resource.
type messageEnvelope struct {
	ID               string `json:"id"`
	ConversationID   string `json:"conversationId"`
	Subject          string `json:"subject"`
	ReceivedDateTime string `json:"receivedDateTime"`
	From             struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
	Body struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	BodyPreview string `json:"bodyPreview"`
}

type listResponse struct {
	Value []messageEnvelope `json:"value"`
}

// ListMessages returns inbox messages received at or after since, newest
// first, capped at limit.
func (c *Client) ListMessages(ctx context.Context, since time.Time, limit int) ([]inbound.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	filter := fmt.Sprintf("receivedDateTime ge %s", since.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf(
		"%s/users/%s/mailFolders/inbox/messages?$filter=%s&$top=%d&$orderby=receivedDateTime desc",
		c.baseURL, url.PathEscape(c.address), url.QueryEscape(filter), limit,
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode mailbox response: %w", err)
	}

	messages := make([]inbound.Message, 0, len(list.Value))
	for i := range list.Value {
		messages = append(messages, toDomain(&list.Value[i]))
	}
	return messages, nil
}

// GetMessage fetches a single message by provider id. Used by the reprocess
// endpoint.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*inbound.Message, error) {
	endpoint := fmt.Sprintf("%s/users/%s/messages/%s",
		c.baseURL, url.PathEscape(c.address), url.PathEscape(messageID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var env messageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode mailbox message: %w", err)
	}
	msg := toDomain(&env)
	return &msg, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create mailbox request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("mailbox service unreachable", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError("mailbox message not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("mailbox service returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mailbox response: %w", err)
	}
	return body, nil
}

func toDomain(env *messageEnvelope) inbound.Message {
	received, err := time.Parse(time.RFC3339, env.ReceivedDateTime)
	if err != nil {
		received = time.Now().UTC()
	}

	msg := inbound.Message{
		MessageID:      env.ID,
		ConversationID: env.ConversationID,
		Subject:        env.Subject,
		SenderName:     env.From.EmailAddress.Name,
		SenderEmail:    env.From.EmailAddress.Address,
		ReceivedAt:     received.UTC(),
	}
	if env.Body.ContentType == "html" {
		msg.BodyHTML = env.Body.Content
		msg.BodyText = env.BodyPreview
	} else {
		msg.BodyText = env.Body.Content
	}
	return msg
}
