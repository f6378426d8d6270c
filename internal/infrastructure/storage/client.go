// Package storage uploads ticket attachments to the object-storage service
// and returns public URLs.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
)

// allowedExtensions is the upload allowlist. Everything else is rejected
// before any bytes leave the process.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
	".txt":  true,
	".log":  true,
	".csv":  true,
	".xlsx": true,
	".docx": true,
	".zip":  true,
}

const maxUploadSize = 20 << 20 // 20 MiB

type Client struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

func NewClient(cfg *sharedconfig.StorageConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload streams the file to the storage service and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, size int64, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewValidationError(fmt.Sprintf("file type %q is not allowed", ext))
	}
	if size > maxUploadSize {
		return "", apperrors.NewValidationError("file exceeds the 20 MiB upload limit")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(content, maxUploadSize)); err != nil {
		return "", fmt.Errorf("buffer upload: %w", err)
	}
	if err := writer.WriteField("bucket", c.bucket); err != nil {
		return "", fmt.Errorf("write bucket field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("storage service unreachable", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apperrors.NewUpstreamError(
			fmt.Sprintf("storage service returned status %d", resp.StatusCode))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", apperrors.NewUpstreamError("storage service returned no URL")
	}
	return parsed.URL, nil
}
