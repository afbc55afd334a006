package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	domainerrors "github.com/16SULPHUR/courseify/contexts/media/upload-service/domain/errors"
)

// Client posts files to the external image host: multipart form, single
// field named "file". The host normally answers JSON ({"url": ...} on
// success, {"error": ...} on failure) but older deployments answer with a
// bare URL in plain text, which is still accepted.
type Client struct {
	endpoint string
	httpc    *http.Client
	logger   *slog.Logger
}

func New(endpoint string, httpc *http.Client, logger *slog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, httpc: httpc, logger: logger}
}

func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "could not build upload payload")
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "could not read the file")
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "could not build upload payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "invalid upload endpoint")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("image host unreachable",
			"event", "upload_transport_error",
			"module", "media/upload-service",
			"layer", "adapter",
			"error", err.Error(),
		)
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "image host unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "could not read the image host response")
	}
	return parseResponse(resp.StatusCode, raw)
}

func parseResponse(statusCode int, raw []byte) (string, error) {
	var parsed struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.URL != "" {
			return parsed.URL, nil
		}
		if parsed.Error != "" {
			return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, parsed.Error)
		}
	}

	// Legacy hosts answer with the bare URL as plain text.
	if text := strings.TrimSpace(string(raw)); strings.HasPrefix(text, "http") && statusCode < 400 {
		return text, nil
	}

	if statusCode >= 400 {
		return "", fmt.Errorf("%w: image host returned status %d", domainerrors.ErrUpload, statusCode)
	}
	return "", fmt.Errorf("%w: %s", domainerrors.ErrUpload, "invalid response from server")
}
