package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/pkg/log"

	"github.com/spf13/viper"
)

// Client is the JSON-over-HTTPS client for the upstream bundle backend. Every
// call takes a context so an abandoned dashboard session cancels its in-flight
// requests instead of relying on responses being silently dropped.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     log.Log
}

func NewClient(v *viper.Viper, logger log.Log) *Client {
	timeout := v.GetDuration("backend.timeout")
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(v.GetString("backend.base_url"), "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// APIError is a non-2xx upstream response. RowErrors carries the structured
// per-row validation list when the backend returns one.
type APIError struct {
	Status    int
	Message   string
	RowErrors []model.RowError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

type upstreamErrorBody struct {
	Message string           `json:"message"`
	Error   string           `json:"error"`
	Errors  []model.RowError `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("backend-client", err.Error(), method+" "+path, "")
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.asAPIError(resp.StatusCode, data, method, path)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.Log.Error("backend-client", "failed to decode response: "+err.Error(), method+" "+path, "")
			return err
		}
	}
	return nil
}

func (c *Client) asAPIError(status int, data []byte, method, path string) error {
	apiErr := &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}
	var parsed upstreamErrorBody
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else if parsed.Error != "" {
			apiErr.Message = parsed.Error
		}
		apiErr.RowErrors = parsed.Errors
	}
	c.Log.Error("backend-client", apiErr.Message, fmt.Sprintf("%s %s -> %d", method, path, status), "")
	return apiErr
}
