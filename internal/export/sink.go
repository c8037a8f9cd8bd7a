package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
)

// DefaultFileName is the name used when saving to a directory
const DefaultFileName = "scene.json"

// Sink receives a serialized document and returns a human-readable
// acknowledgement.
type Sink interface {
	Deliver(ctx context.Context, doc []byte) (string, error)
}

// FileSink writes the document to a local file
type FileSink struct {
	Path string
}

// Deliver writes doc to the sink path. A directory path gets scene.json
// appended.
func (s FileSink) Deliver(ctx context.Context, doc []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.Path
	if path == "" {
		path = DefaultFileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return fmt.Sprintf("Scene written to %s", path), nil
}

// HTTPSink posts the document to <BaseURL>/save
type HTTPSink struct {
	BaseURL string
	Timeout time.Duration
	Client  *client.Client
}

// NewHTTPSink creates a sink for the given endpoint base URL
func NewHTTPSink(baseURL string) *HTTPSink {
	return &HTTPSink{BaseURL: baseURL, Timeout: 10 * time.Second}
}

// Deliver posts doc as JSON and returns the plain-text response body.
// Any non-2xx status is an error; nothing is retried.
func (s *HTTPSink) Deliver(ctx context.Context, doc []byte) (string, error) {
	c := s.Client
	if c == nil {
		c = client.New()
	}
	url := strings.TrimRight(s.BaseURL, "/") + "/save"

	resp, err := c.Post(url, client.Config{
		Ctx:     ctx,
		Timeout: s.Timeout,
		Body:    json.RawMessage(doc),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save scene to %s: %w", url, err)
	}
	defer resp.Close()

	ack := strings.TrimSpace(resp.String())
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return "", fmt.Errorf("failed to save scene to %s: status %d: %s", url, status, ack)
	}
	return ack, nil
}
