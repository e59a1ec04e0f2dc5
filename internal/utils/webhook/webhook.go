package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

// Client pings an uptime monitor after background jobs succeed.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
}

func New(logger *logger.Logger, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Ping sends a GET to webhookURL. An empty URL is a no-op.
func (c *Client) Ping(ctx context.Context, webhookURL string) error {
	if webhookURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, webhookURL, nil)
	if err != nil {
		return errors.Wrap(err, "build uptime webhook request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "call uptime webhook")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("uptime webhook answered %s", resp.Status)
	}
	return nil
}

// Heartbeat runs job and pings webhookURL only when it succeeds. A failed
// ping is logged and does not fail the job.
func (c *Client) Heartbeat(jobName, webhookURL string, job func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := job(ctx); err != nil {
			return err
		}
		if err := c.Ping(ctx, webhookURL); err != nil {
			c.logger.Warn("[Heartbeat][Ping] uptime webhook failed", map[string]string{
				"job_name": jobName,
				"error":    err.Error(),
			})
		}
		return nil
	}
}
