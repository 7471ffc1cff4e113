package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPrompt = "Generate a 20-question multiple-choice quiz for Computer Science students applying for a job. " +
		"The quiz should include analytical, math, CS basics, and programming fundamentals questions. " +
		"Provide the questions in a numbered list format."
	DefaultMaxTokens = 500
)

// ErrUpstream wraps every failure to obtain a quiz from the provider.
var ErrUpstream = errors.New("quiz provider unavailable")

// Client for the text-generation API
type Client struct {
	endpoint    string
	apiKey      string
	httpClient  *http.Client
	logger      *zap.Logger
	userAgent   string
	maxAttempts int
	backoff     time.Duration
}

func New(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:      logger,
		userAgent:   "Recruit-Platform/1.0",
		maxAttempts: 2,
		backoff:     time.Second,
	}
}

// GenerateQuiz asks the provider for a quiz and returns its text as-is.
// A response without choices yields "".
func (c *Client) GenerateQuiz(ctx context.Context) (string, error) {
	payload, err := json.Marshal(GenerateRequest{
		Prompt:    DefaultPrompt,
		MaxTokens: DefaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	data, err := c.doRequest(ctx, payload)
	if err != nil {
		c.logger.Error("failed to generate quiz", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var response GenerateResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Error("failed to parse generate response", zap.Error(err))
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrUpstream, err)
	}

	if len(response.Choices) == 0 {
		c.logger.Warn("quiz provider returned no choices")
		return "", nil
	}

	c.logger.Debug("quiz generated", zap.Int("length", len(response.Choices[0].Text)))

	return response.Choices[0].Text, nil
}

// doRequest POSTs the payload, retrying transport errors, 429 and 5xx.
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * c.backoff
			c.logger.Debug("retrying request",
				zap.String("url", c.endpoint),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("successful request",
				zap.String("url", c.endpoint),
				zap.Int("status", resp.StatusCode),
			)
			return body, nil
		}

		c.logger.Error("API error",
			zap.String("url", c.endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		var apiErr ErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}
