package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// Response holds the outcome of a successful generation call.
type Response struct {
	SQL   string
	Model string
}

// Client is the boundary to the external query-generation service. Its
// output is untrusted: callers must pass it through the same validation as
// template-rendered queries before execution.
type Client interface {
	// GenerateSQL sends the user text plus a schema summary and returns a
	// candidate SQL statement. The returned durations cover every attempt
	// made, including failed ones, so the pipeline can record them.
	GenerateSQL(ctx context.Context, text string, schema *domain.SchemaSummary) (*Response, []time.Duration, error)

	// Available checks whether the generation server is reachable.
	Available(ctx context.Context) bool
}

// ollamaClient implements Client against the Ollama HTTP API.
type ollamaClient struct {
	cfg      config.LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a Client that talks to an Ollama instance.
func NewOllamaClient(cfg config.LLMConfig, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate.
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) GenerateSQL(ctx context.Context, text string, schema *domain.SchemaSummary) (*Response, []time.Duration, error) {
	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: BuildSystemPrompt(schema),
		Prompt: text,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			NumPredict:  512,
		},
	}

	var attempts []time.Duration
	var lastErr error
	maxAttempts := 1 + c.cfg.MaxRetries

	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				return nil, attempts, ErrTimeout
			}
		}

		start := time.Now()
		resp, err := c.doRequest(ctx, body)
		elapsed := time.Since(start)
		attempts = append(attempts, elapsed)

		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			Attempt:   i + 1,
			LatencyMs: elapsed.Milliseconds(),
			Success:   err == nil,
			ErrorCode: errorCode(err),
		})

		if err == nil {
			sql, ok := ExtractSQL(resp.Response)
			if !ok {
				lastErr = ErrEmptyOutput
				continue
			}
			return &Response{SQL: sql, Model: resp.Model}, attempts, nil
		}
		lastErr = err

		// The outer context expiring means the whole stage is out of
		// time; retrying cannot help.
		if ctx.Err() != nil {
			break
		}
	}

	if isTimeout(lastErr) || ctx.Err() != nil {
		return nil, attempts, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, attempts, ErrUnavailable
	}
	return nil, attempts, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation server returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
