package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/jobcatalog-backend/internal/platform/httpx"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

// Client talks to an Ollama-compatible inference server. It is the boundary to
// the external model backends: callers are expected to treat every error as a
// recoverable outage and substitute their own fallback values.
type Client interface {
	// Generate runs a non-streamed completion. format is either the literal
	// "json" or a JSON schema map constraining the output.
	Generate(ctx context.Context, system, prompt string, format any) (string, error)

	// Embed returns the embedding of text under the given model.
	Embed(ctx context.Context, model, text string) ([]float64, error)

	// Model reports the generation model the client was configured with.
	Model() string
}

// knownModels is the allow-list of generation models the deployment carries.
// A configured model outside the list falls back to the first entry so runs
// stay reproducible.
var knownModels = []string{"phi4", "qwen2.5:0.5b", "llama3.2:1b", "gemma3:1b"}

type client struct {
	log        *logger.Logger
	baseURL    string
	model      string
	keepAlive  int
	httpClient *http.Client
	maxRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("ollama: logger required")
	}

	baseURL := strings.TrimSpace(os.Getenv("OLLAMA_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("OLLAMA_MODEL"))
	if model == "" {
		model = knownModels[0]
	}
	if !isKnownModel(model) {
		log.Warn("Unknown generation model, using default", "model", model, "default", knownModels[0])
		model = knownModels[0]
	}

	timeoutSec := 120
	if v := strings.TrimSpace(os.Getenv("OLLAMA_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 2
	if v := strings.TrimSpace(os.Getenv("OLLAMA_MAX_RETRIES")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &client{
		log:        log.With("client", "Ollama"),
		baseURL:    baseURL,
		model:      model,
		keepAlive:  10,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

func isKnownModel(model string) bool {
	for _, m := range knownModels {
		if strings.EqualFold(m, model) {
			return true
		}
	}
	return false
}

func (c *client) Model() string { return c.model }

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("ollama http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := 1 * time.Second
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("ollama decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)
		c.log.Warn("Ollama request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

type generateRequest struct {
	Model     string `json:"model"`
	Stream    bool   `json:"stream"`
	KeepAlive int    `json:"keep_alive,omitempty"`
	System    string `json:"system,omitempty"`
	Prompt    string `json:"prompt"`
	Format    any    `json:"format,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *client) Generate(ctx context.Context, system, prompt string, format any) (string, error) {
	req := generateRequest{
		Model:     c.model,
		Stream:    false,
		KeepAlive: c.keepAlive,
		System:    system,
		Prompt:    prompt,
		Format:    format,
	}
	var resp generateResponse
	if err := c.do(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (c *client) Embed(ctx context.Context, model, text string) ([]float64, error) {
	if strings.TrimSpace(model) == "" {
		model = c.model
	}
	var resp embedResponse
	if err := c.do(ctx, "/api/embeddings", embedRequest{Model: model, Prompt: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}
