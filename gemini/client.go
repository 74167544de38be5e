// Package gemini wraps the Google generative-text REST API behind the two
// entry points the rest of the service needs: plain answer generation and
// structured blog-draft generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-pro"
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 3
	defaultBaseBackoff = 1 * time.Second
)

// Rate limiter defaults: 50 requests per minute.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// ErrGenerationFailed is the generic failure surfaced to callers when the
// provider errors. Callers decide whether it is fatal (preview, blog draft)
// or best-effort (answer on question create).
var ErrGenerationFailed = errors.New("failed to generate AI response")

// BlogDraft is the structured payload the provider must return for a
// blog-draft request. All three fields are required.
type BlogDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// Client generates text from the Gemini API.
type Client interface {
	GenerateAnswer(ctx context.Context, question string) (string, error)
	GenerateBlogDraft(ctx context.Context, question string, answers []string) (BlogDraft, error)
}

// Config carries the provider settings. APIKey is required.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type client struct {
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a Gemini client from the config.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		model:   model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		maxRetries: defaultMaxRetries,
	}, nil
}

// GenerateAnswer sends one legal question to the provider and returns the
// generated response text.
func (c *client) GenerateAnswer(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf("Legal Question: %s\n\nPlease provide a helpful legal response as an AI assistant. "+
		"Note that this is general information and not specific legal advice.", question)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return text, nil
}

// GenerateBlogDraft asks the provider for a blog post built from a question
// and its answers. The response must parse as a three-field JSON object;
// anything else is a hard failure with no fallback.
func (c *client) GenerateBlogDraft(ctx context.Context, question string, answers []string) (BlogDraft, error) {
	prompt := fmt.Sprintf(`Based on this legal question and answers, create a comprehensive blog post:

Question: %s

Answers: %s

Please create:
1. An SEO-friendly title
2. A comprehensive blog post with proper structure (introduction, main content with headings, conclusion)
3. A brief excerpt (2-3 sentences)

Format the response as JSON with keys: title, content, excerpt`, question, strings.Join(answers, "\n\n"))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return BlogDraft{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var draft BlogDraft
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &draft); err != nil {
		return BlogDraft{}, fmt.Errorf("malformed blog draft response: %w", err)
	}
	if draft.Title == "" || draft.Content == "" || draft.Excerpt == "" {
		return BlogDraft{}, fmt.Errorf("malformed blog draft response: missing title, content or excerpt")
	}
	return draft, nil
}

// generate runs one prompt through the provider with rate limiting and
// bounded retries on transient failures.
func (c *client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := defaultBaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := c.doRequest(ctx, req)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !isRetryable(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *client) doRequest(ctx context.Context, reqBody generateContentRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &apiError{statusCode: resp.StatusCode, body: string(respBody)}
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

type apiError struct {
	statusCode int
	body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.statusCode, e.body)
}

// isRetryable reports whether the error is a rate-limit or server-side
// failure worth another attempt.
func isRetryable(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.statusCode == http.StatusTooManyRequests || apiErr.statusCode >= 500
	}
	// Network-level errors are retryable, context errors are not.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// stripCodeFence unwraps a markdown-fenced JSON block, which the provider
// sometimes emits around structured output.
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

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}
