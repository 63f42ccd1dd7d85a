package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options configures the AI service client. All values are passed in
// explicitly; the client never reads the environment.
type Options struct {
	BaseURL string
	APIKey  string

	// Timeout bounds every call unless a per-call timeout below applies.
	Timeout        time.Duration
	ChatTimeout    time.Duration
	HistoryTimeout time.Duration
	HealthTimeout  time.Duration

	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	apiKey  string

	timeout        time.Duration
	chatTimeout    time.Duration
	historyTimeout time.Duration
	healthTimeout  time.Duration

	httpClient *http.Client
}

// New builds a client. An empty BaseURL yields a client whose calls all fail
// with ErrNotConfigured, so the rest of the app keeps working without AI.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		apiKey:         strings.TrimSpace(opts.APIKey),
		timeout:        timeout,
		chatTimeout:    orDefault(opts.ChatTimeout, timeout),
		historyTimeout: orDefault(opts.HistoryTimeout, 10*time.Second),
		healthTimeout:  orDefault(opts.HealthTimeout, 5*time.Second),
		httpClient:     hc,
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (c *Client) Configured() bool { return c != nil && c.baseURL != "" }

func (c *Client) BaseURL() string { return c.baseURL }

// GenerateQuiz forwards the request and returns the service's JSON untouched.
func (c *Client) GenerateQuiz(ctx context.Context, req QuizRequest) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, c.timeout, http.MethodPost, "/api/ai/generate-quiz", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*SummaryResponse, error) {
	var out SummaryResponse
	if err := c.doJSON(ctx, c.timeout, http.MethodPost, "/api/video-ai/summarize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AskQuestion(ctx context.Context, req QuestionRequest) (*AnswerResponse, error) {
	var out AnswerResponse
	if err := c.doJSON(ctx, c.timeout, http.MethodPost, "/api/video-ai/ask-question", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.doJSON(ctx, c.chatTimeout, http.MethodPost, "/api/chatbot/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChatHistory(ctx context.Context, sessionID string) (*ChatHistory, error) {
	var out ChatHistory
	path := "/api/chatbot/history/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, c.historyTimeout, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Messages == nil {
		out.Messages = []json.RawMessage{}
	}
	return &out, nil
}

func (c *Client) ClearConversation(ctx context.Context, sessionID string) error {
	path := "/api/chatbot/conversation/" + url.PathEscape(sessionID)
	return c.doJSON(ctx, c.historyTimeout, http.MethodDelete, path, nil, nil)
}

// Health calls one of the service's health endpoints (e.g. "/api/chatbot/health")
// and returns its body.
func (c *Client) Health(ctx context.Context, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, c.healthTimeout, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, timeout time.Duration, method string, path string, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		reader = &buf
	}

	ctx2 := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx2, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx2.Err(), context.DeadlineExceeded) {
			return &UnavailableError{Err: ErrTimeout}
		}
		return &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &UnavailableError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseHTTPError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
