package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transportdesk/lr-extractor/internal/llm"
	"github.com/transportdesk/lr-extractor/internal/notify"
)

// Reasoning-tuned model families reject sampling parameters; the temperature
// knob must be omitted for them rather than sent and bounced.
var reNoSampling = regexp.MustCompile(`(?i)gpt-5|o3|reasoning|reasoner`)

// Client talks to an OpenAI-compatible chat/completions endpoint. It
// implements llm.TextCompleter: failures never escape as errors, they are
// logged, reported to the notifier, and collapsed to empty text.
type Client struct {
	cfg      Config
	http     *http.Client
	logger   *slog.Logger
	notifier notify.Notifier
}

func NewClient(cfg Config, notifier notify.Notifier, logger *slog.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
		notifier: notifier,
	}
}

// SupportsSampling reports whether the configured model accepts a
// temperature parameter.
func (c *Client) SupportsSampling() bool {
	return !reNoSampling.MatchString(c.cfg.Model)
}

// Complete sends a prompt and returns the model's text output, or "" on any
// failure. Running without an API key is a valid degraded mode: every call
// returns empty text and the pipeline fails closed.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	if c.cfg.APIKey == "" {
		c.logger.Warn("llm.complete.no_api_key")
		return ""
	}

	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("llm.complete.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
		"sampling", c.SupportsSampling(),
	)

	body := map[string]any{
		"model":                 c.cfg.Model,
		"messages":              []map[string]any{{"role": "user", "content": prompt}},
		"max_completion_tokens": c.cfg.MaxOutputTokens,
	}
	if c.SupportsSampling() {
		body["temperature"] = 0
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.logger.Error("llm.complete.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		// fire-and-forget; the result never waits on alert delivery, and the
		// report survives a caller context that has already timed out
		go c.notifier.Report(context.WithoutCancel(ctx), "lr extractor: model call failed",
			fmt.Sprintf("Error calling model: %v\n\nPrompt snippet: %s", err, snippet(prompt, 800)))
		return ""
	}

	text := llm.DecodeResponseText(raw)
	if text == "" {
		c.logger.Warn("llm.complete.empty_text",
			"req_id", rid, "shape", int(llm.DetectShape(raw)), "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ""
	}

	c.logger.Info("llm.complete.ok",
		"req_id", rid, "text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			c.logger.Warn("openai response body close error", "error", cerr)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
