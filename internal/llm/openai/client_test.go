package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureNotifier collects report subjects on a channel; the client fires
// reports on their own goroutine, so tests rendezvous through it.
type captureNotifier struct {
	subjects chan string
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{subjects: make(chan string, 8)}
}

func (n *captureNotifier) Report(ctx context.Context, subject, _ string) bool {
	n.subjects <- subject
	return ctx.Err() == nil
}

func (n *captureNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case s := <-n.subjects:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no notifier report arrived")
		return ""
	}
}

func TestComplete_ChatResponse(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"to\":\"Nagpur\"}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o"}, nil, nil)
	text := c.Complete(context.Background(), "extract this")

	assert.Equal(t, `{"to":"Nagpur"}`, text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotBody["model"])
	assert.Contains(t, gotBody, "temperature")
}

func TestComplete_ReasoningModelOmitsTemperature(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		_, _ = w.Write([]byte(`{"output_text":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "o3-mini"}, nil, nil)
	text := c.Complete(context.Background(), "extract this")

	assert.Equal(t, "ok", text)
	assert.NotContains(t, gotBody, "temperature")
}

func TestComplete_ServerErrorReportsAndReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream on fire", http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := newCaptureNotifier()
	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, notifier, nil)
	text := c.Complete(context.Background(), "extract this")

	assert.Empty(t, text)
	assert.Contains(t, notifier.wait(t), "model call failed")
}

func TestComplete_NoAPIKeyDegradesToEmpty(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	notifier := newCaptureNotifier()
	c := NewClient(Config{}, notifier, nil)
	text := c.Complete(context.Background(), "extract this")

	assert.Empty(t, text)
	select {
	case s := <-notifier.subjects:
		t.Fatalf("unexpected notifier report: %q", s)
	default:
	}
}

func TestSupportsSampling(t *testing.T) {
	tests := []struct {
		model    string
		expected bool
	}{
		{model: "gpt-4o", expected: true},
		{model: "gpt-5-mini", expected: false},
		{model: "o3", expected: false},
		{model: "deepseek-reasoner", expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := NewClient(Config{APIKey: "k", Model: tt.model}, nil, nil)
			assert.Equal(t, tt.expected, c.SupportsSampling())
		})
	}
}
