package notify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxContextBytes caps the alert body before sending; WhatsApp rejects
// oversized text messages.
const maxContextBytes = 3800

// Config for the WhatsApp Cloud API notifier.
type Config struct {
	PhoneNumberID string        // sending phone number id
	Token         string        // Graph API bearer token
	Recipient     string        // operator number, international format
	BaseURL       string        // default https://graph.facebook.com/v19.0
	Timeout       time.Duration // http client timeout
}

// WhatsApp sends operator alerts through the WhatsApp Cloud (Graph) API.
type WhatsApp struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

func NewWhatsApp(cfg Config, logger *slog.Logger) *WhatsApp {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WhatsApp{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Configured reports whether credentials are present. An unconfigured
// notifier still satisfies the interface; Report just warns and returns false.
func (w *WhatsApp) Configured() bool {
	return w.cfg.PhoneNumberID != "" && w.cfg.Token != "" && w.cfg.Recipient != ""
}

// Report delivers subject+detail to the operator number, truncated to the
// message cap. It never returns an error; failures are logged and swallowed.
func (w *WhatsApp) Report(ctx context.Context, subject, detail string) bool {
	if !w.Configured() {
		w.logger.Warn("notify.whatsapp.unconfigured", "subject", subject)
		return false
	}

	body := subject + "\n\n" + detail
	if len(body) > maxContextBytes {
		body = truncateUTF8(body, maxContextBytes)
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                w.cfg.Recipient,
		"text":              map[string]any{"body": body},
	}
	url := strings.TrimRight(w.cfg.BaseURL, "/") + "/" + w.cfg.PhoneNumberID + "/messages"
	headers := map[string]string{"Authorization": "Bearer " + w.cfg.Token}

	_, status, err := sendJSON(ctx, w.client, url, payload, headers, w.logger)
	if err != nil {
		w.logger.Error("notify.whatsapp.send_failed", "subject", subject, "status", status, "error", err)
		return false
	}
	w.logger.Info("notify.whatsapp.sent", "subject", subject, "to", w.cfg.Recipient)
	return true
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
