package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/transportdesk/lr-extractor/internal/llm"
	"github.com/transportdesk/lr-extractor/internal/notify"
)

var errEmptyModelText = errors.New("model returned empty text")

// Config holds behavior knobs for the extraction orchestrator.
type Config struct {
	Retries int // attempts per extraction call, minimum 1
}

// Extractor runs the full pipeline: prompt, model call, lenient JSON
// recovery, schema check, deterministic post-processing. It retries failed
// attempts with a stronger prompt and fails closed to an all-empty record
// when every attempt is spent. It never returns an error to its caller.
type Extractor struct {
	logger   *slog.Logger
	cfg      Config
	model    llm.TextCompleter
	notifier notify.Notifier
	schema   map[string]any
}

func NewExtractor(cfg Config, model llm.TextCompleter, notifier notify.Notifier, logger *slog.Logger) *Extractor {
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger:   logger,
		cfg:      cfg,
		model:    model,
		notifier: notifier,
		schema:   llm.BuildShipmentJSONSchema(),
	}
}

// Extract produces a shipment record for one raw message. An empty message
// short-circuits to an all-empty record with no model call; exhausted or
// panicking extractions also return the all-empty record, so callers always
// receive a well-formed value.
func (e *Extractor) Extract(ctx context.Context, message string) (result ShipmentFields) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.internal_error", "recovered", r)
			e.report(ctx, "lr extractor: internal error",
				fmt.Sprintf("panic: %v\n\nMessage snippet: %s", r, snippet(message, 1200)))
			result = ShipmentFields{}
		}
	}()

	if strings.TrimSpace(message) == "" {
		return ShipmentFields{}
	}

	callID := uuid.New().String()
	e.logger.Info("extract.start", "call_id", callID, "message_len", len(message))

	attempt := 0
	fields, err := retry.DoWithData(
		func() (ShipmentFields, error) {
			attempt++
			return e.attempt(ctx, callID, message, attempt)
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.cfg.Retries)),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		e.logger.Warn("extract.exhausted", "call_id", callID, "attempts", attempt, "error", err)
		e.report(ctx, "lr extractor: extraction attempts exhausted",
			fmt.Sprintf("Last error: %v\n\nMessage snippet: %s", err, snippet(message, 1200)))
		return ShipmentFields{}
	}

	e.logger.Info("extract.ok",
		"call_id", callID, "attempt", attempt,
		"truck", fields.TruckNumber, "from", fields.From, "to", fields.To,
		"weight", fields.Weight, "description", fields.Description,
	)
	return fields
}

// report dispatches a notifier call without awaiting it. The caller's context
// may already be cancelled when extraction fails, so delivery runs on a
// detached copy.
func (e *Extractor) report(ctx context.Context, subject, detail string) {
	go e.notifier.Report(context.WithoutCancel(ctx), subject, detail)
}

// IsComplete extracts the message and reports whether all four mandatory
// fields came back non-empty.
func (e *Extractor) IsComplete(ctx context.Context, message string) bool {
	return e.Extract(ctx, message).IsComplete()
}

// attempt runs one full pipeline pass. Each pass builds its result from
// scratch; nothing carries over between attempts except the counter.
func (e *Extractor) attempt(ctx context.Context, callID, message string, n int) (ShipmentFields, error) {
	prompt := llm.BuildExtractionPrompt(message, n)

	text := e.model.Complete(ctx, prompt)
	if text == "" {
		e.logger.Warn("extract.empty_model_text", "call_id", callID, "attempt", n)
		return ShipmentFields{}, errEmptyModelText
	}

	doc, err := llm.RecoverJSONObject(text)
	if err != nil {
		e.logger.Warn("extract.unparseable_output", "call_id", callID, "attempt", n, "text_len", len(text))
		return ShipmentFields{}, err
	}

	// strict check first, lenient sanitize as the fallback
	if err := llm.ValidateJSONAgainstSchema(e.schema, doc); err != nil {
		cleaned, adjusted, sErr := llm.SanitizeShipmentJSON(doc, e.logger)
		if sErr != nil {
			return ShipmentFields{}, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(e.schema, cleaned); vErr != nil {
			return ShipmentFields{}, fmt.Errorf("schema validation failed: %w", vErr)
		}
		e.logger.Debug("extract.lenient_sanitize_applied", "call_id", callID, "attempt", n, "adjusted", adjusted)
		doc = cleaned
	}

	var provisional ShipmentFields
	if err := json.Unmarshal(doc, &provisional); err != nil {
		return ShipmentFields{}, fmt.Errorf("unmarshal fields: %w", err)
	}

	return PostProcess(provisional, message, e.logger), nil
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
