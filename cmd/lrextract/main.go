package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/transportdesk/lr-extractor/internal/common"
	"github.com/transportdesk/lr-extractor/internal/extract"
	"github.com/transportdesk/lr-extractor/internal/llm/openai"
	"github.com/transportdesk/lr-extractor/internal/notify"
)

// lrextract runs the extraction pipeline once for a message given as an
// argument (or on stdin) and prints the resulting record as JSON. Exit code 1
// means extraction failed or came back incomplete.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	message := strings.Join(os.Args[1:], " ")
	if strings.TrimSpace(message) == "" {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("read stdin", "error", err)
			os.Exit(2)
		}
		message = string(in)
	}
	if strings.TrimSpace(message) == "" {
		fmt.Fprintln(os.Stderr, "usage: lrextract <message>  (or pipe the message on stdin)")
		os.Exit(2)
	}

	cfg := common.LoadConfig()

	model := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, notify.Nop{}, logger)

	extractor := extract.NewExtractor(extract.Config{Retries: cfg.LLM.Retries}, model, notify.Nop{}, logger)
	fields := extractor.Extract(context.Background(), message)

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !fields.IsComplete() {
		os.Exit(1)
	}
}
