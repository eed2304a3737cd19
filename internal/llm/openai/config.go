package openai

import (
	"os"
	"time"
)

// Config for the OpenAI-compatible completion client.
type Config struct {
	APIKey          string        // if empty, falls back to env OPENAI_API_KEY then GEMINI_API_KEY
	BaseURL         string        // default https://api.openai.com/v1
	Model           string        // e.g. "gpt-4o"
	Timeout         time.Duration // http client timeout
	MaxOutputTokens int           // completion budget per attempt
}

func (c Config) withDefaults() Config {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4o"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = 600
	}
	return c
}
