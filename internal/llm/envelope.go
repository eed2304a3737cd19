package llm

import (
	"encoding/json"
	"strings"
)

// Shape identifies which response envelope a provider used. Providers wrap
// the same text in structurally different layouts; the invoker must accept
// either without being told which API it is talking to.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeChat               // chat/completions: choices -> message -> content
	ShapeItems              // responses: output -> items -> content parts
)

type chatChoice struct {
	Message struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
	Text  string `json:"text"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type envelope struct {
	Choices    []chatChoice      `json:"choices"`
	Output     []json.RawMessage `json:"output"`
	OutputText string            `json:"output_text"`
}

// DetectShape inspects which envelope fields are present.
func DetectShape(raw []byte) Shape {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ShapeUnrecognized
	}
	switch {
	case len(env.Choices) > 0:
		return ShapeChat
	case len(env.Output) > 0 || env.OutputText != "":
		return ShapeItems
	default:
		return ShapeUnrecognized
	}
}

// DecodeResponseText extracts the first available text content from whichever
// envelope shape is present. Unrecognized payloads yield the empty string.
func DecodeResponseText(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}

	if len(env.Choices) > 0 {
		c := env.Choices[0]
		if txt := contentPartsText(c.Message.Content); txt != "" {
			return txt
		}
		if c.Text != "" {
			return c.Text
		}
		if c.Delta.Content != "" {
			return c.Delta.Content
		}
	}

	if len(env.Output) > 0 {
		var b strings.Builder
		for _, item := range env.Output {
			b.WriteString(outputItemText(item))
		}
		if b.Len() > 0 {
			return b.String()
		}
	}

	return env.OutputText
}

// outputItemText decodes one entry of the output array. Items arrive either
// as plain strings or as objects with a content field.
func outputItemText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var item struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return ""
	}
	return contentPartsText(item.Content)
}

// contentPartsText handles the content encodings both shapes use: a plain
// string, or an array whose parts are {text: ...} objects or bare strings.
func contentPartsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		var ps string
		if err := json.Unmarshal(p, &ps); err == nil {
			b.WriteString(ps)
			continue
		}
		var t struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(p, &t); err == nil {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
