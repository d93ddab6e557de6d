package llm

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"smart-ats/internal/shared/apperr"
	"smart-ats/internal/shared/telemetry"
	"smart-ats/internal/shared/util"
)

// ClientStage prefixes errors returned by Client.Analyze.
const ClientStage = "failed to get response from Google Generative AI"

// jsonSpan is greedy: it spans the first '{' to the last '}' in the reply.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// Client turns a prompt into JSON text shaped like the ATS reply schema.
type Client struct {
	gen   Generator
	model string
}

// NewClient wraps gen. model is used for logging only.
func NewClient(gen Generator, model string) *Client {
	return &Client{gen: gen, model: model}
}

// Analyze sends prompt to the model and returns its reply as JSON text.
//
// A reply that parses as JSON must carry every key in RequiredKeys and is
// returned unchanged. A reply that does not parse is scanned for a
// brace-delimited span, which is returned without further validation.
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", apperr.Wrap(ClientStage, apperr.ErrRemote,
			apperr.New(apperr.ErrValidation, "Prompt must be provided."))
	}
	if c == nil || c.gen == nil {
		return "", apperr.Wrap(ClientStage, apperr.ErrRemote, errors.New("model client is not configured"))
	}

	start := time.Now()
	state := StateSending
	fields := map[string]any{
		"model":       c.model,
		"prompt_hash": util.Fingerprint(prompt),
		"state":       state.String(),
	}
	telemetry.Info("llm.request", fields)

	reply, err := c.gen.Generate(ctx, prompt)
	if err == nil {
		reply, err = ParseReply(reply)
	}

	state = StateSucceeded
	if err != nil {
		state = StateFailed
	}
	fields["state"] = state.String()
	fields["duration_ms"] = float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		fields["err"] = err.Error()
		telemetry.Error("llm.response", fields)
		return "", apperr.Wrap(ClientStage, apperr.ErrRemote, err)
	}
	fields["reply_bytes"] = len(reply)
	telemetry.Info("llm.response", fields)
	return reply, nil
}

// ParseReply validates a raw model reply and returns the JSON text to decode.
func ParseReply(reply string) (string, error) {
	if reply == "" {
		return "", errors.New("No response received from the model.")
	}

	var parsed any
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		match := jsonSpan.FindString(reply)
		if match == "" {
			return "", errors.New("could not extract valid JSON response")
		}
		return match, nil
	}

	obj, _ := parsed.(map[string]any)
	for _, key := range RequiredKeys {
		if _, ok := obj[key]; !ok {
			return "", apperr.New(apperr.ErrValidation, "Response JSON is missing required field: "+key)
		}
	}
	return reply, nil
}
