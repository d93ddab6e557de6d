// Package gemini implements llm.Generator on the Google Gen AI SDK.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"smart-ats/internal/llm"
	"smart-ats/internal/shared/apperr"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gemini-1.5-flash"

const configureStage = "failed to configure Google Generative AI client"

// Options configures a Generator.
type Options struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty means the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// Generator sends prompts to a Gemini model.
type Generator struct {
	client *genai.Client
	model  string
}

// New constructs a Generator for the Gemini Developer API.
func New(ctx context.Context, opts Options) (*Generator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, apperr.Wrap(configureStage, apperr.ErrConfig,
			apperr.New(apperr.ErrConfig, "API key must be provided."))
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, apperr.Wrap(configureStage, apperr.ErrConfig, err)
	}
	return &Generator{client: client, model: model}, nil
}

// Model returns the model identifier requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate performs one GenerateContent call and returns the reply text.
// An empty string means the model produced no text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate model=%s: %w", g.model, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

var _ llm.Generator = (*Generator)(nil)
