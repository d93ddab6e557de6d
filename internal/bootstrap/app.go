package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"smart-ats/internal/analyses"
	"smart-ats/internal/llm"
	"smart-ats/internal/llm/gemini"
	"smart-ats/internal/shared/config"
	"smart-ats/internal/shared/server"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	AnalysesService *analyses.Service
}

// Build validates cfg and wires the analysis pipeline onto Gemini. A missing
// API key is returned as a configuration error.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := gemini.New(ctx, gemini.Options{
		APIKey:  cfg.GoogleAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("build gemini generator: %w", err)
	}

	return BuildWithGenerator(cfg, gen, gen.Model()), nil
}

// BuildWithGenerator wires the pipeline onto an existing generator.
func BuildWithGenerator(cfg config.Config, gen llm.Generator, model string) *App {
	svc := &analyses.Service{LLM: llm.NewClient(gen, model)}
	return &App{
		Config:          cfg,
		Router:          server.NewRouter(cfg, svc),
		AnalysesService: svc,
	}
}
