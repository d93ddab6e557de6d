package analyses

import (
	"context"
	"encoding/json"
	"time"

	"smart-ats/internal/extract"
	"smart-ats/internal/llm"
	"smart-ats/internal/shared/apperr"
	"smart-ats/internal/shared/metrics"
	"smart-ats/internal/shared/telemetry"
)

// Analyzer turns a prompt into the model's JSON text. *llm.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Request is one analyze invocation. Resume holds the uploaded PDF bytes; nil
// means nothing was uploaded.
type Request struct {
	JobDescription string
	Resume         []byte
	// FileName is the sanitized upload name, used only for logging.
	FileName       string
}

// Validate reports the first missing input.
func (r Request) Validate() error {
	if r.JobDescription == "" {
		return apperr.New(apperr.ErrValidation, msgMissingJobDescription)
	}
	if r.Resume == nil {
		return apperr.New(apperr.ErrValidation, msgMissingResume)
	}
	return nil
}

// Analysis is the outcome of a successful run.
type Analysis struct {
	// Raw is the JSON text returned by the model client.
	Raw    json.RawMessage
	Result Result
}

// Service runs extraction, prompt building and the model call in sequence.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	LLM         Analyzer
	// ExtractText defaults to extract.Text.
	ExtractText func(ctx context.Context, data []byte) (string, error)
}

// Analyze validates req and runs the pipeline once. Failures are returned
// with their stage label; nothing is retried.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	if err := req.Validate(); err != nil {
		return Analysis{}, err
	}

	start := time.Now()
	fields := map[string]any{
		"request_id":   requestIDFromContext(ctx),
		"jd_chars":     len(req.JobDescription),
		"resume_bytes": len(req.Resume),
	}
	if req.FileName != "" {
		fields["resume_file"] = req.FileName
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", fields)

	analysis, stage, err := s.run(ctx, req)
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	fields["duration_ms"] = metrics.SinceMillis(start)
	if err != nil {
		metrics.IncAnalysisFailed()
		fields["stage"] = stage
		fields["err"] = err.Error()
		telemetry.Error("analysis.failed", fields)
		return Analysis{}, err
	}

	metrics.IncAnalysisCompleted()
	fields["missing_keywords"] = len(analysis.Result.MissingKeywords)
	telemetry.Info("analysis.completed", fields)
	return analysis, nil
}

func (s *Service) run(ctx context.Context, req Request) (Analysis, string, error) {
	extractText := s.ExtractText
	if extractText == nil {
		extractText = extract.Text
	}

	resumeText, err := extractText(ctx, req.Resume)
	if err != nil {
		return Analysis{}, "extract", err
	}

	prompt, err := llm.BuildPrompt(req.JobDescription, resumeText)
	if err != nil {
		return Analysis{}, "prompt", err
	}

	if s.LLM == nil {
		return Analysis{}, "llm", apperr.Wrap(llm.ClientStage, apperr.ErrRemote,
			apperr.New(apperr.ErrConfig, "model client is not configured"))
	}
	raw, err := s.LLM.Analyze(ctx, prompt)
	if err != nil {
		return Analysis{}, "llm", err
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Analysis{}, "decode", apperr.Wrap(DecodeStage, apperr.ErrRemote, err)
	}
	return Analysis{Raw: json.RawMessage(raw), Result: result}, "", nil
}
