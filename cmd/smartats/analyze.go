package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"smart-ats/internal/analyses"
	"smart-ats/internal/bootstrap"
	"smart-ats/internal/shared/apperr"
	"smart-ats/internal/shared/config"
	"smart-ats/internal/shared/util"
)

type analyzeOptions struct {
	resumePath string
	jdPath     string
	model      string
	asJSON     bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis and print the match score, missing keywords and summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if opts.model != "" {
				cfg.LLMModel = opts.model
			}
			app, err := bootstrap.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), app.AnalysesService, &analyses.Guard{}, opts)
		},
	}
	cmd.Flags().StringVar(&opts.resumePath, "resume", "", "path to the resume PDF")
	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "path to a text file with the job description, or - for stdin")
	cmd.Flags().StringVar(&opts.model, "model", "", "Gemini model (overrides LLM_MODEL)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the raw result and display fields as JSON")
	return cmd
}

// runAnalyze reads the inputs, holds the busy flag for the duration of the run
// and writes the rendered result to out.
func runAnalyze(ctx context.Context, out io.Writer, svc *analyses.Service, guard *analyses.Guard, opts analyzeOptions) error {
	req, err := readRequest(opts)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	release, err := guard.Acquire()
	if err != nil {
		return err
	}
	defer release()

	analysis, err := svc.Analyze(ctx, req)
	if err != nil {
		return &analysisError{err: err}
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"result":  analysis.Raw,
			"display": analysis.Result.Display(),
		})
	}
	renderDisplay(out, analysis.Result.Display())
	return nil
}

func readRequest(opts analyzeOptions) (analyses.Request, error) {
	var req analyses.Request

	switch opts.jdPath {
	case "":
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return req, fmt.Errorf("read job description: %w", err)
		}
		req.JobDescription = string(data)
	default:
		data, err := os.ReadFile(opts.jdPath)
		if err != nil {
			return req, fmt.Errorf("read job description: %w", err)
		}
		req.JobDescription = string(data)
	}

	if opts.resumePath == "" {
		return req, nil
	}
	if !util.IsPDFName(opts.resumePath) {
		if req.JobDescription == "" {
			return req, nil
		}
		return req, apperr.New(apperr.ErrValidation, "Please upload a resume in PDF Format")
	}
	data, err := os.ReadFile(opts.resumePath)
	if err != nil {
		return req, fmt.Errorf("read resume: %w", err)
	}
	req.Resume = data
	req.FileName = filepath.Base(opts.resumePath)
	return req, nil
}

// analysisError marks a failure inside the pipeline, as opposed to bad input.
type analysisError struct {
	err error
}

func (e *analysisError) Error() string { return "Error during analysis: " + e.err.Error() }

func (e *analysisError) Unwrap() error { return e.err }
