package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"smart-ats/internal/extract"
	"smart-ats/internal/extract/extracttest"
	"smart-ats/internal/llm"
	"smart-ats/internal/shared/apperr"
	"smart-ats/internal/shared/telemetry"
)

const validReply = `{"JD Match_score": "45", "Missing Keywords": ["AWS"], "Profile Summary": "Strong Python skills but lacks cloud experience."}`

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func stubExtract(text string, err error) func(context.Context, []byte) (string, error) {
	return func(context.Context, []byte) (string, error) {
		return text, err
	}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(telemetry.SetLogger(zap.New(core)))
	return logs
}

func TestServiceAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{name: "missing job description", req: Request{Resume: []byte("%PDF")}, want: msgMissingJobDescription},
		{name: "missing resume", req: Request{JobDescription: "Go developer"}, want: msgMissingResume},
		{name: "both missing reports job description first", req: Request{}, want: msgMissingJobDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			svc := &Service{LLM: analyzer, ExtractText: stubExtract("text", nil)}

			_, err := svc.Analyze(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, apperr.ErrValidation)
			analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
		})
	}
}

func TestServiceAnalyzeSuccess(t *testing.T) {
	logs := observeLogs(t)
	analyzer := &mockAnalyzer{}
	analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Job Description: Seeking Go engineer") &&
			strings.Contains(prompt, "Resume :Gopher since 2015")
	})).Return(validReply, nil).Once()

	svc := &Service{LLM: analyzer, ExtractText: stubExtract("Gopher since 2015", nil)}
	ctx := WithRequestID(context.Background(), "req-1")

	analysis, err := svc.Analyze(ctx, Request{JobDescription: "Seeking Go engineer", Resume: []byte("%PDF")})
	require.NoError(t, err)
	analyzer.AssertExpectations(t)

	assert.JSONEq(t, validReply, string(analysis.Raw))
	assert.Equal(t, "45", analysis.Result.MatchScore)
	assert.Equal(t, []string{"AWS"}, analysis.Result.MissingKeywords)
	assert.Equal(t, "Strong Python skills but lacks cloud experience.", analysis.Result.ProfileSummary)

	completed := logs.FilterMessage("analysis.completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "Gopher since 2015", "resume text must not be logged")
			}
		}
	}
}

func TestServiceAnalyzeStopsAtExtraction(t *testing.T) {
	logs := observeLogs(t)
	analyzer := &mockAnalyzer{}
	extractErr := apperr.Wrap(extract.Stage, apperr.ErrExtraction,
		apperr.New(apperr.ErrExtraction, "PDF file is empty or has no readable pages."))
	svc := &Service{LLM: analyzer, ExtractText: stubExtract("", extractErr)}

	_, err := svc.Analyze(context.Background(), Request{JobDescription: "jd", Resume: []byte("x")})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), extract.Stage))
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)

	failed := logs.FilterMessage("analysis.failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "extract", failed[0].ContextMap()["stage"])
}

func TestServiceAnalyzePropagatesModelError(t *testing.T) {
	analyzer := &mockAnalyzer{}
	remote := apperr.Wrap(llm.ClientStage, apperr.ErrRemote, errors.New("quota exceeded"))
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return("", remote).Once()

	svc := &Service{LLM: analyzer, ExtractText: stubExtract("resume", nil)}
	_, err := svc.Analyze(context.Background(), Request{JobDescription: "jd", Resume: []byte("x")})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRemote)
	assert.Contains(t, err.Error(), "quota exceeded")
	analyzer.AssertNumberOfCalls(t, "Analyze", 1)
}

func TestServiceAnalyzeUnvalidatedFallbackUsesDisplayDefaults(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(`{"JD Match_score": "10"}`, nil).Once()

	svc := &Service{LLM: analyzer, ExtractText: stubExtract("resume", nil)}
	analysis, err := svc.Analyze(context.Background(), Request{JobDescription: "jd", Resume: []byte("x")})
	require.NoError(t, err)

	assert.Equal(t, Display{
		MatchScore:      "10",
		MissingKeywords: FallbackMissingKeywords,
		ProfileSummary:  FallbackProfileSummary,
	}, analysis.Result.Display())
}

func TestServiceAnalyzeDecodeFailure(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(`{"Missing Keywords": 5}`, nil).Once()

	svc := &Service{LLM: analyzer, ExtractText: stubExtract("resume", nil)}
	_, err := svc.Analyze(context.Background(), Request{JobDescription: "jd", Resume: []byte("x")})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), DecodeStage))
	assert.ErrorIs(t, err, apperr.ErrRemote)
}

func TestServiceAnalyzeWithoutModelClient(t *testing.T) {
	svc := &Service{ExtractText: stubExtract("resume", nil)}
	_, err := svc.Analyze(context.Background(), Request{JobDescription: "jd", Resume: []byte("x")})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfig)
}

func TestServiceAnalyzeEndToEndWithPDF(t *testing.T) {
	var seen string
	client := llm.NewClient(llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		seen = prompt
		return validReply, nil
	}), "test-model")
	svc := &Service{LLM: client}

	pdf := extracttest.PDF("Experienced Python developer, no cloud experience")
	analysis, err := svc.Analyze(context.Background(), Request{
		JobDescription: "Seeking Python engineer with AWS experience",
		Resume:         pdf,
	})
	require.NoError(t, err)

	assert.Contains(t, seen, "Job Description: Seeking Python engineer with AWS experience")
	assert.Contains(t, seen, "Python")
	assert.Equal(t, Display{
		MatchScore:      "45",
		MissingKeywords: "AWS",
		ProfileSummary:  "Strong Python skills but lacks cloud experience.",
	}, analysis.Result.Display())
}
