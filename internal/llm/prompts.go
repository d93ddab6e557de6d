package llm

import (
	_ "embed"
	"strings"

	"smart-ats/internal/shared/apperr"
)

// PromptStage prefixes errors returned by BuildPrompt.
const PromptStage = "failed to prepare prompt"

//go:embed prompts/ats_v1.txt
var atsPromptV1 string

// BuildPrompt fills the ATS evaluation template with the trimmed job
// description and resume text. Only empty inputs are rejected; surrounding
// whitespace is trimmed after the check. The template, including its JSON
// reply schema, is sent to the model verbatim.
func BuildPrompt(jobDescription, resumeText string) (string, error) {
	if jobDescription == "" || resumeText == "" {
		return "", apperr.Wrap(PromptStage, apperr.ErrValidation,
			apperr.New(apperr.ErrValidation, "Job description and resume text must be provided."))
	}

	// A Replacer scans the template once, so placeholder text inside the
	// inputs is never expanded.
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
		"{{RESUME_TEXT}}", strings.TrimSpace(resumeText),
	)
	return replacer.Replace(atsPromptV1), nil
}
