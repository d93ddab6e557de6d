package analyses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"smart-ats/internal/llm"
)

// Display fallbacks for fields the model left out.
const (
	FallbackMatchScore      = "N/A"
	FallbackMissingKeywords = "No missing keywords identified."
	FallbackProfileSummary  = "No profile summary available."
)

// Result is the model's verdict. Keyword order and duplicates are kept as the
// model returned them.
type Result struct {
	MatchScore      string   `json:"JD Match_score"`
	MissingKeywords []string `json:"Missing Keywords"`
	ProfileSummary  string   `json:"Profile Summary"`

	hasScore   bool
	hasSummary bool
}

// UnmarshalJSON accepts the three reply keys leniently: a numeric score is
// kept as its JSON text, and non-string list items are stringified. Keys may
// be missing, since the brace-span fallback is never validated.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{}

	if v, ok := raw[llm.KeyMatchScore]; ok {
		r.MatchScore = scalarText(v)
		r.hasScore = true
	}
	if v, ok := raw[llm.KeyMissingKeywords]; ok {
		keywords, err := keywordList(v)
		if err != nil {
			return fmt.Errorf("%s: %w", llm.KeyMissingKeywords, err)
		}
		r.MissingKeywords = keywords
	}
	if v, ok := raw[llm.KeyProfileSummary]; ok {
		r.ProfileSummary = scalarText(v)
		r.hasSummary = true
	}
	return nil
}

// Display holds the three fields as they are shown to the user.
type Display struct {
	MatchScore      string `json:"matchScore"`
	MissingKeywords string `json:"missingKeywords"`
	ProfileSummary  string `json:"profileSummary"`
}

// Display applies the output fallbacks.
func (r Result) Display() Display {
	d := Display{
		MatchScore:      r.MatchScore,
		MissingKeywords: strings.Join(r.MissingKeywords, ", "),
		ProfileSummary:  r.ProfileSummary,
	}
	if !r.hasScore {
		d.MatchScore = FallbackMatchScore
	}
	if len(r.MissingKeywords) == 0 {
		d.MissingKeywords = FallbackMissingKeywords
	}
	if !r.hasSummary {
		d.ProfileSummary = FallbackProfileSummary
	}
	return d
}

func scalarText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(v)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	return string(trimmed)
}

func keywordList(v json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(v)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("expected a list of strings")
		}
		if single == "" {
			return nil, nil
		}
		return []string{single}, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, scalarText(item))
	}
	return out, nil
}
