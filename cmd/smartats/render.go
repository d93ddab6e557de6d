package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"smart-ats/internal/analyses"
)

func renderDisplay(w io.Writer, d analyses.Display) {
	heading := color.New(color.Bold, color.Underline)
	label := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w, heading.Sprint("Analysis Results"))
	fmt.Fprintln(w, strings.Repeat("═", 50))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("JD Match Score:"), scoreColor(d.MatchScore).Sprint(d.MatchScore))
	fmt.Fprintf(w, "%s %s\n", label.Sprint("Missing Keywords:"), d.MissingKeywords)
	fmt.Fprintln(w, label.Sprint("Profile Summary:"))
	fmt.Fprintln(w, d.ProfileSummary)
}

// scoreColor picks green for 75 and up, yellow for 50 and up, red below. Scores
// that are not a leading number are printed plain.
func scoreColor(score string) *color.Color {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(score), "%d", &n); err != nil {
		return color.New(color.Reset)
	}
	switch {
	case n >= 75:
		return color.New(color.FgGreen)
	case n >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
