package cssveil

import (
	"encoding/json"
	"io"
	"time"
)

// OutputFormat selects how a run result is rendered.
type OutputFormat int

const (
	// OutputText is the human-readable summary (default).
	OutputText OutputFormat = iota
	// OutputJSON is the machine-readable export.
	OutputJSON
)

// DetermineOutputFormat maps the config string to a format, defaulting to
// text for anything unrecognized.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	if formatFlag == "json" {
		return OutputJSON
	}
	return OutputText
}

// JSONOutput is the structured export schema for a run.
type JSONOutput struct {
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Summary   JSONSummary       `json:"summary"`
	Issues    []JSONIssue       `json:"issues"`
	Mapping   map[string]string `json:"mapping"`
}

// JSONSummary carries the run counters.
type JSONSummary struct {
	FilesScanned   int `json:"files_scanned"`
	FilesRewritten int `json:"files_rewritten"`
	FilesUnchanged int `json:"files_unchanged"`
	SelectorsFound int `json:"selectors_found"`
	Errors         int `json:"errors"`
	Warnings       int `json:"warnings"`
}

// JSONIssue is one per-file skip or failure.
type JSONIssue struct {
	File     string `json:"file"`
	Stage    string `json:"stage"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// WriteJSON writes the run result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	out := buildJSONOutput(result)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func buildJSONOutput(result *Result) JSONOutput {
	var errors, warnings int
	issues := make([]JSONIssue, len(result.Issues))
	for i, is := range result.Issues {
		switch is.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
		issues[i] = JSONIssue{
			File:     is.Path,
			Stage:    is.Stage,
			Severity: is.Severity,
			Message:  is.Text,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesScanned:   result.FilesScanned,
			FilesRewritten: result.FilesRewritten,
			FilesUnchanged: result.FilesUnchanged,
			SelectorsFound: result.SelectorsFound,
			Errors:         errors,
			Warnings:       warnings,
		},
		Issues:  issues,
		Mapping: result.Mapping,
	}
}
