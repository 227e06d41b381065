// Package report renders run results for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yacobolo/cssveil"
)

// Reporter formats engine results as linter-style issue lines plus a short
// summary block.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// New creates a reporter. When forceColor is false, color support is
// auto-detected from the environment.
func New(w io.Writer, forceColor bool) *Reporter {
	return &Reporter{w: w, useColors: forceColor || detectColors()}
}

// detectColors checks the usual signals for color-capable output.
func detectColors() bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if info, _ := os.Stdout.Stat(); info != nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintIssues writes one line per skipped or failed file, sorted by path.
func (r *Reporter) PrintIssues(issues []cssveil.FileIssue) {
	sorted := make([]cssveil.FileIssue, len(issues))
	copy(sorted, issues)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, is := range sorted {
		severity := styleWarn
		if is.Severity == cssveil.SeverityError {
			severity = styleError
		}
		fmt.Fprintf(r.w, "%s %s %s %s\n",
			render(styleHeader, is.Path+":", r.useColors),
			render(severity, is.Severity+":", r.useColors),
			is.Text,
			render(styleDim, "("+is.Stage+")", r.useColors))
	}
}

// PrintSummary writes the run counters.
func (r *Reporter) PrintSummary(result *cssveil.Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, render(styleHeader, "Run summary", r.useColors))
	fmt.Fprintf(r.w, "  Files scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "  Selectors mapped: %d\n", result.SelectorsFound)
	fmt.Fprintf(r.w, "  Files rewritten:  %d\n", result.FilesRewritten)
	fmt.Fprintf(r.w, "  Files unchanged:  %d\n", result.FilesUnchanged)

	if errs := result.Errors(); errs > 0 {
		fmt.Fprintf(r.w, "  %s\n",
			render(styleError, fmt.Sprintf("Failures: %d file(s) could not be written", errs), r.useColors))
	} else if len(result.Issues) > 0 {
		fmt.Fprintf(r.w, "  %s\n",
			render(styleWarn, fmt.Sprintf("Skipped: %d file(s), see above", len(result.Issues)), r.useColors))
	} else {
		fmt.Fprintf(r.w, "  %s\n", render(styleOK, "All files processed", r.useColors))
	}
}

// PrintMapping writes the original -> replacement table, sorted by original
// name. Used by the dry-run command.
func (r *Reporter) PrintMapping(mapping cssveil.Mapping) {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintln(r.w, render(styleHeader, "Selector mapping", r.useColors))
	for _, name := range names {
		fmt.Fprintf(r.w, "  %-*s -> %s\n", width, name, mapping[name])
	}
}
