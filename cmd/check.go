package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// BrokenLink is one link whose resolved route does not exist.
type BrokenLink struct {
	Href     string `json:"href"`
	Resolved string `json:"resolved"`
}

// FileReport holds the broken links of one content file, in scan order.
type FileReport struct {
	File  string       `json:"file"`
	Links []BrokenLink `json:"links"`
}

// CheckResult holds the outcome of a check run.
type CheckResult struct {
	State      string       `json:"state"`
	RouteCount int          `json:"route_count"`
	Files      []FileReport `json:"files"`
}

// BrokenCount returns the total number of broken links.
func (r *CheckResult) BrokenCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Links)
	}
	return n
}

// CheckRunner defines the interface for running a link check.
type CheckRunner interface {
	Check(ctx context.Context) (*CheckResult, error)
}

// ReportWriter persists a machine-readable check report.
type ReportWriter interface {
	WriteReport(ctx context.Context, data []byte) error
}

// ReportWriterFactory returns the ReportWriter for a --report path.
type ReportWriterFactory func(path string) ReportWriter

// BrokenLinksError is returned when check finds broken links.
type BrokenLinksError struct {
	Count int
}

// Error implements the error interface.
func (e *BrokenLinksError) Error() string {
	return fmt.Sprintf("%d %s found", e.Count, pluralLinks(e.Count))
}

// ExitCode returns the exit code for broken links (always 1).
func (e *BrokenLinksError) ExitCode() int {
	return 1
}

func pluralLinks(n int) string {
	if n == 1 {
		return "broken link"
	}
	return "broken links"
}

// checkJSONResponse is the JSON output structure for the check command.
type checkJSONResponse struct {
	*CheckResult
	Summary struct {
		Files  int `json:"files"`
		Broken int `json:"broken"`
	} `json:"summary"`
}

func newCheckJSONResponse(result *CheckResult) checkJSONResponse {
	if result.Files == nil {
		result.Files = []FileReport{}
	}
	out := checkJSONResponse{CheckResult: result}
	out.Summary.Files = len(result.Files)
	out.Summary.Broken = result.BrokenCount()
	return out
}

// formatCheckJSON writes the result as JSON to w.
func formatCheckJSON(w io.Writer, result *CheckResult) {
	writeJSON(w, newCheckJSONResponse(result))
}

// formatCheckHuman writes the result as the human-readable report to w.
func formatCheckHuman(w io.Writer, result *CheckResult) {
	broken := result.BrokenCount()
	if broken == 0 {
		fmt.Fprintf(w, "✓ All internal links valid (%d routes checked)\n", result.RouteCount)
		return
	}
	for _, f := range result.Files {
		fmt.Fprintf(w, "\n%s:\n", f.File)
		for _, l := range f.Links {
			fmt.Fprintf(w, "  %s → NOT FOUND", l.Href)
			if l.Resolved != l.Href {
				fmt.Fprintf(w, " (resolved: %s)", l.Resolved)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\n✗ %d %s found\n", broken, pluralLinks(broken))
}

// writeReportFile writes the JSON report through the writer for path.
func writeReportFile(ctx context.Context, newWriter ReportWriterFactory, path string, result *CheckResult) error {
	data, err := marshalReport(newCheckJSONResponse(result))
	if err != nil {
		return err
	}
	if err := newWriter(path).WriteReport(ctx, data); err != nil {
		return &ContextError{Op: "write report", Path: path, Err: err}
	}
	return nil
}

// runCheckAndReport runs the checker, formats the result as JSON or
// human-readable text and optionally writes a report file. It returns a
// BrokenLinksError if any link is broken.
func runCheckAndReport(cmd *cobra.Command, runner CheckRunner, newWriter ReportWriterFactory, jsonOutput bool, reportPath string) error {
	if runner == nil {
		return ErrNotConfigured
	}
	result, err := runner.Check(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		formatCheckJSON(cmd.OutOrStdout(), result)
	} else {
		formatCheckHuman(cmd.OutOrStdout(), result)
	}

	if reportPath != "" {
		if newWriter == nil {
			return ErrNotConfigured
		}
		if err := writeReportFile(cmd.Context(), newWriter, reportPath, result); err != nil {
			return err
		}
	}

	if n := result.BrokenCount(); n > 0 {
		return &BrokenLinksError{Count: n}
	}
	return nil
}

// NewCheckCmd creates the check command with the given runner.
func NewCheckCmd(runner CheckRunner, newWriter ReportWriterFactory) *cobra.Command {
	var jsonOutput bool
	var reportPath string

	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Validate every internal link in the site content",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckAndReport(cmd, runner, newWriter, jsonOutput, reportPath)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().StringVar(&reportPath, "report", "", "Also write the JSON report to `file`")

	return cmd
}
