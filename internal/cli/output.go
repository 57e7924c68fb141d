package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/chambrid/jira-branch-checker/internal/check"
	"github.com/chambrid/jira-branch-checker/pkg/config"
)

// renderReport writes the final ticket report in the requested format.
func renderReport(w io.Writer, tickets []check.ResolvedTicket, format string) error {
	if format == config.FormatCSV {
		return renderCSV(w, tickets)
	}
	return renderTable(w, tickets)
}

// renderTable prints an aligned three-column report. Column widths follow
// the longest value so markers like "Error: HTTP 404" never truncate.
func renderTable(w io.Writer, tickets []check.ResolvedTicket) error {
	keyWidth := len("Ticket")
	statusWidth := len("Status")
	for _, t := range tickets {
		if len(t.Key) > keyWidth {
			keyWidth = len(t.Key)
		}
		if len(t.Status) > statusWidth {
			statusWidth = len(t.Status)
		}
	}

	if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s\n", keyWidth, "Ticket", statusWidth, "Status", "Link"); err != nil {
		return err
	}
	rule := fmt.Sprintf("%s  %s  %s",
		strings.Repeat("-", keyWidth), strings.Repeat("-", statusWidth), strings.Repeat("-", len("Link")))
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}

	for _, t := range tickets {
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s\n", keyWidth, t.Key, statusWidth, t.Status, t.Link); err != nil {
			return err
		}
	}
	return nil
}

// renderCSV emits the report as RFC 4180 CSV with a header row.
func renderCSV(w io.Writer, tickets []check.ResolvedTicket) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Ticket", "Status", "Link"}); err != nil {
		return err
	}
	for _, t := range tickets {
		if err := writer.Write([]string{t.Key, t.Status, t.Link}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
