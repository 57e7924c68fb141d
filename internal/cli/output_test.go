package cli

import (
	"strings"
	"testing"

	"github.com/chambrid/jira-branch-checker/internal/check"
	"github.com/chambrid/jira-branch-checker/pkg/config"
)

func sampleTickets() []check.ResolvedTicket {
	return []check.ResolvedTicket{
		{Key: "PROJ-12", Status: "Closed: Fixed", Link: "https://jira.example.com/browse/PROJ-12"},
		{Key: "PROJ-9", Status: "Done", Link: "https://jira.example.com/browse/PROJ-9"},
		{Key: "ABC-404", Status: "Error: HTTP 404", Link: "https://jira.example.com/browse/ABC-404"},
	}
}

func TestRenderTable_AlignedColumns(t *testing.T) {
	var buf strings.Builder
	if err := renderTable(&buf, sampleTickets()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, rule, and 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[0], "Ticket") {
		t.Errorf("expected header line, got %q", lines[0])
	}

	// The link column must start at the same offset in every row.
	wantCol := strings.Index(lines[0], "Link")
	for _, line := range lines[2:] {
		col := strings.Index(line, "https://")
		if col != wantCol {
			t.Errorf("misaligned link column in %q: got offset %d, want %d", line, col, wantCol)
		}
	}

	if !strings.Contains(buf.String(), "Error: HTTP 404") {
		t.Error("expected error marker to appear verbatim in the table")
	}
}

func TestRenderTable_EmptyReport(t *testing.T) {
	var buf strings.Builder
	if err := renderTable(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected only header and rule for an empty report, got %d lines", len(lines))
	}
}

func TestRenderCSV(t *testing.T) {
	var buf strings.Builder
	if err := renderCSV(&buf, sampleTickets()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
	}

	if lines[0] != "Ticket,Status,Link" {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
	if lines[1] != "PROJ-12,Closed: Fixed,https://jira.example.com/browse/PROJ-12" {
		t.Errorf("unexpected first CSV row: %q", lines[1])
	}
}

func TestRenderReport_FormatSelection(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantHeader string
	}{
		{"csv format", config.FormatCSV, "Ticket,Status,Link"},
		{"table format", config.FormatTable, "Ticket "},
		{"anything else falls back to table", "", "Ticket "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			if err := renderReport(&buf, sampleTickets(), tt.format); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.wantHeader) {
				t.Errorf("format %q: output starts with %q, want prefix %q",
					tt.format, buf.String()[:20], tt.wantHeader)
			}
		})
	}
}
