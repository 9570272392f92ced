// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/igegov/cv-portfolio/internal/jsonresume"
	"github.com/igegov/cv-portfolio/internal/links"
	"github.com/igegov/cv-portfolio/internal/schemas"
	"github.com/igegov/cv-portfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintExportSummary outputs section counts of a mapped resume.
func (p *Printer) PrintExportSummary(doc *types.JSONResume) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.Basics != nil {
		fmt.Fprintf(&sb, "Name:      %s\n", doc.Basics.Name)
		if doc.Basics.Label != "" {
			fmt.Fprintf(&sb, "Label:     %s\n", doc.Basics.Label)
		}
		fmt.Fprintf(&sb, "Profiles:  %d\n", len(doc.Basics.Profiles))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Work:      %d\n", len(doc.Work))
	fmt.Fprintf(&sb, "Education: %d\n", len(doc.Education))
	fmt.Fprintf(&sb, "Projects:  %d\n", len(doc.Projects))
	fmt.Fprintf(&sb, "Skills:    %d groups\n", len(doc.Skills))
	fmt.Fprintf(&sb, "Languages: %d", len(doc.Languages))

	p.printBox("JSON RESUME EXPORT", sb.String())
}

// PrintDroppedDates lists source dates the mapper could not normalize.
func (p *Printer) PrintDroppedDates(dropped []jsonresume.DroppedDate) {
	if len(dropped) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d date(s) omitted from the export:\n\n", len(dropped))
	count := min(len(dropped), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(&sb, "• %s = %q\n", dropped[i].Path, dropped[i].Value)
	}
	if len(dropped) > maxItemsToShow {
		fmt.Fprintf(&sb, "... and %d more\n", len(dropped)-maxItemsToShow)
	}

	p.printBox("UNPARSEABLE DATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the schema validation outcome.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(result schemas.Result) {
	if result.OK {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ SCHEMA VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d errors:\n\n", len(result.Errors))
	for i, e := range result.Errors {
		fmt.Fprintf(&sb, "⚠ %s", e)
		if i < len(result.Errors)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA ERRORS", sb.String())
}

// PrintLinkSummary outputs link check totals and the broken links.
func (p *Printer) PrintLinkSummary(s links.Summary) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Checked:  %d\n", s.Total)
	fmt.Fprintf(&sb, "Valid:    %d (%.1f%%)\n", s.Valid, s.ValidPercent)
	fmt.Fprintf(&sb, "Broken:   %d", s.Broken)

	if len(s.BrokenLines) > 0 {
		sb.WriteString("\n\n")
		count := min(len(s.BrokenLines), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "✗ %s\n", s.BrokenLines[i])
		}
		if len(s.BrokenLines) > maxItemsToShow {
			fmt.Fprintf(&sb, "... and %d more\n", len(s.BrokenLines)-maxItemsToShow)
		}
	}

	p.printBox("LINK CHECK", strings.TrimSuffix(sb.String(), "\n"))
}
