package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	headerCell = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	bodyCell   = lipgloss.NewStyle().PaddingRight(2)
)

// printTable writes rows under a single rule below the headers.
func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	lipgloss.Fprintln(w, t.String())
}

// field is one "label: value" line of a detail view.
type field struct {
	label string
	value any
}

// printFields writes aligned label/value lines, skipping empty values.
func printFields(w io.Writer, fields ...field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}
	for _, f := range fields {
		if s := fmt.Sprint(f.value); s != "" {
			fmt.Fprintf(w, "%-*s  %s\n", width+1, f.label+":", s)
		}
	}
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
