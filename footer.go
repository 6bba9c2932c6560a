package vitrina

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	nt "vitrina/entity"
)

// Footer carries what the footer shows about the current view.
type Footer struct {
	Position  int
	Count     int
	Total     int
	Search    string
	Searching bool
	Filters   int
	Sort      *nt.Sort
	Source    string
}

// RenderFooter renders a footer with metadata about the table.
func RenderFooter(ftr Footer, width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	parts := []string{fmt.Sprintf("%d/%d of %d", ftr.Position, ftr.Count, ftr.Total)}
	if ftr.Sort != nil {
		parts = append(parts, fmt.Sprintf("sort %s %s", ftr.Sort.Field, ftr.Sort.Dir))
	}
	if ftr.Filters > 0 {
		parts = append(parts, fmt.Sprintf("%d filtered", ftr.Filters))
	}
	if ftr.Searching || ftr.Search != "" {
		search := "/" + ftr.Search
		if ftr.Searching {
			search += "▏"
		}
		parts = append(parts, search)
	}

	left := strings.Join(parts, "  ")
	right := ftr.Source

	// Calculate padding
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	footer := style.Render(left + strings.Repeat(" ", padding) + right)
	return footer
}
