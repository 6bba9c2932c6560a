package detail

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"vitrina/catalog"
	nt "vitrina/entity"
	"vitrina/style"
	"vitrina/view"
)

// DetailPanel shows every field of one vehicle, as a spec sheet or raw json.
type DetailPanel struct {
	schema *view.Schema[catalog.Vehicle]

	vehicle      *catalog.Vehicle
	raw          bool
	contentLines []string // Rendered content split into lines (cached)

	Width        int
	height       int
	ScrollOffset int // Line offset for scrolling content
}

func NewDetailPanel(sch *view.Schema[catalog.Vehicle]) DetailPanel {
	return DetailPanel{
		schema: sch,
	}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case VehicleMsg:
		pnl.vehicle = &msg.Vehicle
		pnl.ScrollOffset = 0
		pnl.computeContentLines()

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = 0

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			if pnl.ScrollOffset < pnl.maxScroll() {
				pnl.ScrollOffset++
			}

		case "J":
			pnl.raw = !pnl.raw
			pnl.ScrollOffset = 0
			pnl.computeContentLines()
		}
	}

	return pnl, nil
}

// View renders the visible portion of the content
func (pnl DetailPanel) View() string {
	if pnl.contentLines == nil {
		return "No vehicle selected"
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

// unexported

func (pnl DetailPanel) maxScroll() int {
	if pnl.height <= 0 || len(pnl.contentLines) <= pnl.height {
		return 0
	}
	return len(pnl.contentLines) - pnl.height
}

func (pnl *DetailPanel) computeContentLines() {

	if pnl.vehicle == nil {
		pnl.contentLines = nil
		return
	}

	if pnl.raw {
		pnl.contentLines = rawLines(*pnl.vehicle)
		return
	}
	pnl.contentLines = specLines(pnl.schema, *pnl.vehicle)
}

// specLines lists each schema field with its label padded to the widest
func specLines(sch *view.Schema[catalog.Vehicle], vcl catalog.Vehicle) []string {

	names := sch.Names()
	pad := 0
	for _, name := range names {
		pad = max(pad, len(name))
	}

	lines := []string{style.SortedStyle.Render(vcl.Title()), ""}
	for _, name := range names {
		field, _ := sch.Lookup(name)
		label := style.MutedStyle.Render(fmt.Sprintf("%-*s", pad, name))
		lines = append(lines, label+"  "+display(name, field.Get(vcl)))
	}

	if vcl.PurchasePrice != nil {
		label := style.MutedStyle.Render(fmt.Sprintf("%-*s", pad, "purchase_price"))
		lines = append(lines, label+"  "+catalog.FormatPrice(vcl.PurchasePrice))
	}

	return lines
}

func display(name string, val nt.Value) string {

	if val.IsNull() {
		return "—"
	}

	switch name {
	case "current_price":
		num, err := val.Float()
		if err == nil {
			return catalog.FormatPrice(&num)
		}
	case "profitability_percentage":
		num, err := val.Float()
		if err == nil {
			return fmt.Sprintf("%.1f%%", num)
		}
	}
	return val.String()
}

// rawLines renders the vehicle as indented json
func rawLines(vcl catalog.Vehicle) []string {

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(vcl)
	if err != nil {
		return []string{"Error pretty-printing JSON: " + err.Error()}
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	return strings.Split(content, "\n")
}
