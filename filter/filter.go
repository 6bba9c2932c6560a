package filter

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"vitrina/catalog"
	nt "vitrina/entity"
	"vitrina/style"
	"vitrina/view"
)

const dialogWidth = 60

// FilterPanel displays a modal dialog for toggling facet values
type FilterPanel struct {
	cursor int // Index into the flattened facet options

	width  int
	height int

	browser *view.Browser[catalog.Vehicle]

	ctx    context.Context
	logger nt.Logger
}

// option is one toggleable value of a facet field
type option struct {
	field string
	value string
}

func NewFilterPanel(ctx context.Context, browser *view.Browser[catalog.Vehicle], lgr nt.Logger) FilterPanel {
	return FilterPanel{
		browser: browser,
		ctx:     ctx,
		logger:  lgr,
	}
}

func (pnl FilterPanel) Update(msg tea.Msg) (FilterPanel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl FilterPanel) handleKey(msg tea.KeyPressMsg) (FilterPanel, tea.Cmd) {

	options := pnl.options()

	switch msg.String() {
	case "up", "k":
		if pnl.cursor > 0 {
			pnl.cursor--
		}

	case "down", "j":
		if pnl.cursor < len(options)-1 {
			pnl.cursor++
		}

	case "space", " ", "enter", "t":
		if pnl.cursor < len(options) {
			opt := options[pnl.cursor]
			pnl.browser.ToggleFilterValue(opt.field, opt.value)
			pnl.logger.Info(pnl.ctx, "toggled filter", "field", opt.field, "value", opt.value,
				"active", pnl.browser.IsActive(opt.field, opt.value))
		}

	case "x":
		pnl.browser.ClearFilters()
	}

	return pnl, nil
}

func (pnl FilterPanel) View() string {

	var content strings.Builder
	options := pnl.options()

	content.WriteString("Filters:\n")
	field := ""
	for i, opt := range options {
		if opt.field != field {
			field = opt.field
			content.WriteString("\n" + style.MutedStyle.Render(field) + "\n")
		}

		checked := " "
		if pnl.browser.IsActive(opt.field, opt.value) {
			checked = "x"
		}

		value := opt.value
		if checked == "x" {
			value = style.ActiveStyle.Render(value)
		}

		rowPrefix := "  "
		if i == pnl.cursor {
			rowPrefix = "> "
			value = style.CursorStyle.Render(opt.value)
		}

		content.WriteString(fmt.Sprintf("%s[%s] %s\n", rowPrefix, checked, value))
	}

	if len(options) == 0 {
		content.WriteString(style.MutedStyle.Render("  nothing to filter on") + "\n")
	}

	helpText := "space: toggle  ↑↓: move  x: clear filters  Esc: close"
	content.WriteString("\n" + style.MutedStyle.Render(helpText))

	// Create a bordered box
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(dialogWidth)

	dialog := dialogStyle.Render(content.String())

	// Center the dialog
	if pnl.width > 0 && pnl.height > 0 {
		return lipgloss.Place(pnl.width, pnl.height, lipgloss.Center, lipgloss.Center, dialog)
	}
	return dialog
}

// unexported

func (pnl FilterPanel) options() (options []option) {

	for _, field := range pnl.browser.Schema().Facets() {
		values, _ := pnl.browser.Facets(field.Name)
		for _, value := range values {
			options = append(options, option{field: field.Name, value: value})
		}
	}
	return
}
