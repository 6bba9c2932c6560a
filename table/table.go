package table

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"

	"vitrina/catalog"
	nt "vitrina/entity"
	"vitrina/style"
	"vitrina/view"
)

const (
	headerHeight = 2
	nullCell     = "—"
)

// TablePanel shows the visible vehicles and handles navigation and sorting
type TablePanel struct {
	selected int // Absolute position of selected vehicle in the visible subset
	offset   int // Offset of page shown

	width  int
	height int

	columns []nt.Column
	browser *view.Browser[catalog.Vehicle]
	table   *table.Table

	ctx    context.Context
	logger nt.Logger
}

func NewTablePanel(ctx context.Context, columns []nt.Column, browser *view.Browser[catalog.Vehicle], lgr nt.Logger) TablePanel {

	lgt := table.New()
	style.StyleTable(lgt)

	shown := []nt.Column{}
	for _, col := range columns {
		if col.Hidden {
			continue
		}
		if _, ok := browser.Schema().Lookup(col.Field); !ok {
			lgr.Info(ctx, "skipping column for unknown field", "field", col.Field)
			continue
		}
		shown = append(shown, col)
	}

	return TablePanel{
		columns: shown,
		browser: browser,
		table:   lgt,
		ctx:     ctx,
		logger:  lgr,
	}
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case RefreshMsg:
		pnl.selected = 0
		pnl.offset = 0

	case tea.KeyPressMsg:
		total := len(pnl.browser.Visible())
		pageSize := pnl.PageSize()

		switch key := msg.String(); key {
		case "up", "k":
			if pnl.selected > 0 {
				pnl.selected--
			}

		case "down", "j":
			if pnl.selected < total-1 {
				pnl.selected++
			}

		case "pgup", "ctrl+u":
			pnl.selected -= pageSize

		case "pgdown", "ctrl+d":
			pnl.selected += pageSize

		case "g":
			pnl.selected = 0

		case "G":
			pnl.selected = total - 1

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if idx < len(pnl.columns) {
				pnl.browser.SetSort(pnl.columns[idx].Field)
				pnl.selected = 0
			}
		}

		pnl = pnl.clamp(total)
	}

	return pnl, nil
}

// View renders the current page of the visible vehicles
func (pnl TablePanel) View() string {

	visible := pnl.browser.Visible()
	pnl = pnl.clamp(len(visible))

	sorted := -1
	headers := make([]string, len(pnl.columns))
	srt := pnl.browser.Sort()
	for i, col := range pnl.columns {
		header := col.Header()
		if srt != nil && srt.Field == col.Field {
			sorted = i
			header += indicator(srt.Dir)
		}
		headers[i] = fmt.Sprintf("%d %-*s", i+1, col.Width, header)
	}

	pnl.table.Headers(headers...)
	pnl.table.StyleFunc(style.RowStyler(pnl.selected-pnl.offset, sorted))

	pnl.table.ClearRows()
	end := min(pnl.offset+pnl.PageSize(), len(visible))
	for _, vcl := range visible[pnl.offset:end] {
		pnl.table.Row(pnl.row(vcl)...)
	}

	return pnl.table.String()
}

// Selected returns the vehicle under the cursor
func (pnl TablePanel) Selected() (vcl catalog.Vehicle, ok bool) {

	visible := pnl.browser.Visible()
	if pnl.selected < 0 || pnl.selected >= len(visible) {
		return
	}
	return visible[pnl.selected], true
}

// Position returns the 1-indexed selected row, 0 when empty
func (pnl TablePanel) Position() int {

	if len(pnl.browser.Visible()) == 0 {
		return 0
	}
	return pnl.selected + 1
}

// PageSize returns the number of rows that fit on panel
func (pnl TablePanel) PageSize() int {
	return max(pnl.height-headerHeight, 1)
}

// unexported

// clamp keeps selection in bounds and on the page
func (pnl TablePanel) clamp(total int) TablePanel {

	pnl.selected = max(min(pnl.selected, total-1), 0)

	pageSize := pnl.PageSize()
	if pnl.selected < pnl.offset {
		pnl.offset = pnl.selected
	} else if pnl.selected >= pnl.offset+pageSize {
		pnl.offset = pnl.selected - pageSize + 1
	}
	pnl.offset = max(min(pnl.offset, total-1), 0)

	return pnl
}

func (pnl TablePanel) row(vcl catalog.Vehicle) []string {

	row := make([]string, len(pnl.columns))
	for i, col := range pnl.columns {
		field, _ := pnl.browser.Schema().Lookup(col.Field)
		row[i] = truncate(format(field.Get(vcl), col.Format), col.Width)
	}
	return row
}

func format(val nt.Value, kind string) string {

	if val.IsNull() {
		return nullCell
	}

	switch kind {
	case "price":
		price, err := val.Float()
		if err != nil {
			return nullCell
		}
		return catalog.FormatPrice(&price)
	case "upper":
		return strings.ToUpper(val.String())
	}
	return val.String()
}

func indicator(dir nt.Direction) string {
	if dir == nt.Asc {
		return " ▲"
	}
	return " ▼"
}

func truncate(in string, width int) string {

	runes := []rune(in)
	if width <= 0 || len(runes) <= width {
		return in
	}

	truncated := string(runes[:width-1])
	ellipsis := style.MutedStyle.Render("…")
	return truncated + ellipsis
}
