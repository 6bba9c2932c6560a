package vitrina

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"vitrina/catalog"
	"vitrina/detail"
	nt "vitrina/entity"
	"vitrina/filter"
	"vitrina/message"
	"vitrina/style"
	"vitrina/table"
	"vitrina/view"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the vehicle browser TUI.
type Model struct {
	Store       Store
	Layout      Layout
	status      catalog.Status
	browser     *view.Browser[catalog.Vehicle]
	logger      nt.Logger
	ctx         context.Context
	errorString string

	CurrentScreen Screen

	TablePanel  table.TablePanel
	FilterPanel filter.FilterPanel
	DetailPanel detail.DetailPanel

	Width  int
	Height int
}

// NewModel creates a new bt model browsing vehicles with status, or all for empty status.
func NewModel(ctx context.Context, store Store, layout Layout, status catalog.Status, lgr nt.Logger) (model Model, err error) {

	err = layout.check()
	if err != nil {
		return
	}

	lang := language.English
	if layout.Language != "" {
		lang, err = language.Parse(layout.Language)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse language %q", layout.Language)
			return
		}
	}

	schema := catalog.VehicleSchema.In(lang)
	browser := view.NewBrowser(schema, view.NewState(layout.DefaultSort), nil)
	browser.OnChange(func(visible []catalog.Vehicle) {
		lgr.Info(ctx, "view recomputed", "visible", len(visible), "total", browser.Total())
	})

	model = Model{
		Store:         store,
		Layout:        layout,
		status:        status,
		browser:       browser,
		logger:        lgr,
		ctx:           ctx,
		CurrentScreen: TableScreen,
		TablePanel:    table.NewTablePanel(ctx, layout.Columns, browser, lgr),
		FilterPanel:   filter.NewFilterPanel(ctx, browser, lgr),
		DetailPanel:   detail.NewDetailPanel(schema),
	}

	return
}

func (m Model) Init() tea.Cmd {
	return m.loadVehicles()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.VehiclesMsg:
		m.browser.SetRecords(msg.Vehicles)
		m.logger.Info(m.ctx, "loaded vehicles", "count", len(msg.Vehicles), "source", m.Store.Name())
		return m.refresh(), nil

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.KeyPressMsg:
		m.errorString = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.CurrentScreen {
		case SearchScreen:
			return m.handleSearchKey(msg)
		case FilterScreen:
			return m.handleFilterKey(msg)
		case DetailScreen:
			return m.handleDetailKey(msg)
		}
		return m.handleTableKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		m.TablePanel, _ = m.TablePanel.Update(table.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.FilterPanel, _ = m.FilterPanel.Update(filter.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
		m.DetailPanel, _ = m.DetailPanel.Update(detail.SizeMsg{Width: msg.Width, Height: msg.Height - footerHeight})
	}

	return m, nil
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case FilterScreen:
		screenContent = m.FilterPanel.View()
	case DetailScreen:
		screenContent = m.DetailPanel.View()
	default:
		screenContent = m.TablePanel.View()
	}

	footerContent := RenderFooter(m.footer(), m.Width)
	if m.errorString != "" {
		footerContent = style.ErrorStyle.Render(m.errorString)
	}

	screenHeight := max(m.Height-footerHeight, 0)
	screen := lipgloss.NewStyle().Height(screenHeight).MaxHeight(screenHeight).Render(screenContent)

	view := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, screen, "", footerContent))
	view.AltScreen = true
	return view
}

// Browser exposes the view state and visible vehicles.
func (m Model) Browser() *view.Browser[catalog.Vehicle] {
	return m.browser
}

// unexported

func (m Model) handleTableKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.browser.SearchTerm() == "" {
			return m, tea.Quit
		}
		m.browser.SetSearchTerm("")
		return m.refresh(), nil

	case "/":
		m.CurrentScreen = SearchScreen
		return m, nil

	case "f":
		m.CurrentScreen = FilterScreen
		return m, nil

	case "enter":
		vcl, ok := m.TablePanel.Selected()
		if !ok {
			return m, nil
		}
		m.DetailPanel, _ = m.DetailPanel.Update(detail.VehicleMsg{Vehicle: vcl})
		m.CurrentScreen = DetailScreen
		return m, nil

	case "c":
		m.browser.ClearAll()
		return m.refresh(), nil

	case "r":
		return m, m.loadVehicles()
	}

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	term := []rune(m.browser.SearchTerm())

	switch msg.String() {
	case "enter", "esc":
		m.CurrentScreen = TableScreen
		return m, nil

	case "backspace":
		if len(term) == 0 {
			return m, nil
		}
		m.browser.SetSearchTerm(string(term[:len(term)-1]))

	case "ctrl+u":
		m.browser.SetSearchTerm("")

	default:
		if msg.Text == "" {
			return m, nil
		}
		m.browser.SetSearchTerm(string(term) + msg.Text)
	}

	return m.refresh(), nil
}

func (m Model) handleFilterKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "esc", "f", "q":
		m.CurrentScreen = TableScreen
		return m.refresh(), nil
	}

	var cmd tea.Cmd
	m.FilterPanel, cmd = m.FilterPanel.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "esc", "enter", "q":
		m.CurrentScreen = TableScreen
		return m, nil
	}

	var cmd tea.Cmd
	m.DetailPanel, cmd = m.DetailPanel.Update(msg)
	return m, cmd
}

// refresh resets the table to the top of the recomputed subset
func (m Model) refresh() Model {

	m.TablePanel, _ = m.TablePanel.Update(table.RefreshMsg{})
	return m
}

func (m Model) footer() Footer {
	return Footer{
		Position:  m.TablePanel.Position(),
		Count:     len(m.browser.Visible()),
		Total:     m.browser.Total(),
		Search:    m.browser.SearchTerm(),
		Searching: m.CurrentScreen == SearchScreen,
		Filters:   len(m.browser.Selection()),
		Sort:      m.browser.Sort(),
		Source:    m.Store.Name(),
	}
}
