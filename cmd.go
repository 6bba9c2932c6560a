package vitrina

import (
	tea "charm.land/bubbletea/v2"

	"vitrina/message"
)

// loadVehicles fetches a snapshot from the store
func (m Model) loadVehicles() tea.Cmd {

	store, ctx, status := m.Store, m.ctx, m.status

	return func() tea.Msg {

		vehicles, err := store.Vehicles(ctx, status)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return message.VehiclesMsg{Vehicles: vehicles}
	}
}
