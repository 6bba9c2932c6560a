package detail

import "vitrina/catalog"

type SizeMsg struct {
	Width  int
	Height int
}

// VehicleMsg selects the vehicle to show
type VehicleMsg struct {
	Vehicle catalog.Vehicle
}
