package message

import "vitrina/catalog"

// VehiclesMsg contains a fresh snapshot from the store
type VehiclesMsg struct {
	Vehicles []catalog.Vehicle
}

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}
