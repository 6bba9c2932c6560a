package filter

// SizeMsg sets the area the filter dialog is centered in
type SizeMsg struct {
	Width  int
	Height int
}
