package table

type SizeMsg struct {
	Width  int
	Height int
}

// RefreshMsg signals the visible subset changed and selection should reset
type RefreshMsg struct{}
