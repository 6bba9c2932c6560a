package entity

// Column lays out one table column for a record field.
type Column struct {
	Field  string `yaml:"field"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width"`
	Format string `yaml:"format,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// Header returns the column title, falling back to the field name.
func (col Column) Header() string {
	if col.Title != "" {
		return col.Title
	}
	return col.Field
}
