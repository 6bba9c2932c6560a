package entity

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the semantic type of a record field.
type Kind int

const (
	Text     Kind = iota // free text, searchable and sortable
	Number               // numeric, sorted numerically
	Category             // enumerated, exact-match filterable
	Tags                 // multi-valued category
)

// Direction of a sort.
type Direction int

const (
	Desc Direction = iota
	Asc
)

func (dir Direction) String() string {
	if dir == Asc {
		return "asc"
	}
	return "desc"
}

// Flip returns the opposite direction.
func (dir Direction) Flip() Direction {
	if dir == Asc {
		return Desc
	}
	return Asc
}

// Sort represents a sort directive.
type Sort struct {
	Field string    `yaml:"field"`
	Dir   Direction `yaml:"dir"`
}

// Selection maps field names to accepted values.
// Values within a field are OR'd, fields are AND'd.
// A field with no values imposes no constraint.
type Selection map[string][]string

// Active returns the accepted values for field, nil when inactive.
func (sel Selection) Active(field string) []string {
	return sel[field]
}

// Has is true when value is accepted for field.
func (sel Selection) Has(field, value string) bool {
	return slices.Contains(sel[field], value)
}

// Clone returns a deep copy, dropping inactive fields.
func (sel Selection) Clone() Selection {
	clone := Selection{}
	for field, values := range sel {
		if len(values) == 0 {
			continue
		}
		clone[field] = slices.Clone(values)
	}
	return clone
}

// ParseDirection parses "asc" or "desc", case-insensitively.
func ParseDirection(text string) (dir Direction, err error) {

	switch strings.ToLower(text) {
	case "asc", "ascending":
		dir = Asc
	case "desc", "descending", "":
		dir = Desc
	default:
		err = errors.Errorf("unknown sort direction: %q", text)
	}
	return
}

// MarshalText renders the direction for yaml and json.
func (dir Direction) MarshalText() ([]byte, error) {
	return []byte(dir.String()), nil
}

// UnmarshalText parses the direction from yaml and json.
func (dir *Direction) UnmarshalText(text []byte) (err error) {
	*dir, err = ParseDirection(string(text))
	return
}
