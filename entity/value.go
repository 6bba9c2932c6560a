package entity

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Value wraps a field value and provides type conversion helpers.
// Raw may be nil, a pointer, a scalar or a []string for multi-valued fields.
type Value struct {
	Raw any
}

// IsNull is true for nil and for nil pointers.
func (v Value) IsNull() bool {
	if v.Raw == nil {
		return true
	}

	rv := reflect.ValueOf(v.Raw)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// String returns the value as a string, empty for null.
// Numbers are rendered in plain decimal form.
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}

	switch raw := v.Raw.(type) {
	case []string:
		return strings.Join(raw, " ")
	case *[]string:
		return strings.Join(*raw, " ")
	}

	rv := deref(reflect.ValueOf(v.Raw))
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}

	return fmt.Sprintf("%v", rv.Interface())
}

// Float returns the value as a float64.
func (v Value) Float() (float64, error) {
	if v.IsNull() {
		return 0, errors.New("value is null")
	}

	rv := deref(reflect.ValueOf(v.Raw))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}

	return 0, errors.Errorf("value is not a number: %T", v.Raw)
}

// Strings returns the elements of a multi-valued field, or the single string form.
func (v Value) Strings() []string {
	if v.IsNull() {
		return nil
	}

	switch raw := v.Raw.(type) {
	case []string:
		return raw
	case *[]string:
		return *raw
	}

	return []string{v.String()}
}

// Lower returns the lowercased string form.
func (v Value) Lower() string {
	return strings.ToLower(v.String())
}

func deref(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv
}
