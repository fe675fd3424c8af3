// Package validate holds the process-wide validator instance, shared by the
// HTTP binding helpers and the persistence decoders so both enforce the same
// record invariants.
package validate

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var v = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Struct runs the validator tags of s.
func Struct(s interface{}) error {
	return v.Struct(s)
}

// Fields flattens validator errors into a field → failed-tag map for the
// validation error envelope. Returns nil when err is not a validator error.
func Fields(err error) map[string]string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
