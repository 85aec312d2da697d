package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/nskaik/order-payment-api/kit/validation"
)

var ErrInvalidJSON = errors.New("invalid json")

type JSON struct {
	MaxBytes int64
}

func NewJSON() *JSON {
	return &JSON{MaxBytes: 1 << 20}
}

// Decode reads exactly one JSON value into dst. Unknown fields, trailing
// data and oversized bodies are all ErrInvalidJSON. A field holding the
// wrong JSON type is a validation error keyed by that field.
func (v *JSON) Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, v.MaxBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fieldTypeError(typeErr)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return nil
}

func fieldTypeError(err *json.UnmarshalTypeError) *validation.Error {
	name := err.Field[strings.LastIndex(err.Field, ".")+1:]
	label := strings.ReplaceAll(name, "_", " ")

	var kind string
	switch err.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		kind = "an integer"
	case reflect.Float32, reflect.Float64:
		kind = "a number"
	case reflect.String:
		kind = "a string"
	case reflect.Bool:
		kind = "true or false"
	case reflect.Slice, reflect.Array:
		kind = "an array"
	case reflect.Struct, reflect.Map:
		kind = "an object"
	default:
		return validation.Field(err.Field, fmt.Sprintf("The %s field has an invalid type.", label), err)
	}
	return validation.Field(err.Field, fmt.Sprintf("The %s must be %s.", label, kind), err)
}
