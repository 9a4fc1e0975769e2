// Package validator checks decoded API payloads against `validate` struct
// tags using go-playground/validator, reporting problems per JSON field.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	gvalidator "github.com/go-playground/validator/v10"
)

// FieldError represents a single field validation problem.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Tag     string      `json:"tag,omitempty"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

// Error lists every failed field of one payload.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator is the wrapper around go-playground validator.
type Validator struct {
	v             *gvalidator.Validate
	tagMessageFns map[string]func(fe gvalidator.FieldError) string
}

// New creates a Validator that names fields by their json tag.
func New() *Validator {
	v := gvalidator.New(gvalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := getTagName(f, "json"); name != "" {
			return name
		}
		return f.Name
	})
	return &Validator{
		v:             v,
		tagMessageFns: make(map[string]func(gvalidator.FieldError) string),
	}
}

// helper to get tag name
func getTagName(f reflect.StructField, tagName string) string {
	tagValue := f.Tag.Get(tagName)
	if tagValue == "-" {
		return ""
	}
	return strings.SplitN(tagValue, ",", 2)[0]
}

// RegisterValidation registers a custom validator (name) to the engine.
func (vi *Validator) RegisterValidation(tag string, fn gvalidator.Func) error {
	return vi.v.RegisterValidation(tag, fn)
}

// RegisterTagMessage overrides the message produced for a failed tag.
func (vi *Validator) RegisterTagMessage(tag string, builder func(gvalidator.FieldError) string) {
	vi.tagMessageFns[tag] = builder
}

// Struct validates s, which must be a struct or a pointer to one.
func (vi *Validator) Struct(s any) error {
	err := vi.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs gvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: vi.buildMessageForField(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
		})
	}
	return out
}

// DecodeAndValidate unmarshals payload into target and validates it.
func (vi *Validator) DecodeAndValidate(payload []byte, target any) error {
	if err := json.Unmarshal(payload, target); err != nil {
		return describeDecodeError(err)
	}
	return vi.Struct(target)
}

func describeDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("invalid type for field %s: expected %s: %w", typeErr.Field, typeErr.Type, err)
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("invalid JSON payload: %w", err)
	default:
		return fmt.Errorf("decode payload: %w", err)
	}
}

// buildMessageForField uses registered tag builders or defaults
func (vi *Validator) buildMessageForField(fe gvalidator.FieldError) string {
	if b, ok := vi.tagMessageFns[fe.Tag()]; ok && b != nil {
		return b(fe)
	}
	if fe.Param() != "" {
		return fmt.Sprintf("field %s failed on '%s' validation (param=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s failed on '%s' validation", fe.Field(), fe.Tag())
}
