package apiclient

import (
	"errors"
	"fmt"

	"github.com/milan604/restbase/pkg/validator"
)

// SchemaValidator checks a response payload against a schema.
type SchemaValidator interface {
	Validate(payload []byte, schema any) error
}

// NopValidator accepts every payload. It is the default.
type NopValidator struct{}

func (NopValidator) Validate([]byte, any) error { return nil }

// StructValidator treats schema as a pointer to a struct carrying
// `validate` tags: the payload is decoded into it and then validated.
type StructValidator struct {
	v *validator.Validator
}

// NewStructValidator returns a StructValidator backed by v, or by a fresh
// validator when v is nil.
func NewStructValidator(v *validator.Validator) *StructValidator {
	if v == nil {
		v = validator.New()
	}
	return &StructValidator{v: v}
}

func (s *StructValidator) Validate(payload []byte, schema any) error {
	if schema == nil {
		return nil
	}
	if len(payload) == 0 {
		return errors.New("schema validation: empty payload")
	}
	if err := s.v.DecodeAndValidate(payload, schema); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// ValidateResponseSchema runs the configured validator. With the default
// NopValidator it always succeeds.
func (c *Client) ValidateResponseSchema(payload []byte, schema any) error {
	return c.validator.Validate(payload, schema)
}
