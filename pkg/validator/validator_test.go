package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID    int    `json:"id" validate:"required,gt=0"`
	Email string `json:"email" validate:"required,email"`
	Plan  string `json:"plan" validate:"omitempty,oneof=free pro"`
}

func TestDecodeAndValidateOK(t *testing.T) {
	var a account
	require.NoError(t, New().DecodeAndValidate([]byte(`{"id":3,"email":"a@b.io","plan":"pro"}`), &a))
	assert.Equal(t, 3, a.ID)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	err := New().DecodeAndValidate([]byte(`{"id":0,"email":"nope","plan":"gold"}`), &account{})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	fields := map[string]FieldError{}
	for _, f := range verr.Fields {
		fields[f.Field] = f
	}
	require.Len(t, fields, 3)
	assert.Equal(t, "required", fields["id"].Tag)
	assert.Equal(t, "email", fields["email"].Tag)
	assert.Equal(t, "free pro", fields["plan"].Param)
	assert.Contains(t, err.Error(), "field plan failed on 'oneof' validation (param=free pro)")
}

func TestRegisterTagMessageAndValidation(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterValidation("even", func(fl gvalidator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	}))
	v.RegisterTagMessage("even", func(fe gvalidator.FieldError) string {
		return fe.Field() + " must be even"
	})

	type counter struct {
		N int `json:"n" validate:"even"`
	}
	err := v.DecodeAndValidate([]byte(`{"n":3}`), &counter{})
	assert.EqualError(t, err, "validation failed: n must be even")
}

func TestDecodeErrors(t *testing.T) {
	err := New().DecodeAndValidate([]byte(`{"id":"x"}`), &account{})
	assert.ErrorContains(t, err, "invalid type for field id")

	err = New().DecodeAndValidate([]byte(`{bad`), &account{})
	assert.ErrorContains(t, err, "invalid JSON payload")
}
