package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidate_jsonFieldNames(t *testing.T) {
	type form struct {
		TotalClasses float64 `json:"totalClasses" validate:"required,gt=0"`
		Skipped      string  `json:"-" validate:"omitempty"`
	}

	err := Validate.Struct(form{})
	if err == nil {
		t.Fatal("Validate.Struct() error = nil; want ValidationErrors")
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Validate.Struct() error = %T; want validator.ValidationErrors", err)
	}

	assert.Len(t, vErrs, 1)
	assert.Equal(t, "totalClasses", vErrs[0].Field())
	assert.Equal(t, "this field is required", vErrs[0].Translate(Translator))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Direito", CleanString("  Direito \t"))
	assert.Equal(t, "direito", CleanString("  Direito ", true))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "file", Error: "only .csv files are accepted"})
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() = %T; want *ValidationError", err)
	}
	assert.Empty(t, vErr.Error())
	assert.Len(t, vErr.Fields, 1)
}
