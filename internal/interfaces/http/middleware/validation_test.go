package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantForm struct {
	Code        string   `json:"code" validate:"required,tenantcode"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterValidations(v))
	return v
}

func TestCustomValidations(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		form  tenantForm
		valid bool
	}{
		{"two letters", tenantForm{Code: "GR"}, true},
		{"three lowercase letters", tenantForm{Code: "grf"}, true},
		{"four letters", tenantForm{Code: "GRAF"}, false},
		{"digits", tenantForm{Code: "G1"}, false},
		{"known permissions", tenantForm{Code: "GR", Permissions: []string{"comercial", "producao"}}, true},
		{"unknown permission", tenantForm{Code: "GR", Permissions: []string{"estoque"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidationDetails(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(tenantForm{Code: "GRAF", Permissions: []string{"estoque"}})
	details := ValidationDetails(err)

	require.Len(t, details, 2)
	assert.Equal(t, "code", details[0].Field)
	assert.Equal(t, "Must be 2 or 3 letters", details[0].Message)
	assert.Equal(t, "Unknown permission", details[1].Message)

	assert.Nil(t, ValidationDetails(assert.AnError))
}
