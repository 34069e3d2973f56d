package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"port": {"type": "integer", "maximum": 65535}
	}
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{name: "valid", doc: `{"name": "x", "port": 80}`},
		{name: "missing required", doc: `{"port": 80}`, wantFields: []string{"(root)"}},
		{name: "wrong type", doc: `{"name": 5}`, wantFields: []string{"name"}},
		{name: "out of range", doc: `{"name": "x", "port": 70000}`, wantFields: []string{"port"}},
		{name: "unknown key", doc: `{"name": "x", "user_id": "u"}`, wantFields: []string{"(root)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testSchema, []byte(tt.doc))
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T", err)
			var fields []string
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
				assert.NotEmpty(t, fe.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Contains(t, err.Error(), "validation failed: ")
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(testSchema, []byte(`{ invalid json }`))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "got %T", err)
	assert.Error(t, errors.Unwrap(err))
}

func TestValidate_MalformedSchema(t *testing.T) {
	err := Validate(`{"type": 12}`, []byte(`{}`))

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr), "got %T", err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "backend", Message: "must be one of the following"},
		{Field: "port", Message: "too big"},
	}}
	assert.Equal(t, "validation failed: backend: must be one of the following; port: too big", err.Error())
}
