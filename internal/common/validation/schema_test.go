package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["industry", "aiFamiliarity"],
  "properties": {
    "industry": {"type": "string", "minLength": 1},
    "aiFamiliarity": {"type": "integer", "minimum": 1, "maximum": 5},
    "contact": {
      "type": "object",
      "required": ["email"],
      "properties": {"email": {"type": "string"}}
    }
  }
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile(testSchema)

	tests := []struct {
		name           string
		document       map[string]interface{}
		expectedValid  bool
		expectedFields []string
	}{
		{
			name:          "valid document",
			document:      map[string]interface{}{"industry": "retail", "aiFamiliarity": 3},
			expectedValid: true,
		},
		{
			name:           "missing required fields",
			document:       map[string]interface{}{},
			expectedFields: []string{"aiFamiliarity", "industry"},
		},
		{
			name:           "out of range",
			document:       map[string]interface{}{"industry": "retail", "aiFamiliarity": 9},
			expectedFields: []string{"aiFamiliarity"},
		},
		{
			name: "nested required",
			document: map[string]interface{}{
				"industry": "retail", "aiFamiliarity": 2, "contact": map[string]interface{}{},
			},
			expectedFields: []string{"contact.email"},
		},
		{
			name:           "wrong type",
			document:       map[string]interface{}{"industry": 5, "aiFamiliarity": 2},
			expectedFields: []string{"industry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValid, result.Valid)

			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			if len(tt.expectedFields) == 0 {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.expectedFields, fields)
			}
		})
	}
}

func TestSchema_ErrorHelpers(t *testing.T) {
	result, err := MustCompile(testSchema).Validate(map[string]interface{}{
		"industry": "retail", "aiFamiliarity": 2, "contact": map[string]interface{}{},
	})
	require.NoError(t, err)

	assert.True(t, result.HasErrors("contact"))
	assert.False(t, result.HasErrors("industry"))
	require.Len(t, result.GetErrorMessages(), 1)
	assert.Contains(t, result.GetErrorMessages()[0], "contact.email")
	assert.Equal(t, "REQUIRED", result.Errors[0].Code)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`{`) })
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("owner@restaurant.sa"))
	assert.False(t, ValidateEmail("owner@restaurant"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+966 50 123 4567"))
	assert.False(t, ValidatePhone("12345"))
}
