package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestFile(t, tmpDir, "schema.json", testSchema)
	jsonPath := writeTestFile(t, tmpDir, "doc.json", `{"name": "test"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestFile(t, tmpDir, "schema.json", testSchema)
	jsonPath := writeTestFile(t, tmpDir, "doc.json", `{"age": 30}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestFile(t, tmpDir, "schema.json", testSchema)
	jsonPath := writeTestFile(t, tmpDir, "doc.json", `{"name": 42}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := writeTestFile(t, tmpDir, "doc.json", `{"name": "test"}`)

	err := ValidateJSON(filepath.Join(tmpDir, "missing_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestFile(t, tmpDir, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, filepath.Join(tmpDir, "missing_doc.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestFile(t, tmpDir, "schema.json", testSchema)
	jsonPath := writeTestFile(t, tmpDir, "malformed.json", "{ invalid json }")

	valErr := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, valErr)
	// The error might be from gojsonschema parsing, not our code
}

func TestValidateRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "valid recommendation list",
			json: `[{
				"universityName": "University of Toronto",
				"category": "Target",
				"acceptanceChance": "Medium",
				"fitReason": "Strong CS program matching your field.",
				"risks": ["Competitive program"],
				"costLevel": "Medium"
			}]`,
			wantError: false,
		},
		{
			name:      "empty array is valid",
			json:      `[]`,
			wantError: false,
		},
		{
			name: "invalid category",
			json: `[{
				"universityName": "U",
				"category": "Reach",
				"acceptanceChance": "Medium",
				"fitReason": "x",
				"costLevel": "Medium"
			}]`,
			wantError: true,
		},
		{
			name:      "missing university name",
			json:      `[{"category": "Target", "acceptanceChance": "Low", "fitReason": "x", "costLevel": "Low"}]`,
			wantError: true,
		},
		{
			name:      "object instead of array",
			json:      `{"universityName": "U"}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecommendations(tt.json)
			if tt.wantError {
				require.Error(t, err)
				validationErr, ok := err.(*ValidationError)
				require.True(t, ok, "error should be ValidationError, got %T: %v", err, err)
				assert.Greater(t, len(validationErr.Errors), 0)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGeneratedTasks(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "valid task list",
			json: `[{
				"title": "Draft Statement of Purpose",
				"description": "Write your SOP highlighting your goals",
				"category": "Documents",
				"priority": "Urgent",
				"dueDate": 14
			}]`,
			wantError: false,
		},
		{
			name:      "null due date allowed",
			json:      `[{"title": "Research universities", "dueDate": null}]`,
			wantError: false,
		},
		{
			name:      "missing title",
			json:      `[{"description": "no title"}]`,
			wantError: true,
		},
		{
			name:      "invalid priority",
			json:      `[{"title": "x", "priority": "Critical"}]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeneratedTasks(tt.json)
			if tt.wantError {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateJSONString_Valid(t *testing.T) {
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(testSchema, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(testSchema, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSONString_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"person": {}}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
