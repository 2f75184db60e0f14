package schemas

import _ "embed"

// Schemas for validating structured LLM output before it reaches the
// rest of the system. Embedded so validation works regardless of the
// working directory the binary runs from.

//go:embed recommendations.schema.json
var RecommendationsSchema string

//go:embed generated_tasks.schema.json
var GeneratedTasksSchema string

// ValidateRecommendations checks a JSON array of university
// recommendations against the recommendations schema.
func ValidateRecommendations(jsonContent string) error {
	return ValidateJSONString(RecommendationsSchema, jsonContent)
}

// ValidateGeneratedTasks checks a JSON array of generated tasks against
// the task schema.
func ValidateGeneratedTasks(jsonContent string) error {
	return ValidateJSONString(GeneratedTasksSchema, jsonContent)
}
