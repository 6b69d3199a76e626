package llm

import (
	_ "embed"
	"encoding/json"
)

//go:embed schemas/generate_hard_workouts.json
var hardWorkoutsSchema []byte

//go:embed schemas/create_flexible_request.json
var flexibleRequestSchema []byte

var (
	hardWorkoutsFunction = Function{
		Name:        "generateHardWorkouts",
		Description: "Generate structured hard workouts for the week",
		Parameters:  json.RawMessage(hardWorkoutsSchema),
	}
	flexibleRequestFunction = Function{
		Name:        "create_flexible_request",
		Description: "Convert a natural language request into a structured, flexible schema for processing",
		Parameters:  json.RawMessage(flexibleRequestSchema),
	}
)
