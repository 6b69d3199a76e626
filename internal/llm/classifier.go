package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"alcyxob/training-planner/internal/domain"
)

const classifierSystemPrompt = `You are an AI assistant that converts natural language requests from runners into structured, flexible schemas.

Analyze the message and capture:
1. The user's intent (what they want to accomplish)
2. Relevant context (their current state, timing, training phase)
3. What data is needed to fulfill the request
4. What actions should be taken
5. How to respond (tone, content)

When users mention specific days (e.g. "Tuesday's workout", "reduce Monday's intensity"), include the dayOfWeek parameter in the action parameters AND include "today_workout" in dataNeeded.

Examples:
- "I'm tired from yesterday's run" -> fatigue_management intent, tired physical state, today temporal
- "Explain today's workout" -> explain_workout intent, today temporal, dataNeeded: ["today_workout"]
- "What is LT1 training?" -> training_advice intent, educational tone
- "Reduce Tuesday's workout intensity" -> modify_plan intent, actions with dayOfWeek: "tuesday", dataNeeded: ["today_workout"]`

// Classify turns a free-text message into a structured feedback request.
func (c *Client) Classify(ctx context.Context, message string) (domain.FeedbackRequest, error) {
	user := fmt.Sprintf("Convert this user message into a structured request:\n%q\n\n"+
		"If the user mentions a specific day of the week, include it in the action parameters AND include \"today_workout\" in dataNeeded.", message)
	args, err := c.callFunction(ctx, []Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: user},
	}, flexibleRequestFunction, 1000)
	if err != nil {
		return domain.FeedbackRequest{}, err
	}
	var req domain.FeedbackRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return domain.FeedbackRequest{}, fmt.Errorf("llm: decode feedback request: %w", err)
	}
	req.OriginalMessage = message
	ensureTodayWorkout(&req)
	return req, nil
}

// ensureTodayWorkout asks for the targeted workout whenever an action names a day.
func ensureTodayWorkout(req *domain.FeedbackRequest) {
	for _, need := range req.DataNeeded {
		if need == domain.NeedTodayWorkout {
			return
		}
	}
	for _, a := range req.Actions {
		if a.Parameters.DayOfWeek != "" || a.Parameters.Date != "" {
			req.DataNeeded = append(req.DataNeeded, domain.NeedTodayWorkout)
			return
		}
	}
}
