package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/feedback"
)

func replySystemPrompt(req domain.FeedbackRequest) string {
	cfg := domain.ResponseConfig{Tone: "supportive"}
	if req.Response != nil {
		cfg = *req.Response
		if cfg.Tone == "" {
			cfg.Tone = "supportive"
		}
	}
	return fmt.Sprintf(`You are an expert running coach and exercise physiologist. You help runners understand their training plans and make informed decisions about their training.

Be conversational, evidence-based and encouraging. Acknowledge the runner's situation, explain any modifications that were made and why, and use clear, accessible language.

When explaining workouts, cover the purpose and physiological benefits, break down the warmup, main set and cooldown, and give execution tips.

Tone: %s
Include tips: %t
Include recovery advice: %t`, cfg.Tone, cfg.IncludeTips, cfg.IncludeRecovery)
}

// Reply writes the coaching answer to a processed feedback message.
func (c *Client) Reply(ctx context.Context, req domain.FeedbackRequest, data feedback.Data, applied []domain.PlanOperation, warnings []string) (string, error) {
	ctxJSON, _ := json.MarshalIndent(req.Context, "", "  ")
	dataJSON, _ := json.MarshalIndent(data, "", "  ")
	opsJSON, _ := json.MarshalIndent(domain.Operations(applied), "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "User Request: %q\n\nIntent: %s\nUser Context: %s\n\n", req.OriginalMessage, req.Intent, ctxJSON)
	fmt.Fprintf(&b, "Retrieved Data:\n%s\n\nPlan changes applied:\n%s\n", dataJSON, opsJSON)
	if len(warnings) > 0 {
		fmt.Fprintf(&b, "\nChanges that could not be applied:\n- %s\n", strings.Join(warnings, "\n- "))
	}
	b.WriteString("\nPlease provide a natural, conversational response that addresses the user's request.")

	content, err := c.complete(ctx, []Message{
		{Role: "system", Content: replySystemPrompt(req)},
		{Role: "user", Content: b.String()},
	}, 1000)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Suggest asks for two or three follow-up suggestions.
func (c *Client) Suggest(ctx context.Context, req domain.FeedbackRequest, data feedback.Data) ([]string, error) {
	dataJSON, _ := json.Marshal(data)
	content, err := c.complete(ctx, []Message{
		{Role: "system", Content: "You are an expert running coach providing suggestions. Based on the user's request and available data, provide 2-3 relevant, specific and actionable suggestions.\n\nIMPORTANT: Return ONLY a valid JSON array of strings."},
		{Role: "user", Content: fmt.Sprintf("User request: %q\nAvailable data: %s", req.OriginalMessage, dataJSON)},
	}, 300)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(content), nil
}

// parseSuggestions accepts a JSON string array, or falls back to the first
// three non-empty lines with list markers stripped.
func parseSuggestions(content string) []string {
	content = strings.TrimSpace(content)
	var arr []any
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		out := []string{}
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	out := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == 3 {
			break
		}
	}
	return out
}
