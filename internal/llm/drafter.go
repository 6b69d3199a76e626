package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alcyxob/training-planner/internal/domain"
)

const coachSystemPrompt = "You are an expert distance running coach trained in the Norwegian training model."

// DraftWorkouts asks the model for the week's hard sessions. The result is
// untrusted; callers validate it and recompute every number.
func (c *Client) DraftWorkouts(ctx context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error) {
	args, err := c.callFunction(ctx, []Message{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: draftPrompt(req)},
	}, hardWorkoutsFunction, 10000)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Workouts []domain.DraftWorkout `json:"workouts"`
	}
	if err := json.Unmarshal(args, &parsed); err != nil {
		return nil, fmt.Errorf("llm: decode drafts: %w", err)
	}
	if parsed.Workouts == nil {
		return []domain.DraftWorkout{}, nil
	}
	return parsed.Workouts, nil
}

func draftPrompt(req domain.DraftRequest) string {
	p := req.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "Create hard workouts for week %d of training using Norwegian threshold training principles. ", req.Week)
	fmt.Fprintf(&b, "The runner is %s, currently running %.0f miles per week, with a recent %s of %s, training for a %s in %s.\n\n",
		p.Experience, p.CurrentMileage, p.CurrentRaceDistance, p.CurrentRaceTime, p.GoalRaceDistance, p.GoalRaceTime)

	b.WriteString("- For threshold workouts, use time-based durations, not distance\n")
	fmt.Fprintf(&b, "- Generate exactly %d LT1 workouts (80-83%% MHR) and %d LT2 (85-88%% MHR) workouts.\n", req.Counts.LT1, req.Counts.LT2)
	fmt.Fprintf(&b, "- Each LT1 workout, excluding warmup and cooldown, should total %d seconds. All reps within a single LT1 workout must be the same duration. The allowed rep durations are exactly 360, 540, or 720 seconds.\n", req.Targets.LT1Minutes*60)
	fmt.Fprintf(&b, "- Each LT2 workout, excluding warmup and cooldown, should total %d seconds. All reps within a single LT2 workout must be the same duration. The allowed rep durations are exactly 180, 360, or 540 seconds.\n", req.Targets.LT2Minutes*60)
	b.WriteString("- Threshold workout rep to rest time should be 3:1\n")
	if req.Counts.Hills > 0 {
		if req.RaceSpecific {
			fmt.Fprintf(&b, "- Generate exactly %d workout tagged RaceSpecific at %s pace, using distance-based reps.\n", req.Counts.Hills, p.GoalRaceDistance)
		} else {
			fmt.Fprintf(&b, "- Generate exactly %d hill workout tagged Hills, using short time-based reps at Hills pace.\n", req.Counts.Hills)
		}
	}
	b.WriteString("- Return workouts only; do not assign them to specific days.\n")
	b.WriteString("- Do not include easy runs, off days or long runs.\n")
	b.WriteString("- Include warmup and cooldown for all workouts. The easy portion of each should be at least 15 minutes long.\n")
	b.WriteString("- Threshold in warmups should be at most 4 minutes in total, as 1 or 2 minute reps at LT1 or LT2 pace with half the time of rest between reps, and must be the last thing before the workout.\n")
	b.WriteString("- LT2 workouts should include a threshold warmup.\n")
	return b.String()
}
