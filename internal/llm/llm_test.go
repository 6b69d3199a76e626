package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"alcyxob/training-planner/internal/config"
	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/logger"
)

// fakeAPI answers every completion with a function call carrying args, or
// with plain content when args is empty.
func fakeAPI(t *testing.T, args, content string, seen *ChatRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
			return
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		msg := map[string]any{"role": "assistant", "content": content}
		if args != "" {
			msg["function_call"] = map[string]any{"name": "fn", "arguments": args}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{map[string]any{"message": msg}}})
	}))
	t.Cleanup(srv.Close)
	return NewClient(config.LLMConfig{BaseURL: srv.URL + "/v1/", APIKey: "test-key", Model: "gpt-4o", Temperature: 0.7}, srv.Client())
}

func TestDraftWorkouts(t *testing.T) {
	args := `{"workouts":[{"name":"LT1 3 x 12:00","tags":"LT1","workout":[{"type":"LT1","reps":3,"length":{"type":"time","amount":720},"rest":240}],"warmup":[{"type":"Easy","length":{"type":"time","amount":900}}],"targetHeartRate":"80-83% MHR"}]}`
	var seen ChatRequest
	c := fakeAPI(t, args, "", &seen)

	req := domain.DraftRequest{
		Week:    3,
		Counts:  domain.DraftCounts{LT1: 1, LT2: 1, Hills: 1},
		Targets: domain.DraftTargets{LT1Minutes: 36, LT2Minutes: 30},
	}
	drafts, err := c.DraftWorkouts(context.Background(), req)
	if err != nil {
		t.Fatalf("DraftWorkouts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Tags != domain.TagLT1 || len(drafts[0].Workout) != 1 {
		t.Fatalf("drafts = %+v", drafts)
	}
	if set := drafts[0].Workout[0].Set; set == nil || set.Reps != 3 || set.Length.Amount != 720 {
		t.Errorf("segment = %+v", drafts[0].Workout[0])
	}

	if seen.FunctionCall == nil || seen.FunctionCall.Name != "generateHardWorkouts" || seen.Model != "gpt-4o" {
		t.Errorf("request = %+v", seen)
	}
	prompt := seen.Messages[1].Content
	for _, want := range []string{"exactly 1 LT1", "total 2160 seconds", "total 1800 seconds", "tagged Hills"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestDraftWorkoutsNoFunctionCall(t *testing.T) {
	c := fakeAPI(t, "", "I can't do that", nil)
	if _, err := c.DraftWorkouts(context.Background(), domain.DraftRequest{}); !errors.Is(err, ErrNoFunctionCall) {
		t.Errorf("err = %v", err)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()
	c := NewClient(config.LLMConfig{BaseURL: srv.URL}, srv.Client())
	_, err := c.Classify(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v", err)
	}
}

func TestClassify(t *testing.T) {
	args := `{"intent":"modify_plan","context":{"physical":"tired"},"actions":[{"type":"adjust_workout_intensity","parameters":{"intensity":"easier","dayOfWeek":"tuesday"},"reasoning":"fatigue","confidence":0.9}]}`
	c := fakeAPI(t, args, "", nil)
	req, err := c.Classify(context.Background(), "Make Tuesday easier, I'm wrecked")
	if err != nil {
		t.Fatal(err)
	}
	if req.OriginalMessage != "Make Tuesday easier, I'm wrecked" || req.Context.Physical != "tired" {
		t.Errorf("req = %+v", req)
	}
	if !reflect.DeepEqual(req.DataNeeded, []domain.DataNeed{domain.NeedTodayWorkout}) {
		t.Errorf("dataNeeded = %v", req.DataNeeded)
	}
	if a := req.Actions[0]; a.Parameters.Intensity != domain.AdjustEasier || a.Confidence != 0.9 {
		t.Errorf("action = %+v", a)
	}
}

func TestParseSuggestions(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["Sleep more", "Hydrate", 3]`, []string{"Sleep more", "Hydrate"}},
		{"- Sleep more\n\n* Hydrate\n• Stretch\n- Fourth", []string{"Sleep more", "Hydrate", "Stretch"}},
		{"", []string{}},
	}
	for _, c := range cases {
		if got := parseSuggestions(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("parseSuggestions(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

type fakeStore struct {
	data map[string]string
	err  error
	sets int
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.sets++
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingDrafter struct {
	calls  int
	drafts []domain.DraftWorkout
}

func (d *countingDrafter) DraftWorkouts(context.Context, domain.DraftRequest) ([]domain.DraftWorkout, error) {
	d.calls++
	return d.drafts, nil
}

func TestCachedDrafter(t *testing.T) {
	ctx := context.Background()
	next := &countingDrafter{drafts: []domain.DraftWorkout{{
		Name:    "Hill Repeats 8 x 1:00",
		Tags:    domain.TagHills,
		Workout: []domain.Segment{domain.Set(domain.ZoneHills, 8, domain.LengthTime, 60, 120)},
	}}}
	store := &fakeStore{data: map[string]string{}}
	c := newCachedDrafter(next, store, time.Hour, logger.Nop())

	req := domain.DraftRequest{Week: 2, Profile: domain.AthleteProfile{UserID: "u1"}}
	first, err := c.DraftWorkouts(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	// Same request for another user hits the cache.
	req.Profile.UserID = "u2"
	second, err := c.DraftWorkouts(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if next.calls != 1 || store.sets != 1 {
		t.Errorf("calls = %d, sets = %d", next.calls, store.sets)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached drafts differ:\n%+v\n%+v", first, second)
	}

	req.Week = 3
	if _, err := c.DraftWorkouts(ctx, req); err != nil || next.calls != 2 {
		t.Errorf("different week should miss: calls = %d, err = %v", next.calls, err)
	}
}

func TestCachedDrafterSurvivesRedisFailure(t *testing.T) {
	next := &countingDrafter{drafts: []domain.DraftWorkout{}}
	c := newCachedDrafter(next, &fakeStore{err: errors.New("connection refused")}, time.Hour, logger.Nop())
	if _, err := c.DraftWorkouts(context.Background(), domain.DraftRequest{}); err != nil {
		t.Errorf("err = %v", err)
	}
	if next.calls != 1 {
		t.Errorf("calls = %d", next.calls)
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	c := NewClient(config.LLMConfig{}, nil)
	if c.httpClient.Timeout != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", c.httpClient.Timeout)
	}
	c = NewClient(config.LLMConfig{Timeout: 5 * time.Second}, nil)
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.httpClient.Timeout)
	}
}
