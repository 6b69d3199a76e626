package domain

// DraftCounts is how many sessions of each role a week needs.
type DraftCounts struct {
	LT1     int `json:"LT1"`
	LT2     int `json:"LT2"`
	Hills   int `json:"Hills"`
	LongRun int `json:"LongRun"`
}

// DraftTargets is time-in-zone per threshold session, in minutes.
type DraftTargets struct {
	LT1Minutes int `json:"lt1Minutes"`
	LT2Minutes int `json:"lt2Minutes"`
}

// DraftRequest asks the drafting collaborator for one week's hard sessions.
type DraftRequest struct {
	Profile      AthleteProfile `json:"profile"`
	Week         int            `json:"week"`
	RaceSpecific bool           `json:"raceSpecific"`
	Counts       DraftCounts    `json:"counts"`
	Targets      DraftTargets   `json:"targets"`
}

// DraftWorkout is an untrusted candidate session. Only the name, tag, segments
// and descriptive text are used; numbers are always recomputed.
type DraftWorkout struct {
	Name            string     `json:"name"`
	Tags            WorkoutTag `json:"tags"`
	Workout         []Segment  `json:"workout"`
	Warmup          []Segment  `json:"warmup,omitempty"`
	Cooldown        []Segment  `json:"cooldown,omitempty"`
	TargetHeartRate string     `json:"targetHeartRate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}
