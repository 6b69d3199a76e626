// internal/pacing/table.go
package pacing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"alcyxob/training-planner/internal/domain"
)

//go:embed vdot.json
var vdotJSON []byte

// Row is one fitness level of the equivalence table, finishing times in seconds.
type Row struct {
	VDOT  float64
	Times map[domain.RaceDistance]float64
}

var (
	tableOnce sync.Once
	table     []Row
	tableErr  error
)

// Table returns the equivalence rows ordered from slowest to fastest.
func Table() ([]Row, error) {
	tableOnce.Do(func() {
		table, tableErr = parseTable(vdotJSON)
	})
	return table, tableErr
}

func parseTable(data []byte) ([]Row, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("pacing: decode table: %w", err)
	}
	rows := make([]Row, 0, len(raw))
	for i, r := range raw {
		row := Row{Times: make(map[domain.RaceDistance]float64, len(domain.RaceDistances))}
		if v, ok := r["vdot"].(float64); ok {
			row.VDOT = v
		}
		for _, d := range domain.RaceDistances {
			s, ok := r[string(d)].(string)
			if !ok {
				return nil, fmt.Errorf("pacing: row %d missing %s", i, d)
			}
			secs, err := domain.ParseRaceTime(s)
			if err != nil {
				return nil, fmt.Errorf("pacing: row %d %s: %w", i, d, err)
			}
			row.Times[d] = secs
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pacing: empty table")
	}
	return rows, nil
}

// milesPer converts a row's finishing time into per-mile pace.
var milesPer = map[domain.RaceDistance]float64{
	domain.Race1500:         0.93,
	domain.RaceMile:         1.61,
	domain.Race3K:           1.86,
	domain.Race5K:           3.11,
	domain.Race10K:          6.21,
	domain.RaceHalfMarathon: 13.11,
	domain.RaceMarathon:     26.22,
}

// lookup finds the first row strictly faster than the performance. The goal
// read takes that row; the current read takes the one before it.
func lookup(rows []Row, dist domain.RaceDistance, secs float64, goal bool) Row {
	for i, r := range rows {
		if r.Times[dist] < secs {
			if i == 0 {
				return r
			}
			if goal {
				return rows[i]
			}
			return rows[i-1]
		}
	}
	return rows[len(rows)-1]
}
