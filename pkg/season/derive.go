package season

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/f1stats/f1-stats-server/pkg/ergast"
)

// PilotRecord holds one driver's counters for a season.
type PilotRecord struct {
	Wins        int `json:"wins"`
	Podiums     int `json:"podiums"`
	Retirements int `json:"retirements"`
}

// PilotStatsTable maps driver display names to their counters.
type PilotStatsTable map[string]*PilotRecord

// PointsTable records each driver's cumulative points after every race.
// Race labels are kept in round order; Go maps don't preserve insertion
// order, so the table marshals itself as an ordered JSON object.
type PointsTable struct {
	labels []string
	races  map[string]map[string]float64
}

// NewPointsTable returns an empty table.
func NewPointsTable() *PointsTable {
	return &PointsTable{
		races: make(map[string]map[string]float64),
	}
}

func (t *PointsTable) addRace(label string) {
	if _, ok := t.races[label]; ok {
		return
	}
	t.labels = append(t.labels, label)
	t.races[label] = make(map[string]float64)
}

func (t *PointsTable) record(label, driver string, total float64) {
	t.races[label][driver] = total
}

// Labels returns the race labels in round order.
func (t *PointsTable) Labels() []string {
	return t.labels
}

// Race returns the cumulative totals recorded for one race label, nil
// for an unknown label.
func (t *PointsTable) Race(label string) map[string]float64 {
	return t.races[label]
}

// Len returns the number of races in the table.
func (t *PointsTable) Len() int {
	return len(t.labels)
}

// MarshalJSON emits the table as a JSON object with race labels in
// round order.
func (t *PointsTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range t.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		totals, err := json.Marshal(t.races[label])
		if err != nil {
			return nil, err
		}
		buf.Write(totals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildPointsProgression folds races into a cumulative points table.
// Races are visited in upstream order, rows in upstream order within
// each race. A driver's entry for a race is their running total through
// that race; drivers absent from a race get no entry for it.
func BuildPointsProgression(races []ergast.Race) *PointsTable {
	totals := make(map[string]float64)
	table := NewPointsTable()

	for _, race := range races {
		label := race.Label()
		table.addRace(label)

		for _, res := range race.Results {
			driver := res.Driver.DisplayName()
			if driver == "" {
				continue
			}
			totals[driver] += res.PointsScored()
			table.record(label, driver, totals[driver])
		}
	}

	return table
}

// BuildPilotStats folds race results into per-driver win, podium and
// retirement counts. A driver's record is created at first sight with
// all counters zero; rows without a usable driver name are dropped.
func BuildPilotStats(races []ergast.Race) PilotStatsTable {
	stats := make(PilotStatsTable)

	for _, race := range races {
		for _, res := range race.Results {
			driver := res.Driver.DisplayName()
			if driver == "" {
				continue
			}

			rec, ok := stats[driver]
			if !ok {
				rec = &PilotRecord{}
				stats[driver] = rec
			}

			if pos, classified := res.FinishPosition(); classified {
				if pos == 1 {
					rec.Wins++
				}
				if pos <= 3 {
					rec.Podiums++
				}
			}
			if res.Retired() {
				rec.Retirements++
			}
		}
	}

	return stats
}
