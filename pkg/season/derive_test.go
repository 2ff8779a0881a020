package season

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/f1stats/f1-stats-server/pkg/ergast"
)

func result(given, family, position, positionText, points, status string) ergast.Result {
	return ergast.Result{
		Driver:       ergast.Driver{GivenName: given, FamilyName: family},
		Position:     position,
		PositionText: positionText,
		Points:       points,
		Status:       status,
	}
}

func TestBuildPointsProgression_Cumulative(t *testing.T) {
	races := []ergast.Race{
		{
			Round:    "1",
			RaceName: "R1",
			Results: []ergast.Result{
				result("A", "", "1", "1", "25", "Finished"),
				result("B", "", "2", "2", "18", "Finished"),
			},
		},
		{
			Round:    "2",
			RaceName: "R2",
			Results: []ergast.Result{
				result("B", "", "1", "1", "25", "Finished"),
				result("A", "", "2", "2", "18", "Finished"),
			},
		},
	}

	table := BuildPointsProgression(races)

	if table.Len() != 2 {
		t.Fatalf("table has %d races, want 2", table.Len())
	}

	wantLabels := []string{"1 - R1", "2 - R2"}
	for i, label := range table.Labels() {
		if label != wantLabels[i] {
			t.Errorf("labels[%d] = %q, want %q", i, label, wantLabels[i])
		}
	}

	r1 := table.Race("1 - R1")
	if r1["A"] != 25 || r1["B"] != 18 {
		t.Errorf("race 1 totals = %v", r1)
	}

	r2 := table.Race("2 - R2")
	if r2["A"] != 43 || r2["B"] != 43 {
		t.Errorf("race 2 totals = %v", r2)
	}

	// Monotonic accumulation per driver.
	for _, driver := range []string{"A", "B"} {
		if r2[driver] < r1[driver] {
			t.Errorf("driver %s total decreased: %v -> %v", driver, r1[driver], r2[driver])
		}
	}
}

func TestBuildPointsProgression_NoZeroFill(t *testing.T) {
	races := []ergast.Race{
		{
			Round:    "1",
			RaceName: "R1",
			Results:  []ergast.Result{result("A", "", "1", "1", "25", "Finished")},
		},
		{
			Round:    "2",
			RaceName: "R2",
			Results: []ergast.Result{
				result("A", "", "1", "1", "25", "Finished"),
				result("Rookie", "", "2", "2", "18", "Finished"),
			},
		},
	}

	table := BuildPointsProgression(races)

	r1 := table.Race("1 - R1")
	if _, ok := r1["Rookie"]; ok {
		t.Error("driver absent from race 1 must have no entry there")
	}

	r2 := table.Race("2 - R2")
	if r2["Rookie"] != 18 {
		t.Errorf("Rookie total at race 2 = %v, want 18", r2["Rookie"])
	}
}

func TestBuildPointsProgression_EdgeRows(t *testing.T) {
	races := []ergast.Race{
		{
			Round: "1",
			// No race name: label falls back to Unknown.
			Results: []ergast.Result{
				result("", "", "1", "1", "25", "Finished"),    // empty key, dropped
				result("A", "", "2", "2", "", "Finished"),     // missing points count as 0
				result("B", "", "3", "3", "12.5", "Finished"), // half points
			},
		},
	}

	table := BuildPointsProgression(races)

	if got := table.Labels()[0]; got != "1 - Unknown" {
		t.Errorf("label = %q, want %q", got, "1 - Unknown")
	}

	totals := table.Race("1 - Unknown")
	if _, ok := totals[""]; ok {
		t.Error("empty driver key must be discarded")
	}
	if totals["A"] != 0 {
		t.Errorf("A total = %v, want 0", totals["A"])
	}
	if totals["B"] != 12.5 {
		t.Errorf("B total = %v, want 12.5", totals["B"])
	}
}

func TestPointsTable_MarshalOrdered(t *testing.T) {
	// Labels that would reorder under lexicographic map iteration.
	races := []ergast.Race{
		{Round: "9", RaceName: "Ninth", Results: []ergast.Result{result("A", "", "1", "1", "25", "Finished")}},
		{Round: "10", RaceName: "Tenth", Results: []ergast.Result{result("A", "", "1", "1", "25", "Finished")}},
		{Round: "11", RaceName: "Eleventh", Results: []ergast.Result{result("A", "", "1", "1", "25", "Finished")}},
	}

	data, err := json.Marshal(BuildPointsProgression(races))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"9 - Ninth":{"A":25},"10 - Tenth":{"A":50},"11 - Eleventh":{"A":75}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestBuildPilotStats_Counting(t *testing.T) {
	tests := []struct {
		name string
		row  ergast.Result
		want PilotRecord
	}{
		{
			name: "win counts win and podium",
			row:  result("B", "", "1", "1", "25", "Finished"),
			want: PilotRecord{Wins: 1, Podiums: 1},
		},
		{
			name: "third counts podium only",
			row:  result("B", "", "3", "3", "15", "Finished"),
			want: PilotRecord{Podiums: 1},
		},
		{
			name: "fourth counts neither",
			row:  result("B", "", "4", "4", "12", "Finished"),
			want: PilotRecord{},
		},
		{
			name: "absent position counts neither",
			row:  result("B", "", "", "R", "0", "Finished"),
			want: PilotRecord{Retirements: 1},
		},
		{
			name: "non-numeric position counts neither",
			row:  result("B", "", "R", "R", "0", "Retired"),
			want: PilotRecord{Retirements: 1},
		},
		{
			name: "collision with classified position",
			row:  result("B", "", "20", "20", "0", "Collision"),
			want: PilotRecord{Retirements: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := BuildPilotStats([]ergast.Race{{Round: "1", RaceName: "R1", Results: []ergast.Result{tt.row}}})

			rec, ok := stats["B"]
			if !ok {
				t.Fatal("driver B missing from stats")
			}
			if *rec != tt.want {
				t.Errorf("record = %+v, want %+v", *rec, tt.want)
			}
		})
	}
}

func TestBuildPilotStats_AcrossRaces(t *testing.T) {
	races := []ergast.Race{
		{
			Round:    "1",
			RaceName: "R1",
			Results: []ergast.Result{
				result("Max", "Verstappen", "1", "1", "25", "Finished"),
				result("Sergio", "Perez", "", "R", "0", "Engine"),
				result("", "", "2", "2", "18", "Finished"),
			},
		},
		{
			Round:    "2",
			RaceName: "R2",
			Results: []ergast.Result{
				result("Max", "Verstappen", "2", "2", "18", "Finished"),
				result("Sergio", "Perez", "1", "1", "25", "Finished"),
			},
		},
	}

	stats := BuildPilotStats(races)

	if len(stats) != 2 {
		t.Fatalf("stats has %d drivers, want 2 (empty key dropped)", len(stats))
	}

	max := stats["Max Verstappen"]
	if max.Wins != 1 || max.Podiums != 2 || max.Retirements != 0 {
		t.Errorf("Verstappen = %+v", *max)
	}

	perez := stats["Sergio Perez"]
	if perez.Wins != 1 || perez.Podiums != 1 || perez.Retirements != 1 {
		t.Errorf("Perez = %+v", *perez)
	}
}

func TestPilotStatsTable_Marshal(t *testing.T) {
	stats := PilotStatsTable{
		"B": &PilotRecord{Wins: 1, Podiums: 1},
	}

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"B":{"wins":1,"podiums":1,"retirements":0}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
