// Package ergast defines the JSON schema served by Jolpica's
// Ergast-compatible Formula 1 API and helpers for interpreting
// result rows.
package ergast

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Envelope is the MRData wrapper every Jolpica response carries.
type Envelope struct {
	MRData MRData `json:"MRData"`
}

// MRData holds the paging metadata and one resource table. Which table
// is present depends on the requested resource.
type MRData struct {
	Total          string          `json:"total"`
	Limit          string          `json:"limit"`
	Offset         string          `json:"offset"`
	StandingsTable *StandingsTable `json:"StandingsTable,omitempty"`
	RaceTable      *RaceTable      `json:"RaceTable,omitempty"`
}

// StandingsTable nests one standings list per season queried. Season
// queries always yield at most one list.
type StandingsTable struct {
	Season         string          `json:"season,omitempty"`
	StandingsLists []StandingsList `json:"StandingsLists"`
}

// StandingsList carries driver or constructor standings rows. Rows are
// kept as raw JSON: the API returns them verbatim to the frontend.
type StandingsList struct {
	DriverStandings      []json.RawMessage `json:"DriverStandings"`
	ConstructorStandings []json.RawMessage `json:"ConstructorStandings"`
}

// RaceTable nests the races of a season.
type RaceTable struct {
	Season string `json:"season,omitempty"`
	Races  []Race `json:"Races"`
}

// Race is one event in a season with its per-driver result rows.
type Race struct {
	Season   string   `json:"season,omitempty"`
	Round    string   `json:"round"`
	RaceName string   `json:"raceName"`
	Date     string   `json:"date,omitempty"`
	Results  []Result `json:"Results"`
}

// Label returns the race's display label, "{round} - {raceName}".
// A race without a name is labeled "Unknown".
func (r Race) Label() string {
	name := r.RaceName
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s - %s", r.Round, name)
}

// Result is one driver's outcome in one race. Position, points and the
// rest arrive as strings upstream.
type Result struct {
	Driver       Driver      `json:"Driver"`
	Constructor  Constructor `json:"Constructor"`
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Status       string      `json:"status"`
}

// Driver identity fields as nested under each result row.
type Driver struct {
	DriverID   string `json:"driverId,omitempty"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// Constructor identity fields, passed through untouched.
type Constructor struct {
	ConstructorID string `json:"constructorId,omitempty"`
	Name          string `json:"name,omitempty"`
}

// DisplayName returns the driver's display key: given and family name
// joined by a single space, whitespace-trimmed. Empty when the row
// carries no usable identity.
func (d Driver) DisplayName() string {
	return strings.TrimSpace(d.GivenName + " " + d.FamilyName)
}

// FinishPosition parses the finishing position. The second return is
// false for unclassified rows: an absent position or one that is not
// purely digits (e.g. "R").
func (r Result) FinishPosition() (int, bool) {
	if !isDigits(r.Position) {
		return 0, false
	}
	pos, err := strconv.Atoi(r.Position)
	if err != nil {
		return 0, false
	}
	return pos, true
}

// PointsScored parses the points field, 0 when absent or non-numeric.
// Points are decimal: half points have been awarded for shortened races.
func (r Result) PointsScored() float64 {
	pts, err := strconv.ParseFloat(r.Points, 64)
	if err != nil {
		return 0
	}
	return pts
}

// retirementMarkers are status substrings that classify a row as a
// retirement. Matching is a deliberately loose, case-sensitive substring
// test: upstream has no structural retirement field, so the class is
// re-derived from free text and false positives are accepted.
var retirementMarkers = []string{
	"Retired",
	"Accident",
	"DNF",
	"Collision",
	"Engine",
	"Gearbox",
}

// Retired reports whether the row counts as a retirement: positionText
// is the literal marker "R", or the status contains one of the known
// retirement substrings.
func (r Result) Retired() bool {
	if r.PositionText == "R" {
		return true
	}
	for _, marker := range retirementMarkers {
		if strings.Contains(r.Status, marker) {
			return true
		}
	}
	return false
}

// isDigits reports whether s is non-empty and consists solely of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseEnvelope decodes a raw upstream response body.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode MRData envelope: %w", err)
	}
	return &env, nil
}

// TotalCount parses the declared collection total from the envelope.
func (m MRData) TotalCount() (int, error) {
	total, err := strconv.Atoi(m.Total)
	if err != nil {
		return 0, fmt.Errorf("parse MRData total %q: %w", m.Total, err)
	}
	return total, nil
}

// DriverStandings returns the first standings list's driver rows. An
// absent table or empty StandingsLists means the season has no
// standings yet and yields nil rather than an error.
func (m MRData) DriverStandings() []json.RawMessage {
	if m.StandingsTable == nil || len(m.StandingsTable.StandingsLists) == 0 {
		return nil
	}
	return m.StandingsTable.StandingsLists[0].DriverStandings
}

// ConstructorStandings returns the first standings list's constructor rows,
// with the same empty fallback as DriverStandings.
func (m MRData) ConstructorStandings() []json.RawMessage {
	if m.StandingsTable == nil || len(m.StandingsTable.StandingsLists) == 0 {
		return nil
	}
	return m.StandingsTable.StandingsLists[0].ConstructorStandings
}

// Races returns the race table rows, nil when the table is absent.
func (m MRData) Races() []Race {
	if m.RaceTable == nil {
		return nil
	}
	return m.RaceTable.Races
}
