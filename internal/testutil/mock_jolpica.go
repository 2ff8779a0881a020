// Package testutil provides testing utilities for the F1 stats server.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Resource kinds determine how a fixture's items are nested in the
// MRData envelope.
const (
	KindRaces                = "races"
	KindDriverStandings      = "driverStandings"
	KindConstructorStandings = "constructorStandings"
)

// DefaultPageLimit mirrors the upstream default when no limit query
// parameter is sent.
const DefaultPageLimit = 30

type fixture struct {
	kind  string
	items []string
}

// MockJolpica is a configurable fake of the Jolpica API. Fixtures are
// registered per request path ("/2023/results.json") as raw JSON items;
// responses honor the limit/offset pagination convention and wrap the
// requested slice in an MRData envelope with the declared total.
type MockJolpica struct {
	server *httptest.Server

	mu        sync.RWMutex
	fixtures  map[string]fixture
	handlers  map[string]http.HandlerFunc
	pathCount map[string]int

	// Tracking
	RequestCount  int
	LastUserAgent string
}

// NewMockJolpica creates a new mock server.
func NewMockJolpica() *MockJolpica {
	mock := &MockJolpica{
		fixtures:  make(map[string]fixture),
		handlers:  make(map[string]http.HandlerFunc),
		pathCount: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCount[r.URL.Path]++
		mock.LastUserAgent = r.Header.Get("User-Agent")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, hasHandler := mock.handlers[r.URL.Path]
		fix, hasFixture := mock.fixtures[r.URL.Path]
		mock.mu.RUnlock()

		if hasHandler {
			handler(w, r)
			return
		}
		if !hasFixture {
			http.NotFound(w, r)
			return
		}

		mock.servePage(w, r, fix)
	}))

	return mock
}

// URL returns the mock server URL, suitable as a client BaseURL.
func (m *MockJolpica) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockJolpica) Close() {
	m.server.Close()
}

// Reset clears tracking counters, keeping fixtures.
func (m *MockJolpica) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCount = make(map[string]int)
	m.LastUserAgent = ""
}

// SetRaces registers the race items served for a season's results.json.
func (m *MockJolpica) SetRaces(season int, items ...string) {
	m.setFixture(fmt.Sprintf("/%d/results.json", season), KindRaces, items)
}

// SetDriverStandings registers the driver standings rows for a season.
func (m *MockJolpica) SetDriverStandings(season int, items ...string) {
	m.setFixture(fmt.Sprintf("/%d/driverStandings.json", season), KindDriverStandings, items)
}

// SetConstructorStandings registers the constructor standings rows for a season.
func (m *MockJolpica) SetConstructorStandings(season int, items ...string) {
	m.setFixture(fmt.Sprintf("/%d/constructorStandings.json", season), KindConstructorStandings, items)
}

// SetHandler installs a custom handler for a path, overriding any
// fixture. Useful for failure injection. A nil handler removes the
// override, restoring fixture serving.
func (m *MockJolpica) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if handler == nil {
		delete(m.handlers, path)
		return
	}
	m.handlers[path] = handler
}

// SetStatus makes a path answer every request with a fixed status code.
func (m *MockJolpica) SetStatus(path string, status int) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": %q}`, http.StatusText(status))
	})
}

// Requests returns the number of requests seen for a path.
func (m *MockJolpica) Requests(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCount[path]
}

// GetRequestCount returns the total number of requests served.
func (m *MockJolpica) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

func (m *MockJolpica) setFixture(path, kind string, items []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtures[path] = fixture{kind: kind, items: items}
}

// servePage slices a fixture by limit/offset and wraps it in an MRData
// envelope.
func (m *MockJolpica) servePage(w http.ResponseWriter, r *http.Request, fix fixture) {
	limit := queryInt(r, "limit", DefaultPageLimit)
	offset := queryInt(r, "offset", 0)

	total := len(fix.items)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	page := strings.Join(fix.items[start:end], ",")

	var table string
	switch fix.kind {
	case KindRaces:
		table = fmt.Sprintf(`"RaceTable": {"Races": [%s]}`, page)
	case KindDriverStandings:
		table = fmt.Sprintf(`"StandingsTable": {"StandingsLists": [{"DriverStandings": [%s]}]}`, page)
	case KindConstructorStandings:
		table = fmt.Sprintf(`"StandingsTable": {"StandingsLists": [{"ConstructorStandings": [%s]}]}`, page)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"MRData": {"total": "%d", "limit": "%d", "offset": "%d", %s}}`,
		total, limit, offset, table)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// RaceJSON builds a minimal race item with the given result rows.
func RaceJSON(round, name string, results ...string) string {
	return fmt.Sprintf(`{"round": %q, "raceName": %q, "Results": [%s]}`,
		round, name, strings.Join(results, ","))
}

// ResultJSON builds a minimal result row.
func ResultJSON(given, family, position, positionText, points, status string) string {
	return fmt.Sprintf(`{"Driver": {"givenName": %q, "familyName": %q}, "position": %q, "positionText": %q, "points": %q, "status": %q}`,
		given, family, position, positionText, points, status)
}

// StandingJSON builds a minimal driver standing row.
func StandingJSON(position, points, wins, given, family string) string {
	return fmt.Sprintf(`{"position": %q, "points": %q, "wins": %q, "Driver": {"givenName": %q, "familyName": %q}}`,
		position, points, wins, given, family)
}
