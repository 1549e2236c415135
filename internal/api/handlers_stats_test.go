package api

import (
	"net/http"
	"reflect"
	"testing"
)

func TestGetStatsReportsCurrentWeek(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)
	for _, entry := range []struct {
		path    string
		minutes int
	}{
		{path: "/api/user/aizi/screentime", minutes: 400},
		{path: "/api/user/orfeus/screentime", minutes: 600},
	} {
		response := doJSON(t, testApp.app, http.MethodPost, entry.path, map[string]any{"date": "2025-08-27", "minutes": entry.minutes})
		expectStatus(t, response, http.StatusOK)
		response.Body.Close()
	}

	response := doJSON(t, testApp.app, http.MethodGet, "/api/stats", nil)
	expectStatus(t, response, http.StatusOK)
	stats := struct {
		CurrentWeek  int            `json:"currentWeek"`
		WeekKey      string         `json:"weekKey"`
		WeekDates    []string       `json:"weekDates"`
		WeeklyWinner string         `json:"weeklyWinner"`
		Points       map[string]int `json:"points"`
		Minutes      map[string]int `json:"minutes"`
		AiziPoints   *int           `json:"aiziPoints"`
		OrfeusPoints *int           `json:"orfeusPoints"`
	}{}
	decodeBody(t, response, &stats)

	wantDates := []string{"2025-08-25", "2025-08-26", "2025-08-27", "2025-08-28", "2025-08-29", "2025-08-30", "2025-08-31"}
	if stats.CurrentWeek != 1 || stats.WeekKey != "2025-W1" || !reflect.DeepEqual(stats.WeekDates, wantDates) {
		t.Fatalf("unexpected week in stats %#v", stats)
	}
	if stats.WeeklyWinner != "aizi" {
		t.Fatalf("expected aizi to win week 1, got %q", stats.WeeklyWinner)
	}
	if stats.AiziPoints == nil || stats.OrfeusPoints == nil {
		t.Fatal("expected per-user points keys in stats")
	}
	if *stats.AiziPoints != 0 || *stats.OrfeusPoints != 0 || stats.Points["aizi"] != 0 {
		t.Fatalf("expected both users over their limit without bonus, got %#v", stats.Points)
	}
	if stats.Minutes["aizi"] != 400 || stats.Minutes["orfeus"] != 600 {
		t.Fatalf("unexpected minutes %#v", stats.Minutes)
	}
}

func TestGetStatsForRequestedWeek(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodGet, "/api/stats?week=6", nil)
	expectStatus(t, response, http.StatusOK)
	stats := map[string]any{}
	decodeBody(t, response, &stats)
	if stats["currentWeek"] != float64(6) || stats["weeklyWinner"] != "tie" {
		t.Fatalf("unexpected stats for week 6 %#v", stats)
	}
	dates, _ := stats["weekDates"].([]any)
	if len(dates) != 2 {
		t.Fatalf("expected the shortened last week, got %#v", stats["weekDates"])
	}
}

func TestGetStatsRejectsInvalidWeek(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	for _, query := range []string{"0", "7", "abc", "-1"} {
		response := doJSON(t, testApp.app, http.MethodGet, "/api/stats?week="+query, nil)
		expectStatus(t, response, http.StatusBadRequest)
		if payload := readAPIError(t, response); payload["field"] != "week" || payload["code"] != "invalid_week" {
			t.Fatalf("week=%s: unexpected validation payload %#v", query, payload)
		}
	}
}
