package api

import (
	"net/http"
	"os"
	"testing"

	"github.com/terraincognita07/screenbattle/internal/models"
)

func TestGetUnknownUserReturnsNotFound(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodGet, "/api/user/nobody", nil)
	expectStatus(t, response, http.StatusNotFound)
	if got := readAPIError(t, response)["error"]; got != "User not found" {
		t.Fatalf("expected localized not found message, got %q", got)
	}
}

func TestUnknownUserMutationsReturnNotFound(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	tests := []struct {
		name    string
		method  string
		path    string
		payload any
	}{
		{name: "update", method: http.MethodPut, path: "/api/user/nobody", payload: map[string]any{"name": "Ghost"}},
		{name: "screentime", method: http.MethodPost, path: "/api/user/nobody/screentime", payload: map[string]any{"date": "2025-08-25", "minutes": 10}},
		{name: "goals", method: http.MethodPost, path: "/api/user/nobody/goals", payload: map[string]any{"week": "2025-W1", "goals": []bool{true}}},
	}

	for _, testCase := range tests {
		response := doJSON(t, testApp.app, testCase.method, testCase.path, testCase.payload)
		expectStatus(t, response, http.StatusNotFound)
		response.Body.Close()
	}

	document, err := testApp.store.Load()
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if _, ok := document.Users["nobody"]; ok {
		t.Fatal("expected unknown user not to be created")
	}
}

func TestRecordScreenTimeThenGetUserAwardsPoint(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPost, "/api/user/aizi/screentime", map[string]any{
		"date":    "2025-08-25",
		"minutes": 90,
	})
	expectStatus(t, response, http.StatusOK)
	result := map[string]any{}
	decodeBody(t, response, &result)
	if result["success"] != true || result["message"] != "Screen time recorded!" {
		t.Fatalf("unexpected screentime response %#v", result)
	}

	response = doJSON(t, testApp.app, http.MethodGet, "/api/user/aizi", nil)
	expectStatus(t, response, http.StatusOK)
	user := models.User{}
	decodeBody(t, response, &user)
	if user.ScreenTimes["2025-08-25"] != 90 {
		t.Fatalf("expected 90 minutes stored, got %#v", user.ScreenTimes)
	}
	if user.Points != 1 {
		t.Fatalf("expected 1 point for a day under the limit, got %d", user.Points)
	}
}

func TestRecordScreenTimeAcceptsNumericString(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPost, "/api/user/orfeus/screentime", map[string]any{
		"date":    "2025-08-26",
		"minutes": "45",
	})
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()

	document, err := testApp.store.Load()
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if got := document.Users[models.UserOrfeus].ScreenTimes["2025-08-26"]; got != 45 {
		t.Fatalf("expected 45 minutes, got %d", got)
	}
}

func TestRecordScreenTimeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	tests := []struct {
		name      string
		payload   map[string]any
		wantField string
		wantCode  string
	}{
		{name: "non numeric minutes", payload: map[string]any{"date": "2025-08-25", "minutes": "lots"}, wantField: "minutes", wantCode: "invalid_minutes"},
		{name: "negative minutes", payload: map[string]any{"date": "2025-08-25", "minutes": -5}, wantField: "minutes", wantCode: "invalid_minutes"},
		{name: "missing minutes", payload: map[string]any{"date": "2025-08-25"}, wantField: "minutes", wantCode: "invalid_minutes"},
		{name: "bad date", payload: map[string]any{"date": "25/08/2025", "minutes": 10}, wantField: "date", wantCode: "invalid_date"},
		{name: "date outside game", payload: map[string]any{"date": "2025-10-01", "minutes": 10}, wantField: "date", wantCode: "date_outside_game"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, testApp.app, http.MethodPost, "/api/user/aizi/screentime", testCase.payload)
			expectStatus(t, response, http.StatusBadRequest)
			payload := readAPIError(t, response)
			if payload["field"] != testCase.wantField || payload["code"] != testCase.wantCode {
				t.Fatalf("unexpected validation payload %#v", payload)
			}
			if payload["error"] == "" || payload["error"] == "error."+testCase.wantCode {
				t.Fatalf("expected a translated message, got %q", payload["error"])
			}
		})
	}

	document, err := testApp.store.Load()
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if got := len(document.Users[models.UserAizi].ScreenTimes); got != 0 {
		t.Fatalf("expected rejected input to leave the document unchanged, got %d entries", got)
	}
}

func TestRecordScreenTimeRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPost, "/api/user/aizi/screentime", "not an object")
	expectStatus(t, response, http.StatusBadRequest)
	if got := readAPIError(t, response)["error"]; got != "Invalid request body" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestRecordGoalsStoresWeekAndRejectsBadKeys(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPost, "/api/user/orfeus/goals", map[string]any{
		"week":  "2025-W1",
		"goals": []bool{true, false, true},
	})
	expectStatus(t, response, http.StatusOK)
	result := map[string]any{}
	decodeBody(t, response, &result)
	if result["message"] != "Goals updated!" {
		t.Fatalf("unexpected goals response %#v", result)
	}

	response = doJSON(t, testApp.app, http.MethodPost, "/api/user/orfeus/goals", map[string]any{
		"week":  "week one",
		"goals": []bool{true},
	})
	expectStatus(t, response, http.StatusBadRequest)
	if payload := readAPIError(t, response); payload["field"] != "week" {
		t.Fatalf("unexpected validation payload %#v", payload)
	}

	document, err := testApp.store.Load()
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	goals := document.Users[models.UserOrfeus].GoalsCompleted
	if len(goals) != 1 || len(goals["2025-W1"]) != 3 || !goals["2025-W1"][2] {
		t.Fatalf("unexpected stored goals %#v", goals)
	}
}

func TestUpdateUserMergesFieldsAndProtectsPoints(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPut, "/api/user/aizi", map[string]any{
		"dailyLimit": 90,
		"points":     1000,
	})
	expectStatus(t, response, http.StatusOK)
	user := models.User{}
	decodeBody(t, response, &user)

	if user.DailyLimit != 90 || user.Name != "Aizi" {
		t.Fatalf("unexpected merged user %#v", user)
	}
	if user.Points != 0 {
		t.Fatalf("expected client points to be ignored, got %d", user.Points)
	}
	if len(user.WeeklyGoals) != 3 {
		t.Fatalf("expected weekly goals to be kept, got %#v", user.WeeklyGoals)
	}
}

func TestUpdateUserRejectsNegativeDailyLimit(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	response := doJSON(t, testApp.app, http.MethodPut, "/api/user/aizi", map[string]any{"dailyLimit": -1})
	expectStatus(t, response, http.StatusBadRequest)
	if payload := readAPIError(t, response); payload["field"] != "dailyLimit" {
		t.Fatalf("unexpected validation payload %#v", payload)
	}
}

func TestListUsersAppliesWinnerBonusAndPersists(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)

	for _, entry := range []struct {
		userID  string
		minutes int
	}{
		{userID: models.UserAizi, minutes: 100},
		{userID: models.UserOrfeus, minutes: 200},
	} {
		response := doJSON(t, testApp.app, http.MethodPost, "/api/user/"+entry.userID+"/screentime", map[string]any{
			"date":    "2025-08-25",
			"minutes": entry.minutes,
		})
		expectStatus(t, response, http.StatusOK)
		response.Body.Close()
	}

	response := doJSON(t, testApp.app, http.MethodGet, "/api/users", nil)
	expectStatus(t, response, http.StatusOK)
	users := map[string]models.User{}
	decodeBody(t, response, &users)

	if users[models.UserAizi].Points != 2 {
		t.Fatalf("expected aizi to get a day point plus the bonus, got %d", users[models.UserAizi].Points)
	}
	if users[models.UserOrfeus].Points != 0 {
		t.Fatalf("expected orfeus to have no points, got %d", users[models.UserOrfeus].Points)
	}

	document, err := testApp.store.Load()
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if document.Users[models.UserAizi].Points != 2 {
		t.Fatalf("expected recomputed points to be persisted, got %d", document.Users[models.UserAizi].Points)
	}
}

func TestStorageFailureReturnsGenericServerError(t *testing.T) {
	t.Parallel()

	testApp := newGameTestApp(t)
	if err := os.WriteFile(testApp.store.Path(), []byte("{broken"), 0o600); err != nil {
		t.Fatalf("corrupt store: %v", err)
	}

	response := doJSON(t, testApp.app, http.MethodGet, "/api/user/aizi", nil)
	expectStatus(t, response, http.StatusInternalServerError)
	if got := readAPIError(t, response)["error"]; got != "Internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}

	response = doJSON(t, testApp.app, http.MethodPost, "/api/user/aizi/screentime", map[string]any{
		"date":    "2025-08-25",
		"minutes": 10,
	})
	expectStatus(t, response, http.StatusInternalServerError)
	if got := readAPIError(t, response)["error"]; got != "Failed to save data" {
		t.Fatalf("expected save failure message, got %q", got)
	}
}
