package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func createCandidate(t *testing.T, srv *httptest.Server, name, email string) map[string]any {
	t.Helper()
	res := doJSON(t, http.MethodPost, srv.URL+"/api/candidates", map[string]any{
		"name":  name,
		"email": email,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create candidate: expected 201 got %d", res.StatusCode)
	}
	var c map[string]any
	decodeBody(t, res, &c)
	return c
}

func timelineOf(t *testing.T, srv *httptest.Server, id string) []map[string]any {
	t.Helper()
	res, err := http.Get(srv.URL + "/api/candidates/" + id + "/timeline")
	if err != nil {
		t.Fatalf("get timeline: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get timeline: expected 200 got %d", res.StatusCode)
	}
	var events []map[string]any
	decodeBody(t, res, &events)
	return events
}

func TestCreateCandidateDefaults(t *testing.T) {
	srv, _ := setupServer(t)

	c := createCandidate(t, srv, "Emma Smith", "emma.smith@example.com")
	if c["stage"] != "applied" {
		t.Fatalf("new candidates start in applied, got %v", c["stage"])
	}
}

func TestCreateCandidateRequiresEmail(t *testing.T) {
	srv, _ := setupServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/candidates", map[string]any{"name": "Emma Smith"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

func TestMoveCandidate(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Liam Johnson", "liam.johnson@example.com")
	id := c["id"].(string)

	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+id+"/move", map[string]any{
		"fromStage": "applied",
		"toStage":   "screen",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var moved map[string]any
	decodeBody(t, res, &moved)
	if moved["stage"] != "screen" {
		t.Fatalf("expected screen stage, got %v", moved["stage"])
	}

	events := timelineOf(t, srv, id)
	if len(events) != 1 {
		t.Fatalf("expected one timeline event, got %d", len(events))
	}
	e := events[0]
	if e["type"] != "stage_change" || e["fromStage"] != "applied" || e["toStage"] != "screen" {
		t.Fatalf("unexpected event: %v", e)
	}
	if e["createdBy"] != "HR Team" {
		t.Fatalf("expected default actor, got %v", e["createdBy"])
	}
}

func TestMoveCandidateSameStageIsNoOp(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Olivia Brown", "olivia.brown@example.com")
	id := c["id"].(string)

	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+id+"/move", map[string]any{
		"fromStage": "applied",
		"toStage":   "applied",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	if events := timelineOf(t, srv, id); len(events) != 0 {
		t.Fatalf("same-stage drop must not record history, got %d events", len(events))
	}
}

func TestMoveCandidateInvalidStage(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Noah Davis", "noah.davis@example.com")

	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+c["id"].(string)+"/move", map[string]any{
		"fromStage": "applied",
		"toStage":   "espresso",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
}

// A stage change inside a profile patch must behave exactly like the kanban
// move: same event, same no-op guard.
func TestPatchCandidateStageGoesThroughMovePath(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Ava Miller", "ava.miller@example.com")
	id := c["id"].(string)

	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+id, map[string]any{
		"stage": "tech",
		"phone": "+15550100",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var updated map[string]any
	decodeBody(t, res, &updated)
	if updated["stage"] != "tech" {
		t.Fatalf("expected tech stage, got %v", updated["stage"])
	}
	if updated["phone"] != "+15550100" {
		t.Fatalf("expected phone applied, got %v", updated["phone"])
	}

	events := timelineOf(t, srv, id)
	if len(events) != 1 || events[0]["type"] != "stage_change" {
		t.Fatalf("expected one stage_change event, got %v", events)
	}

	// patching the same stage again records nothing new
	res2 := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+id, map[string]any{"stage": "tech"})
	res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res2.StatusCode)
	}
	if events := timelineOf(t, srv, id); len(events) != 1 {
		t.Fatalf("same-stage patch must not append history, got %d events", len(events))
	}
}

func TestPatchCandidateInvalidStageWritesNothing(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Mia Wilson", "mia.wilson@example.com")
	id := c["id"].(string)

	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+id, map[string]any{
		"stage": "bogus",
		"phone": "+15550101",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}

	get, err := http.Get(srv.URL + "/api/candidates/" + id)
	if err != nil {
		t.Fatalf("get candidate: %v", err)
	}
	var after map[string]any
	decodeBody(t, get, &after)
	if after["phone"] != nil && after["phone"] != "" {
		t.Fatalf("rejected patch must not apply other fields, got phone %v", after["phone"])
	}
}

func TestAddNote(t *testing.T) {
	srv, _ := setupServer(t)
	c := createCandidate(t, srv, "Sophia Moore", "sophia.moore@example.com")
	id := c["id"].(string)

	res := doJSON(t, http.MethodPost, srv.URL+"/api/candidates/"+id+"/notes", map[string]any{
		"note":      "Strong portfolio, schedule a screen with @Jane Smith",
		"createdBy": "Recruiter",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}
	var event map[string]any
	decodeBody(t, res, &event)
	if event["type"] != "note_added" || event["createdBy"] != "Recruiter" {
		t.Fatalf("unexpected note event: %v", event)
	}

	if events := timelineOf(t, srv, id); len(events) != 1 {
		t.Fatalf("expected note on the timeline, got %d events", len(events))
	}
}

func TestListCandidatesFilterByStage(t *testing.T) {
	srv, _ := setupServer(t)
	createCandidate(t, srv, "Emma Smith", "emma@example.com")
	c := createCandidate(t, srv, "Liam Johnson", "liam@example.com")
	res := doJSON(t, http.MethodPatch, srv.URL+"/api/candidates/"+c["id"].(string)+"/move", map[string]any{
		"fromStage": "applied",
		"toStage":   "offer",
	})
	res.Body.Close()

	list, err := http.Get(srv.URL + "/api/candidates?stage=offer")
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	var body struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	decodeBody(t, list, &body)
	if body.Total != 1 || len(body.Data) != 1 {
		t.Fatalf("expected exactly one offer-stage candidate, got total=%d", body.Total)
	}
	if body.Data[0]["name"] != "Liam Johnson" {
		t.Fatalf("unexpected candidate: %v", body.Data[0]["name"])
	}
}
