package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/laneweave/laneweave/pkg/diagram"
	"github.com/laneweave/laneweave/pkg/remote"
	"github.com/laneweave/laneweave/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{
		Logger: log.New(io.Discard),
		Store:  store.NewMemoryStore(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error envelope: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Code, body.Error.Message
}

func TestParseRoute(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/parse", map[string]string{
		"code": "sales { # Sales\nn1: circle label:\"Start\"\n}",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var g diagram.Graph
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatal(err)
	}
	if g.Stats.NodeCount != 1 || g.Stats.LaneCount != 1 {
		t.Errorf("stats = %+v", g.Stats)
	}
}

func TestParseRouteRejectsOversize(t *testing.T) {
	s := New(Options{
		Logger:   log.New(io.Discard),
		Store:    store.NewMemoryStore(),
		MaxBytes: 100,
	})

	rec := doJSON(t, s, http.MethodPost, "/v1/parse", map[string]string{
		"code": strings.Repeat("x", 101),
	})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	code, _ := decodeError(t, rec)
	if code != "INVALID_DIAGRAM_SIZE" {
		t.Errorf("error code = %q", code)
	}
}

func TestDiffRoute(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/diff", map[string]string{
		"old": "n1: circle",
		"new": "n1: circle\nn2: rectangle",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		NodesAdded []string `json:"nodesAdded"`
		Summary    string   `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Summary != "1 node added" {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestPatchRoute(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/patch", map[string]any{
		"code": "sales {\nn1: circle\n}",
		"operations": []map[string]any{
			{"kind": "insertNode", "laneId": "sales", "newNode": map[string]string{"shape": "rectangle", "label": "Review"}},
			{"kind": "removeNode", "nodeId": "missing"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Code    string `json:"code"`
		Results []struct {
			Applied bool   `json:"applied"`
			NodeID  string `json:"nodeId"`
			Reason  string `json:"reason"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("results = %+v", res.Results)
	}
	if !res.Results[0].Applied || res.Results[0].NodeID != "n2" {
		t.Errorf("insert result = %+v", res.Results[0])
	}
	if res.Results[1].Applied || res.Results[1].Reason == "" {
		t.Errorf("skip result = %+v", res.Results[1])
	}
	if !strings.Contains(res.Code, `n2: rectangle label:"Review"`) {
		t.Errorf("patched code = %q", res.Code)
	}
}

func TestBadJSONRejected(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	code, _ := decodeError(t, rec)
	if code != "INVALID_INPUT" {
		t.Errorf("error code = %q", code)
	}
}

func TestValidateRouteProxies(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(remote.ValidationResult{Valid: true})
	}))
	defer svc.Close()

	client := remote.NewClient()
	s := New(Options{
		Logger:   log.New(io.Discard),
		Store:    store.NewMemoryStore(),
		Validate: remote.NewValidateClient(client, svc.URL),
	})

	rec := doJSON(t, s, http.MethodPost, "/v1/validate", map[string]string{"code": "n1: circle"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var res remote.ValidationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("result = %+v", res)
	}
}

func TestValidateRouteUnconfigured(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/v1/validate", map[string]string{"code": "x"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDiagramCRUD(t *testing.T) {
	s := newTestServer(t)

	// Missing diagram
	rec := doJSON(t, s, http.MethodGet, "/v1/diagrams/d1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get missing status = %d", rec.Code)
	}
	code, _ := decodeError(t, rec)
	if code != "DIAGRAM_NOT_FOUND" {
		t.Errorf("error code = %q", code)
	}

	// Save
	rec = doJSON(t, s, http.MethodPut, "/v1/diagrams/d1", map[string]string{
		"name": "Sales",
		"code": "n1: circle",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}

	// Load
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/d1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var d store.Diagram
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.ID != "d1" || d.Name != "Sales" || d.Code != "n1: circle" {
		t.Errorf("diagram = %+v", d)
	}
	if d.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}

	// Delete
	rec = doJSON(t, s, http.MethodDelete, "/v1/diagrams/d1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/d1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("response missing X-Request-Id")
	}

	// A caller-provided id is echoed back.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "given-id")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "given-id" {
		t.Errorf("request id = %q, want given-id", got)
	}
}
