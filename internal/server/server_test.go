package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/layout"
	"github.com/cdmlens/cdmlens/pkg/pipeline"
	"github.com/cdmlens/cdmlens/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, nil)
	return New(st, runner, nil, ""), st
}

func do(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestObjectCRUD(t *testing.T) {
	s, _ := newTestServer(t)

	// Create without ID gets one assigned.
	body, _ := json.Marshal(catalog.Object{Name: "Customer"})
	rec := do(t, s, http.MethodPost, "/api/v1/objects", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var created catalog.Object
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created object has no id")
	}

	// Get
	rec = do(t, s, http.MethodGet, "/api/v1/objects/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Update
	created.Name = "Client"
	body, _ = json.Marshal(created)
	rec = do(t, s, http.MethodPut, "/api/v1/objects/"+created.ID, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body)
	}

	// List
	rec = do(t, s, http.MethodGet, "/api/v1/objects", nil)
	var objects []catalog.Object
	if err := json.Unmarshal(rec.Body.Bytes(), &objects); err != nil {
		t.Fatal(err)
	}
	if len(objects) != 1 || objects[0].Name != "Client" {
		t.Errorf("list = %+v", objects)
	}

	// Delete
	rec = do(t, s, http.MethodDelete, "/api/v1/objects/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/objects/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestCreateObjectRejectsInvalid(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/objects", []byte(`{"id":"x"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != "INVALID_OBJECT" {
		t.Errorf("code = %s", env.Code)
	}
}

func TestPutObjectIDMismatch(t *testing.T) {
	s, _ := newTestServer(t)
	body, _ := json.Marshal(catalog.Object{ID: "other", Name: "X"})
	rec := do(t, s, http.MethodPut, "/api/v1/objects/obj-1", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCSVImportExportRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)

	csvIn := "id,name,sector\nobj-1,Customer,Retail\nobj-2,Account,\n"
	rec := do(t, s, http.MethodPost, "/api/v1/objects/import", []byte(csvIn))
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body)
	}
	var summary map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary["imported"] != 2 {
		t.Errorf("imported = %d, want 2", summary["imported"])
	}

	rec = do(t, s, http.MethodGet, "/api/v1/objects/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "obj-1,Customer") {
		t.Errorf("export body:\n%s", rec.Body)
	}
}

func TestImportRejectsBadCSV(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/objects/import", []byte("name\nOrphan"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func seedGraphFixtures(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	objects := []catalog.Object{
		{ID: "obj-1", Name: "Customer", Relationships: []catalog.Relationship{
			{Role: "owns", TargetID: "obj-2"},
			{Role: "manages", TargetID: "obj-2"},
		}},
		{ID: "obj-2", Name: "Account"},
	}
	for _, o := range objects {
		if err := st.PutObject(context.Background(), o); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGraphPlanEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	seedGraphFixtures(t, st)

	rec := do(t, s, http.MethodGet, "/api/v1/graph?mode=relationship-emphasis", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Plans []layout.Plan `json:"plans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(resp.Plans))
	}
	rounds := map[float64]bool{resp.Plans[0].Roundness: true, resp.Plans[1].Roundness: true}
	if !rounds[0.25] || !rounds[0.45] {
		t.Errorf("plans = %+v, want roundness {0.25, 0.45}", resp.Plans)
	}
}

func TestGraphDOTEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	seedGraphFixtures(t, st)

	rec := do(t, s, http.MethodGet, "/api/v1/graph?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"obj-1" -> "obj-2"`) {
		t.Errorf("DOT body:\n%s", rec.Body)
	}
}

func TestListCRUD(t *testing.T) {
	s, _ := newTestServer(t)

	// Create without ID gets one assigned.
	body, _ := json.Marshal(catalog.List{Name: "Core"})
	rec := do(t, s, http.MethodPost, "/api/v1/lists", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var created catalog.List
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created list has no id")
	}

	// Get
	rec = do(t, s, http.MethodGet, "/api/v1/lists/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Update
	created.Name = "Core Entities"
	body, _ = json.Marshal(created)
	rec = do(t, s, http.MethodPut, "/api/v1/lists/"+created.ID, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body)
	}

	// List
	rec = do(t, s, http.MethodGet, "/api/v1/lists", nil)
	var lists []catalog.List
	if err := json.Unmarshal(rec.Body.Bytes(), &lists); err != nil {
		t.Fatal(err)
	}
	if len(lists) != 1 || lists[0].Name != "Core Entities" {
		t.Errorf("list = %+v", lists)
	}

	// Delete
	rec = do(t, s, http.MethodDelete, "/api/v1/lists/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/lists/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestCreateListRejectsInvalid(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/lists", []byte(`{"id":"l1"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestGraphIncludesLists(t *testing.T) {
	s, st := newTestServer(t)
	seedGraphFixtures(t, st)

	body, _ := json.Marshal(catalog.List{ID: "list-1", Name: "Core", MemberIDs: []string{"obj-1"}})
	rec := do(t, s, http.MethodPost, "/api/v1/lists", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list status = %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/graph?lists=true&format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("graph status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"list-1" -> "obj-1"`) {
		t.Errorf("membership edge missing from DOT:\n%s", rec.Body)
	}

	// Without lists=true the list stays out of the projection.
	rec = do(t, s, http.MethodGet, "/api/v1/graph?format=dot", nil)
	if strings.Contains(rec.Body.String(), "list-1") {
		t.Errorf("list leaked into projection:\n%s", rec.Body)
	}
}

func TestSavedViewRoundTrip(t *testing.T) {
	s, st := newTestServer(t)
	seedGraphFixtures(t, st)

	rec := do(t, s, http.MethodPut, "/api/v1/views/baseline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body)
	}
	var summary struct {
		Name  string `json:"name"`
		Nodes int    `json:"nodes"`
		Edges int    `json:"edges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Name != "baseline" || summary.Nodes != 2 || summary.Edges != 2 {
		t.Errorf("summary = %+v", summary)
	}

	// The snapshot outlives catalog changes that would break the live
	// projection.
	if err := st.DeleteObject(context.Background(), "obj-2"); err != nil {
		t.Fatal(err)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/graph?view=baseline&mode=relationship-emphasis", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("render saved view status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Plans []layout.Plan `json:"plans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Plans) != 2 {
		t.Errorf("got %d plans from saved view, want 2", len(resp.Plans))
	}

	rec = do(t, s, http.MethodGet, "/api/v1/views/baseline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get view status = %d", rec.Code)
	}
}

func TestGetViewMissing(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/views/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("code = %s", env.Code)
	}
}

func TestGraphRejectsBadMode(t *testing.T) {
	s, st := newTestServer(t)
	seedGraphFixtures(t, st)

	rec := do(t, s, http.MethodGet, "/api/v1/graph?mode=diagonal", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}
