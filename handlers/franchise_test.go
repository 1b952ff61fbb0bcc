package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"pizza-harness/fixtures"

	"github.com/gin-gonic/gin"
)

func setupFranchiseRouter(h *FranchiseHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/franchise", h.ListFranchises)
	r.GET("/api/franchise/:id", h.GetFranchise)
	r.POST("/api/franchise", h.CreateFranchise)
	r.POST("/api/franchise/:id/store", h.CreateFranchise)
	r.DELETE("/api/franchise/:id", h.Delete)
	r.DELETE("/api/franchise/:id/store/:storeId", h.Delete)
	r.PUT("/api/franchise/:id", h.Unhandled)
	return r
}

func newFranchiseHandler() (*FranchiseHandler, *recordingReporter) {
	rep := &recordingReporter{}
	return &FranchiseHandler{
		List:     fixtures.Franchises(),
		Details:  fixtures.FranchiseDetails(),
		Reporter: rep,
	}, rep
}

func TestListFranchisesDefault(t *testing.T) {
	h, _ := newFranchiseHandler()
	w := serve(setupFranchiseRouter(h), jsonRequest("GET", "/api/franchise", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	list := resp["franchises"].([]interface{})
	if len(list) != 3 {
		t.Fatalf("expected 3 franchises, got %d", len(list))
	}
	if resp["more"] != false {
		t.Errorf("expected more=false, got %v", resp["more"])
	}
	first := list[0].(map[string]interface{})
	if first["id"] != float64(2) {
		t.Errorf("expected numeric id 2, got %#v", first["id"])
	}
	if first["admins"] == nil {
		t.Error("expected admins on LotaPizza")
	}
	last := list[2].(map[string]interface{})
	if stores, ok := last["stores"].([]interface{}); !ok || len(stores) != 0 {
		t.Errorf("expected empty stores array for topSpot, got %#v", last["stores"])
	}
	if _, ok := last["admins"]; ok {
		t.Error("expected admins to be omitted for topSpot")
	}
}

func TestGetFranchiseIgnoresID(t *testing.T) {
	h, _ := newFranchiseHandler()
	router := setupFranchiseRouter(h)

	a := serve(router, jsonRequest("GET", "/api/franchise/200", nil))
	b := serve(router, jsonRequest("GET", "/api/franchise/does-not-exist", nil))

	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("expected 200 for both lookups, got %d and %d", a.Code, b.Code)
	}
	if a.Body.String() != b.Body.String() {
		t.Errorf("expected the same fixture for every id:\n%s\n%s", a.Body.String(), b.Body.String())
	}
	details := parseResponseArray(a)
	if len(details) != 1 || details[0].(map[string]interface{})["name"] != "Rocket Slice" {
		t.Errorf("expected Rocket Slice detail, got %s", a.Body.String())
	}
}

func TestCreateFranchiseEchoesBody(t *testing.T) {
	h, _ := newFranchiseHandler()
	router := setupFranchiseRouter(h)

	body := `{"name":"pizzaPocket","admins":[{"email":"f@jwt.com"}],"extra":1}`
	req := httptest.NewRequest("POST", "/api/franchise", bytes.NewBufferString(body))
	w := serve(router, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if w.Body.String() != body {
		t.Errorf("expected body echoed verbatim, got %s", w.Body.String())
	}

	list := serve(router, jsonRequest("GET", "/api/franchise", nil))
	if n := len(parseResponse(list)["franchises"].([]interface{})); n != 3 {
		t.Errorf("expected creation not to persist, got %d franchises", n)
	}
}

func TestCreateStoreEchoesBody(t *testing.T) {
	h, _ := newFranchiseHandler()
	w := serve(setupFranchiseRouter(h), jsonRequest("POST", "/api/franchise/2/store", map[string]string{"name": "Provo"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if parseResponse(w)["name"] != "Provo" {
		t.Errorf("expected echoed store, got %s", w.Body.String())
	}
}

func TestCreateFranchiseRejectsInvalidJSON(t *testing.T) {
	h, rep := newFranchiseHandler()
	req := httptest.NewRequest("POST", "/api/franchise", bytes.NewBufferString("{oops"))
	w := serve(setupFranchiseRouter(h), req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if len(rep.messages) != 1 {
		t.Errorf("expected one report, got %v", rep.messages)
	}
}

func TestDeleteFranchiseAndStore(t *testing.T) {
	h, _ := newFranchiseHandler()
	router := setupFranchiseRouter(h)

	for _, path := range []string{"/api/franchise/2", "/api/franchise/2/store/4"} {
		w := serve(router, jsonRequest("DELETE", path, nil))
		if w.Code != http.StatusNoContent {
			t.Errorf("DELETE %s: expected status 204, got %d", path, w.Code)
		}
	}

	list := serve(router, jsonRequest("GET", "/api/franchise", nil))
	first := parseResponse(list)["franchises"].([]interface{})[0].(map[string]interface{})
	if n := len(first["stores"].([]interface{})); n != 3 {
		t.Errorf("expected deletion not to persist, got %d stores", n)
	}
}

func TestUnhandledFranchiseRoute(t *testing.T) {
	h, _ := newFranchiseHandler()
	w := serve(setupFranchiseRouter(h), jsonRequest("PUT", "/api/franchise/2", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp["message"] != "Unhandled franchise route" {
		t.Errorf("expected diagnostic message, got %v", resp["message"])
	}
}
