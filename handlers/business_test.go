package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	businessRepo "barberhub/database/repository/business"
	"barberhub/database/store"
	"barberhub/models"
	"barberhub/services/business"
)

func newBusinessTestRouter() (*gin.Engine, store.DocumentStore) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	h := NewBusinessHandler(&business.DefaultBusinessService{
		Repo: businessRepo.NewStoreBusinessRepo(st),
	})
	r := gin.New()
	r.POST("/api/businesses", h.RegisterBusinessHandler)
	r.GET("/api/businesses", h.ListBusinessesHandler)
	r.GET("/api/businesses/:id", h.GetBusinessHandler)
	r.PUT("/api/businesses/:id", h.UpdateBusinessHandler)
	r.PUT("/api/businesses/:id/image/:kind", h.UpdateBusinessImageHandler)
	r.DELETE("/api/businesses/:id", h.DeleteBusinessHandler)
	return r, st
}

func jsonRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterBusinessHandler(t *testing.T) {
	r, _ := newBusinessTestRouter()

	w := jsonRequest(r, http.MethodPost, "/api/businesses",
		`{"name":"Fade Factory","email":"owner@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created models.BusinessView
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.ID != "1" {
		t.Errorf("ID = %q, want %q", created.ID, "1")
	}
	if created.City != "Toronto" {
		t.Errorf("City = %q, response must carry the reconciled view", created.City)
	}
	if len(created.OpeningHours) != 7 {
		t.Errorf("OpeningHours has %d days, want all 7", len(created.OpeningHours))
	}
}

func TestGetBusinessHandlerNotFound(t *testing.T) {
	r, _ := newBusinessTestRouter()
	if w := jsonRequest(r, http.MethodGet, "/api/businesses/404", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListBusinessesHandlerOrdersByID(t *testing.T) {
	r, _ := newBusinessTestRouter()
	for _, name := range []string{"A", "B", "C"} {
		w := jsonRequest(r, http.MethodPost, "/api/businesses",
			`{"name":"`+name+`","email":"x@example.com"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed failed: %s", w.Body.String())
		}
	}

	w := jsonRequest(r, http.MethodGet, "/api/businesses", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var views []models.BusinessView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("listed %d businesses, want 3", len(views))
	}
	for i, want := range []string{"1", "2", "3"} {
		if views[i].ID != want {
			t.Errorf("order[%d] = %q, want %q", i, views[i].ID, want)
		}
	}
}

func TestUpdateBusinessImageHandler(t *testing.T) {
	r, st := newBusinessTestRouter()
	w := jsonRequest(r, http.MethodPost, "/api/businesses",
		`{"name":"Cuts","email":"x@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %s", w.Body.String())
	}

	req := httptest.NewRequest(http.MethodPut, "/api/businesses/1/image/profile",
		strings.NewReader("data:image/png;base64,AAAA"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var stored string
	if err := st.Get(req.Context(), "businesses/1/profileImage", &stored); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored != "data:image/png;base64,AAAA" {
		t.Errorf("stored image = %q", stored)
	}

	// Empty body and unknown kind are both rejected.
	empty := httptest.NewRequest(http.MethodPut, "/api/businesses/1/image/profile", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, empty)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", rec.Code)
	}
}

func TestDeleteBusinessHandler(t *testing.T) {
	r, _ := newBusinessTestRouter()
	w := jsonRequest(r, http.MethodPost, "/api/businesses",
		`{"name":"Cuts","email":"x@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %s", w.Body.String())
	}

	if w := jsonRequest(r, http.MethodDelete, "/api/businesses/1", ""); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", w.Code)
	}
	if w := jsonRequest(r, http.MethodGet, "/api/businesses/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", w.Code)
	}
}
