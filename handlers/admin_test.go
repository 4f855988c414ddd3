package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	businessRepo "barberhub/database/repository/business"
	"barberhub/database/store"
	"barberhub/models"
	"barberhub/services/business"
	"barberhub/services/metrics"
)

func newAdminTestRouter(t *testing.T) (*gin.Engine, businessRepo.BusinessRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	st := store.NewMemoryStore()
	repo := businessRepo.NewStoreBusinessRepo(st)
	h := NewAdminHandler(
		&business.DefaultBusinessService{Repo: repo},
		&metrics.DefaultMetricsService{
			Repo:  repo,
			Cache: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		},
		nil, // billing untested here, no Stripe round trips
	)
	r := gin.New()
	r.GET("/api/admin/stats", h.DashboardStatsHandler)
	r.GET("/api/admin/stats/snapshot", h.CachedStatsHandler)
	r.POST("/api/admin/businesses/bulk-status", h.BulkStatusHandler)
	r.POST("/api/admin/businesses/bulk-delete", h.BulkDeleteHandler)
	return r, repo
}

func seedShops(t *testing.T, repo businessRepo.BusinessRepository, plans ...string) {
	t.Helper()
	for _, plan := range plans {
		view := &models.BusinessView{Name: "shop", Email: "x@example.com", SubscriptionPlan: plan}
		if _, err := repo.Create(t.Context(), view); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestDashboardStatsHandler(t *testing.T) {
	r, repo := newAdminTestRouter(t)
	seedShops(t, repo, models.PlanBasic, models.PlanPremium, models.PlanPremium, "")

	w := jsonRequest(r, http.MethodGet, "/api/admin/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var stats models.DashboardStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if stats.TotalBusinesses != 4 || stats.ActiveBusinesses != 4 {
		t.Errorf("counts = (%d, %d), want (4, 4)", stats.TotalBusinesses, stats.ActiveBusinesses)
	}
	want := map[string]int{models.PlanBasic: 1, models.PlanPremium: 2, models.PlanTrial: 1}
	for _, bucket := range stats.PlanBuckets {
		if bucket.Count != want[bucket.Label] {
			t.Errorf("bucket %q = %d, want %d", bucket.Label, bucket.Count, want[bucket.Label])
		}
	}
	if len(stats.RevenueTrend) != 4 {
		t.Errorf("trend has %d points, want 4", len(stats.RevenueTrend))
	}
}

func TestCachedStatsHandlerFallsBackToLive(t *testing.T) {
	r, repo := newAdminTestRouter(t)
	seedShops(t, repo, models.PlanBasic)

	w := jsonRequest(r, http.MethodGet, "/api/admin/stats/snapshot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if stats.TotalBusinesses != 1 {
		t.Errorf("TotalBusinesses = %d, want live recompute of 1", stats.TotalBusinesses)
	}
}

func TestBulkStatusHandler(t *testing.T) {
	r, repo := newAdminTestRouter(t)
	seedShops(t, repo, models.PlanBasic, models.PlanBasic)

	w := jsonRequest(r, http.MethodPost, "/api/admin/businesses/bulk-status",
		`{"ids":["1","2"],"status":"suspended"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	views, err := repo.GetAll(t.Context())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	for _, v := range views {
		if v.Status != models.BusinessStatusSuspended {
			t.Errorf("id %s status = %q, want suspended", v.ID, v.Status)
		}
	}

	// Missing fields fail binding before the service runs.
	if w := jsonRequest(r, http.MethodPost, "/api/admin/businesses/bulk-status", `{"ids":["1"]}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing status: status = %d, want 400", w.Code)
	}
}

func TestBulkDeleteHandler(t *testing.T) {
	r, repo := newAdminTestRouter(t)
	seedShops(t, repo, models.PlanBasic, models.PlanBasic, models.PlanBasic)

	w := jsonRequest(r, http.MethodPost, "/api/admin/businesses/bulk-delete",
		`{"ids":["1","3"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	views, err := repo.GetAll(t.Context())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(views) != 1 || views[0].ID != "2" {
		t.Errorf("survivors = %+v, want only id 2", views)
	}
}
