package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"barberhub/models"
	"barberhub/utils"
)

// fakeSessions serves canned sessions keyed by ID.
type fakeSessions struct {
	sessions map[string]*models.Session
}

func (f *fakeSessions) SignInGuest(ctx context.Context, device models.DeviceInfo) (*models.Session, string, error) {
	return nil, "", nil
}
func (f *fakeSessions) SignInOwner(ctx context.Context, idToken string, device models.DeviceInfo) (*models.Session, string, error) {
	return nil, "", nil
}
func (f *fakeSessions) SignInAdmin(ctx context.Context, email, password string, device models.DeviceInfo) (*models.Session, string, error) {
	return nil, "", nil
}
func (f *fakeSessions) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return f.sessions[sessionID], nil
}
func (f *fakeSessions) SignOut(ctx context.Context, sessionID string) error { return nil }
func (f *fakeSessions) OnAuthChange(fn func(*models.Session)) func()        { return func() {} }

func newAuthTestRouter(sessions *fakeSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", SessionAuthMiddleware(sessions))
	protected.GET("/me", func(c *gin.Context) {
		sess := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"role": sess.Role})
	})
	protected.PUT("/businesses/:id", OwnerAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func tokenFor(t *testing.T, sess *models.Session) string {
	t.Helper()
	token, err := utils.GenerateToken(sess.ID, sess.Role, sess.Email, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

func doRequest(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuthMiddlewareRejectsBadTokens(t *testing.T) {
	r := newAuthTestRouter(&fakeSessions{sessions: map[string]*models.Session{}})

	if w := doRequest(r, http.MethodGet, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d, want 401", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/me", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
}

func TestSessionAuthMiddlewareRejectsExpiredSession(t *testing.T) {
	// The token validates but the session is gone from the store.
	r := newAuthTestRouter(&fakeSessions{sessions: map[string]*models.Session{}})
	ghost := &models.Session{ID: "gone", Role: models.RoleGuest}

	if w := doRequest(r, http.MethodGet, "/me", tokenFor(t, ghost)); w.Code != http.StatusUnauthorized {
		t.Errorf("expired session: status = %d, want 401", w.Code)
	}
}

func TestSessionAuthMiddlewarePlacesSessionOnContext(t *testing.T) {
	sess := &models.Session{ID: "s1", Role: models.RoleGuest}
	r := newAuthTestRouter(&fakeSessions{sessions: map[string]*models.Session{"s1": sess}})

	w := doRequest(r, http.MethodGet, "/me", tokenFor(t, sess))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"role":"guest"}` {
		t.Errorf("body = %s", body)
	}
}

func TestOwnerAuthMiddlewareScopesToOwnBusiness(t *testing.T) {
	owner := &models.Session{ID: "s-owner", Role: models.RoleOwner, SubjectID: "7"}
	admin := &models.Session{ID: "s-admin", Role: models.RoleAdmin}
	guest := &models.Session{ID: "s-guest", Role: models.RoleGuest}
	r := newAuthTestRouter(&fakeSessions{sessions: map[string]*models.Session{
		"s-owner": owner, "s-admin": admin, "s-guest": guest,
	}})

	if w := doRequest(r, http.MethodPut, "/businesses/7", tokenFor(t, owner)); w.Code != http.StatusNoContent {
		t.Errorf("owner on own business: status = %d, want 204", w.Code)
	}
	if w := doRequest(r, http.MethodPut, "/businesses/8", tokenFor(t, owner)); w.Code != http.StatusForbidden {
		t.Errorf("owner on another business: status = %d, want 403", w.Code)
	}
	if w := doRequest(r, http.MethodPut, "/businesses/8", tokenFor(t, admin)); w.Code != http.StatusNoContent {
		t.Errorf("admin on any business: status = %d, want 204", w.Code)
	}
	if w := doRequest(r, http.MethodPut, "/businesses/7", tokenFor(t, guest)); w.Code != http.StatusForbidden {
		t.Errorf("guest: status = %d, want 403", w.Code)
	}
}
