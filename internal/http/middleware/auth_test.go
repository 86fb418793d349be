package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"manara/internal/domain/models"
	"manara/internal/services"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("unit-test-secret-key-0123456789")

func testRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(testSecret)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c), "role": UserRole(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	svc := services.AuthService{
		JWTSecret:  testSecret,
		AccessTTL:  time.Hour,
		RefreshTTL: time.Hour,
	}
	pair, err := svc.IssueTokenPair(u)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}
	return pair.Access
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := testRouter(t)
	u := models.User{ID: 5, Email: "jane@example.com", UserType: models.UserTypeCommuter, IsVerified: true}

	if w := get(r, tokenFor(t, u)); w.Code != http.StatusOK {
		t.Fatalf("valid token rejected: %d %s", w.Code, w.Body.String())
	}
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header should be 401, got %d", w.Code)
	}
	if w := get(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token should be 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsRefreshTokens(t *testing.T) {
	r := testRouter(t)
	svc := services.AuthService{JWTSecret: testSecret, AccessTTL: time.Hour, RefreshTTL: time.Hour}
	pair, err := svc.IssueTokenPair(models.User{ID: 5, UserType: models.UserTypeCommuter})
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	if w := get(r, pair.Refresh); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token on a protected route should be 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsExpired(t *testing.T) {
	r := testRouter(t)
	past := time.Now().Add(-2 * time.Hour)
	svc := services.AuthService{
		JWTSecret:  testSecret,
		AccessTTL:  time.Hour,
		RefreshTTL: time.Hour,
		Now:        func() time.Time { return past },
	}
	pair, err := svc.IssueTokenPair(models.User{ID: 5, UserType: models.UserTypeCommuter})
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	if w := get(r, pair.Access); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token should be 401, got %d", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	r := testRouter(t, RequireRoles(models.UserTypeSaccoOwner, models.UserTypeOperator))

	owner := models.User{ID: 5, UserType: models.UserTypeSaccoOwner}
	if w := get(r, tokenFor(t, owner)); w.Code != http.StatusOK {
		t.Fatalf("sacco owner should pass: %d %s", w.Code, w.Body.String())
	}

	commuter := models.User{ID: 6, UserType: models.UserTypeCommuter}
	if w := get(r, tokenFor(t, commuter)); w.Code != http.StatusForbidden {
		t.Fatalf("commuter should be 403, got %d", w.Code)
	}
}
