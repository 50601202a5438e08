package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/utils"
)

const testSecret = "middleware-test-secret"

func newAuthRouter(t *testing.T, handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, handler)
	router.GET("/protected", handlers...)
	return router
}

func signTestToken(t *testing.T, role string) (primitive.ObjectID, string) {
	t.Helper()
	id := primitive.NewObjectID()
	token, err := utils.GenerateJWTToken(id, "jordan@example.com", "Jordan", role, testSecret, "ecocollect", time.Hour)
	require.NoError(t, err)
	return id, token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := newAuthRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	var gotID primitive.ObjectID
	var gotRole string

	router := newAuthRouter(t, func(c *gin.Context) {
		gotID = c.MustGet("accountId").(primitive.ObjectID)
		gotRole = c.MustGet("role").(string)
		c.Status(http.StatusOK)
	})

	id, token := signTestToken(t, "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "user", gotRole)
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	router := newAuthRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	_, token := signTestToken(t, "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	router := newAuthRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) })

	id := primitive.NewObjectID()
	token, err := utils.GenerateJWTToken(id, "a@b.co", "A", "user", testSecret, "ecocollect", -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"admin passes admin gate", "admin", []string{"admin"}, http.StatusOK},
		{"user blocked at admin gate", "user", []string{"admin"}, http.StatusForbidden},
		{"receiver passes multi-role gate", "receiver", []string{"admin", "receiver"}, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newAuthRouter(t, func(c *gin.Context) { c.Status(http.StatusOK) }, RequireRole(tc.allowed...))

			_, token := signTestToken(t, tc.role)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestRequireRoleWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/gated", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
