package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/digipratibha/stuportal/internal/model"
	"github.com/digipratibha/stuportal/internal/pkg/jwt"
)

var testSecret = []byte("test-secret")

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/", JWTAuth(testSecret))
	authed.GET("/me", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserIDKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	admin := authed.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doAuthed(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	router := newAuthRouter()

	validToken, err := jwt.GenerateToken("u1", model.RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)
	wrongSecretToken, err := jwt.GenerateToken("u1", model.RoleStudent, []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	expiredToken, err := jwt.GenerateToken("u1", model.RoleStudent, testSecret, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "missing header", header: "", code: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", code: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", code: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + wrongSecretToken, code: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expiredToken, code: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + validToken, code: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthed(router, "/me", tt.header)
			require.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestJWTAuth_SetsIdentity(t *testing.T) {
	router := newAuthRouter()
	token, err := jwt.GenerateToken("u42", model.RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)

	rec := doAuthed(router, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "u42")
}

func TestRequireAdmin(t *testing.T) {
	router := newAuthRouter()

	studentToken, err := jwt.GenerateToken("u1", model.RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)
	adminToken, err := jwt.GenerateToken("a1", model.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	rec := doAuthed(router, "/admin/ping", "Bearer "+studentToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAuthed(router, "/admin/ping", "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
}
