package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// injectIdentity simulates RequireAuth by placing request data on the context.
func injectIdentity(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := &requestdata.RequestData{UserID: uuid.New(), Email: "t@example.com", Role: role}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testLogger(), nil)

	tests := []struct {
		name       string
		callerRole string
		allowed    []string
		wantStatus int
	}{
		{name: "admin allowed on admin route", callerRole: types.RoleAdmin, allowed: []string{types.RoleAdmin, types.RoleSuperAdmin}, wantStatus: http.StatusOK},
		{name: "super admin allowed on admin route", callerRole: types.RoleSuperAdmin, allowed: []string{types.RoleAdmin, types.RoleSuperAdmin}, wantStatus: http.StatusOK},
		{name: "user forbidden on admin route", callerRole: types.RoleUser, allowed: []string{types.RoleAdmin, types.RoleSuperAdmin}, wantStatus: http.StatusForbidden},
		{name: "admin forbidden on super admin route", callerRole: types.RoleAdmin, allowed: []string{types.RoleSuperAdmin}, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/guarded", injectIdentity(tt.callerRole), am.RequireRoles(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestRequireRoles_MissingIdentityIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testLogger(), nil)

	r := gin.New()
	r.GET("/guarded", am.RequireRoles(types.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestRequireAuth_MissingHeaderIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testLogger(), nil)

	r := gin.New()
	r.GET("/guarded", am.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well formed", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "missing scheme", header: "abc.def.ghi", want: ""},
		{name: "empty", header: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(c); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
