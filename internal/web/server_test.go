// internal/web/server_test.go
package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madeinfrance/mif-backend/internal/config"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := NewServer(config.WebConfig{
		APIBaseURL: "http://api.test",
		SiteURL:    "http://site.test",
	})
	r, err := server.Router()
	require.NoError(t, err)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFavoritesPageIsWiredToTheAPI(t *testing.T) {
	w := get(t, testRouter(t), "/favoris")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<script")
	assert.Contains(t, body, "/v1/users/")
	assert.Contains(t, body, "/favorites")
	assert.Contains(t, body, "http://api.test")
}

func TestStudioPageBranchesOnOwnership(t *testing.T) {
	w := get(t, testRouter(t), "/studio")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// Auth forms
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, "/v1/auth/login")
	assert.Contains(t, body, "/v1/auth/register")
	// Ownership lookup drives the dashboard-or-onboarding branch
	assert.Contains(t, body, "/v1/user/brands")
	assert.Contains(t, body, "studio-dashboard")
	assert.Contains(t, body, "studio-onboarding")
	// Claim and create both reach the studio API
	assert.Contains(t, body, "/v1/studio/brands")
	assert.Contains(t, body, "/claim")
	assert.Contains(t, body, "http://api.test")
}
