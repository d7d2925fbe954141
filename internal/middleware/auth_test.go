// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/farmer-only", AuthRequired(), FarmerRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/optional", OptionalAuth(), func(c *gin.Context) {
		_, authenticated := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	return r
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	utils.SetJWTSecret("middleware-test-secret")
	token, err := utils.GenerateJWT(uuid.New(), "Test User", role, 1)
	require.NoError(t, err)
	return token
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	r := setupRouter()
	token := tokenFor(t, string(models.UserRoleDealer))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired(t *testing.T) {
	r := setupRouter()

	// Dealer token cannot reach a farmer route.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/farmer-only", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, string(models.UserRoleDealer)))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Farmer token can.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/farmer-only", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, string(models.UserRoleFarmer)))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := setupRouter()

	// Anonymous requests pass through unauthenticated.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/optional", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// A valid token is honored.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, string(models.UserRoleFarmer)))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)

	// A bad token degrades to anonymous instead of failing.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
