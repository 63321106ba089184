// internal/tests/auth_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/handlers"
	"github.com/madeinfrance/mif-backend/internal/middleware"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type AuthTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *AuthTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(suite.T().Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Favorite{},
		&models.Event{},
	))
	suite.db = db

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	eventService := services.NewEventService(db)
	authService := services.NewAuthService(db, cfg, eventService)
	authHandler := handlers.NewAuthHandler(authService)

	suite.router = gin.New()
	auth := suite.router.Group("/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
	}
}

func (suite *AuthTestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthTestSuite) register(email string) map[string]interface{} {
	w := suite.postJSON("/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "TestPass123",
		"role":     "brand_owner",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response["data"].(map[string]interface{})
}

func (suite *AuthTestSuite) TestUserRegistration() {
	data := suite.register("owner@example.com")

	assert.NotEmpty(suite.T(), data["token"])
	assert.NotEmpty(suite.T(), data["refresh_token"])
	assert.Equal(suite.T(), "Bearer", data["token_type"])

	user := data["user"].(map[string]interface{})
	assert.Equal(suite.T(), "owner@example.com", user["email"])
	assert.Equal(suite.T(), "brand_owner", user["role"])
	// The hash must never appear in a response
	assert.NotContains(suite.T(), w2s(user), "password")
}

func (suite *AuthTestSuite) TestDuplicateRegistrationConflicts() {
	suite.register("owner@example.com")

	w := suite.postJSON("/v1/auth/register", map[string]interface{}{
		"email":    "owner@example.com",
		"password": "TestPass123",
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *AuthTestSuite) TestWeakPasswordRejected() {
	w := suite.postJSON("/v1/auth/register", map[string]interface{}{
		"email":    "weak@example.com",
		"password": "short",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthTestSuite) TestLogin() {
	suite.register("owner@example.com")

	w := suite.postJSON("/v1/auth/login", map[string]interface{}{
		"email":    "owner@example.com",
		"password": "TestPass123",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))

	// Wrong password
	w = suite.postJSON("/v1/auth/login", map[string]interface{}{
		"email":    "owner@example.com",
		"password": "WrongPass123",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	// Unknown email gets the same answer as a wrong password
	w = suite.postJSON("/v1/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "TestPass123",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestProfileRequiresToken() {
	data := suite.register("owner@example.com")
	token := data["token"].(string)

	req, _ := http.NewRequest("GET", "/v1/auth/me", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	req, _ = http.NewRequest("GET", "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthTestSuite) TestRefreshToken() {
	data := suite.register("owner@example.com")
	refresh := data["refresh_token"].(string)

	w := suite.postJSON("/v1/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.postJSON("/v1/auth/refresh", map[string]interface{}{
		"refresh_token": "not-a-token",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func w2s(v interface{}) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
