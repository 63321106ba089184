// internal/tests/favorite_test.go
package tests

import (
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

	"github.com/madeinfrance/mif-backend/internal/handlers"
	"github.com/madeinfrance/mif-backend/internal/i18n"
	"github.com/madeinfrance/mif-backend/internal/middleware"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

type FavoriteTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	user   models.User
	brand  models.Brand
	token  string
}

func (suite *FavoriteTestSuite) SetupTest() {
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
		&models.Sector{},
		&models.Region{},
		&models.Label{},
		&models.Brand{},
		&models.BrandLabel{},
		&models.Product{},
		&models.Favorite{},
		&models.Event{},
	))
	suite.db = db

	utils.SetJWTSecret("test-secret")

	suite.user = models.User{
		Email:        "fan@example.com",
		PasswordHash: "irrelevant",
		Role:         models.UserRoleConsumer,
		Status:       models.UserStatusActive,
	}
	suite.Require().NoError(db.Create(&suite.user).Error)

	suite.brand = models.Brand{
		Slug:   "maison-test",
		Name:   "Maison Test",
		Status: models.BrandStatusActive,
	}
	suite.Require().NoError(db.Create(&suite.brand).Error)

	suite.token, err = utils.GenerateJWT(suite.user.ID, suite.user.Email, string(suite.user.Role), 1)
	suite.Require().NoError(err)

	eventService := services.NewEventService(db)
	favoriteService := services.NewFavoriteService(db, eventService)
	brandService := services.NewBrandService(db, eventService)
	productService := services.NewProductService(db)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	brandHandler := handlers.NewBrandHandler(brandService, productService)

	suite.router = gin.New()
	suite.router.GET("/v1/brands/:slug", brandHandler.GetBrand)
	favorites := suite.router.Group("/v1/users/:userId/favorites")
	favorites.Use(middleware.AuthRequired())
	{
		favorites.GET("", favoriteHandler.GetFavorites)
		favorites.POST("", favoriteHandler.AddFavorite)
		favorites.POST("/:brandId", favoriteHandler.AddFavorite)
		favorites.DELETE("/:brandId", favoriteHandler.RemoveFavorite)
	}
}

func (suite *FavoriteTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *FavoriteTestSuite) TestAddFavoriteWithBodiedBrandID() {
	path := "/v1/users/" + suite.user.ID.String() + "/favorites"
	body := fmt.Sprintf(`{"brand_id":%q}`, suite.brand.ID.String())

	w := suite.do("POST", path, body)
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	var count int64
	suite.db.Model(&models.Favorite{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	// The path-param form targets the same list
	w = suite.do("POST", path+"/"+suite.brand.ID.String(), "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.db.Model(&models.Favorite{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *FavoriteTestSuite) TestAddFavoriteRejectsBadBody() {
	path := "/v1/users/" + suite.user.ID.String() + "/favorites"

	w := suite.do("POST", path, `{}`)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do("POST", path, `{"brand_id":"not-a-uuid"}`)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *FavoriteTestSuite) TestBrandNotFoundMessageIsClean() {
	w := suite.do("GET", "/v1/brands/marque-inconnue", "")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "NOT_FOUND", response.Error.Code)
	// The handler's message must pass through verbatim, not get a second
	// suffix bolted on and re-resolved
	assert.Equal(suite.T(), i18n.T("fr", i18n.KeyBrandNotFound), response.Error.Message)
	assert.NotContains(suite.T(), response.Error.Message, "not_found.not_found")
}

func TestFavoriteSuite(t *testing.T) {
	suite.Run(t, new(FavoriteTestSuite))
}
