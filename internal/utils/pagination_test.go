// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/brands?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "name", params.Sort)
	assert.Equal(t, "asc", params.Order)
}

func TestGetPaginationParamsBounds(t *testing.T) {
	params := paramsForQuery(t, "page=-3&limit=500")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)

	params = paramsForQuery(t, "page=4&limit=100&order=bogus")
	assert.Equal(t, 4, params.Page)
	assert.Equal(t, 100, params.Limit)
	assert.Equal(t, "asc", params.Order)
}

func TestCreatePaginationResultTotalPages(t *testing.T) {
	cases := []struct {
		total      int64
		limit      int
		totalPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{30, 12, 3},
		{100, 100, 1},
	}

	for _, tc := range cases {
		result := CreatePaginationResult(nil, tc.total, PaginationParams{Page: 1, Limit: tc.limit})
		assert.Equal(t, tc.totalPages, result.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
	}
}
