// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := GetPaginationParams(paginationContext(""))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsBadValues(t *testing.T) {
	params := GetPaginationParams(paginationContext("page=-3&limit=9999&order=sideways"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsExplicit(t *testing.T) {
	params := GetPaginationParams(paginationContext("page=3&limit=50&sort=price&order=asc&search=rose"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, "price", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "rose", params.Search)
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult([]string{"a"}, 41, params)

	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}

func TestValidateStructCustomTags(t *testing.T) {
	type form struct {
		Username string `validate:"required,username"`
		Password string `validate:"required,strong_password"`
	}

	assert.NoError(t, ValidateStruct(&form{Username: "alice_99", Password: "Str0ng!pass"}))
	assert.Error(t, ValidateStruct(&form{Username: "a!", Password: "Str0ng!pass"}))
	assert.Error(t, ValidateStruct(&form{Username: "alice_99", Password: "weakpass"}))
}
