// internal/handlers/common_test.go
package handlers

import (
	"bytes"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

type stubUserLoader struct {
	user *models.User
}

func (s stubUserLoader) GetUserByID(id uuid.UUID) (*models.User, error) {
	return s.user, nil
}

func testBuyer() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Username:  "alice",
		Role:      models.UserRoleBuyer,
	}
}

// serveAs dispatches a request through a fresh engine with the given user
// already authenticated, the way AuthRequired would leave the context.
func serveAs(user *models.User, method, path string, register func(*gin.Engine), body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID.String())
	})
	register(r)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
