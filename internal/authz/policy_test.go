// internal/authz/policy_test.go
package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

func buyer() *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Role: models.UserRoleBuyer}
}

func seller() *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Role: models.UserRoleSeller}
}

func admin() *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Role: models.UserRoleAdmin}
}

func superuser() *models.User {
	u := admin()
	u.IsSuperuser = true
	return u
}

func TestCanNilActor(t *testing.T) {
	assert.False(t, Can(nil, ActionUseCart, Resource{}))
}

func TestCanEditProduct(t *testing.T) {
	owner := seller()

	assert.True(t, Can(owner, ActionEditProduct, Resource{OwnerID: owner.ID}))
	assert.False(t, Can(seller(), ActionEditProduct, Resource{OwnerID: owner.ID}))
	// Editing is for the owner only; moderation uses delete.
	assert.False(t, Can(admin(), ActionEditProduct, Resource{OwnerID: owner.ID}))
}

func TestCanDeleteProduct(t *testing.T) {
	owner := seller()

	assert.True(t, Can(owner, ActionDeleteProduct, Resource{OwnerID: owner.ID}))
	assert.True(t, Can(admin(), ActionDeleteProduct, Resource{OwnerID: owner.ID}))
	assert.False(t, Can(buyer(), ActionDeleteProduct, Resource{OwnerID: owner.ID}))
}

func TestCanUseCart(t *testing.T) {
	assert.True(t, Can(buyer(), ActionUseCart, Resource{}))
	assert.True(t, Can(seller(), ActionUseCart, Resource{}))
	assert.False(t, Can(admin(), ActionUseCart, Resource{}))
	assert.False(t, Can(superuser(), ActionUseCart, Resource{}))
}

func TestCanAdminOnlyActions(t *testing.T) {
	for _, action := range []Action{ActionDeleteReview, ActionViewDashboard, ActionResolveReport} {
		assert.True(t, Can(admin(), action, Resource{}), "action %s", action)
		assert.True(t, Can(superuser(), action, Resource{}), "action %s", action)
		assert.False(t, Can(buyer(), action, Resource{}), "action %s", action)
		assert.False(t, Can(seller(), action, Resource{}), "action %s", action)
	}
}

func TestCanDeleteUser(t *testing.T) {
	assert.True(t, Can(admin(), ActionDeleteUser, Resource{}))
	assert.False(t, Can(buyer(), ActionDeleteUser, Resource{}))
	assert.False(t, Can(admin(), ActionDeleteUser, Resource{IsSuperuser: true}))
	assert.False(t, Can(admin(), ActionDeleteUser, Resource{IsSelf: true}))
}

func TestCanToggleAdmin(t *testing.T) {
	assert.True(t, Can(superuser(), ActionToggleAdmin, Resource{}))
	assert.False(t, Can(admin(), ActionToggleAdmin, Resource{}))
	assert.False(t, Can(superuser(), ActionToggleAdmin, Resource{IsSuperuser: true}))
}

func TestCanUnknownAction(t *testing.T) {
	assert.False(t, Can(superuser(), Action("nonsense"), Resource{}))
}
