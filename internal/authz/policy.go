// internal/authz/policy.go
package authz

import (
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

// Action names a capability an actor may hold on a resource.
type Action string

const (
	ActionEditProduct   Action = "product.edit"
	ActionDeleteProduct Action = "product.delete"
	ActionUseCart       Action = "cart.use"
	ActionDeleteReview  Action = "review.delete"
	ActionDeleteUser    Action = "user.delete"
	ActionToggleAdmin   Action = "user.toggle_admin"
	ActionViewDashboard Action = "dashboard.view"
	ActionResolveReport Action = "report.resolve"
)

// Resource is the subject of a policy decision. Fields are optional; only the
// ones an action cares about are consulted.
type Resource struct {
	OwnerID     uuid.UUID
	IsSuperuser bool
	IsSelf      bool
}

// Can is the single policy check. Handlers and services route every role or
// ownership decision through it instead of comparing role strings inline.
func Can(actor *models.User, action Action, res Resource) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionEditProduct:
		return actor.ID == res.OwnerID
	case ActionDeleteProduct:
		return actor.ID == res.OwnerID || actor.IsAdmin()
	case ActionUseCart:
		// Administrators moderate the marketplace; they do not shop.
		return !actor.IsAdmin()
	case ActionDeleteReview, ActionViewDashboard, ActionResolveReport:
		return actor.IsAdmin()
	case ActionDeleteUser:
		return actor.IsAdmin() && !res.IsSuperuser && !res.IsSelf
	case ActionToggleAdmin:
		return actor.IsSuperuser && !res.IsSuperuser
	default:
		return false
	}
}
