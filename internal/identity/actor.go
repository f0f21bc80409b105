package identity

import (
	"github.com/google/uuid"

	"github.com/shieldify/takedown-portal/internal/models"
)

// Actor is the resolved identity of the current request: who is calling and
// with which role. It is constructed once per request from the JWT claims and
// passed down explicitly.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
