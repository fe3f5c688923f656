// Package access holds the acting identity and the authorization rules
// applied to courses, lessons, payments and users.
package access

import (
	"github.com/google/uuid"

	"coursehub/internal/models/db_models"
)

// Actor is the identity an operation runs on behalf of. The zero value is anonymous.
type Actor struct {
	id            uuid.UUID
	role          db_models.UserRole
	authenticated bool
}

func Anonymous() Actor {
	return Actor{}
}

func Authenticated(id uuid.UUID, role db_models.UserRole) Actor {
	if !role.Valid() {
		role = db_models.RoleMember
	}
	return Actor{id: id, role: role, authenticated: true}
}

// ForUser builds an authenticated actor from a stored user. A nil user is anonymous.
func ForUser(user *db_models.User) Actor {
	if user == nil {
		return Anonymous()
	}
	return Authenticated(user.ID, user.Role)
}

func (a Actor) IsAnonymous() bool {
	return !a.authenticated
}

// ID returns uuid.Nil for anonymous actors.
func (a Actor) ID() uuid.UUID {
	return a.id
}

func (a Actor) Role() db_models.UserRole {
	return a.role
}

// Owns reports whether the actor is the recorded owner. Nil owners belong to nobody.
func (a Actor) Owns(owner *uuid.UUID) bool {
	return a.authenticated && owner != nil && *owner == a.id
}

func (a Actor) String() string {
	if !a.authenticated {
		return "anonymous"
	}
	return a.id.String()
}
