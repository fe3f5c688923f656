package access

import "github.com/google/uuid"

type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwner
	ScopeAll
)

// Visibility is the set of owned records an actor may read.
type Visibility struct {
	Scope   Scope
	OwnerID uuid.UUID
}

// VisibilityFor is shared by every resource: moderators see everything,
// members see what they own, anonymous actors see nothing.
func VisibilityFor(a Actor) Visibility {
	switch {
	case a.IsAnonymous():
		return Visibility{Scope: ScopeNone}
	case IsModerator(a):
		return Visibility{Scope: ScopeAll}
	default:
		return Visibility{Scope: ScopeOwner, OwnerID: a.ID()}
	}
}
