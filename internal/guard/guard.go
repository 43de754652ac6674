// Package guard decides whether a resolved session may access a
// protected resource. The decision is a small state machine evaluated
// exactly once per request after token resolution; there are no
// retries, a non-authorized terminal state is final for that request.
package guard

import "github.com/coverpoint/clubhouse/internal/models"

type State int

const (
	// StateResolving is the initial state while the token is still
	// being parsed. Evaluate never returns it.
	StateResolving State = iota
	StateUnauthenticated
	StateWrongIdentity
	StateInsufficientRole
	StateAuthorized
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateWrongIdentity:
		return "wrong-identity"
	case StateInsufficientRole:
		return "insufficient-role"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Subject is the identity carried by a validated session token.
type Subject struct {
	Username string
	Role     models.Role
}

// Requirement is what a protected route demands. Zero values mean
// "any authenticated subject". Admins satisfy both identity and role
// requirements unconditionally.
type Requirement struct {
	Username string
	Role     models.Role
}

// Evaluate maps (subject, requirement) to a terminal state.
// A nil subject means the token was absent or failed validation.
func Evaluate(sub *Subject, req Requirement) State {
	if sub == nil {
		return StateUnauthenticated
	}
	if sub.Role == models.RoleAdmin {
		return StateAuthorized
	}
	if req.Role != "" && sub.Role != req.Role {
		return StateInsufficientRole
	}
	if req.Username != "" && sub.Username != req.Username {
		return StateWrongIdentity
	}
	return StateAuthorized
}
