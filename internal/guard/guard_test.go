package guard

import (
	"testing"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	player := &Subject{Username: "alex-kumar", Role: models.RolePlayer}
	admin := &Subject{Username: "club-admin", Role: models.RoleAdmin}

	cases := []struct {
		name     string
		sub      *Subject
		req      Requirement
		expected State
	}{
		{"no token", nil, Requirement{}, StateUnauthenticated},
		{"no token with role requirement", nil, Requirement{Role: models.RoleAdmin}, StateUnauthenticated},
		{"any authenticated subject", player, Requirement{}, StateAuthorized},
		{"identity match", player, Requirement{Username: "alex-kumar"}, StateAuthorized},
		{"identity mismatch", player, Requirement{Username: "someone-else"}, StateWrongIdentity},
		{"role met", player, Requirement{Role: models.RolePlayer}, StateAuthorized},
		{"role not met", player, Requirement{Role: models.RoleAdmin}, StateInsufficientRole},
		{"admin bypasses identity", admin, Requirement{Username: "alex-kumar"}, StateAuthorized},
		{"admin bypasses role", admin, Requirement{Role: models.RoleAdmin}, StateAuthorized},
		{"role checked before identity", player, Requirement{Username: "someone-else", Role: models.RoleAdmin}, StateInsufficientRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Evaluate(tc.sub, tc.req))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "wrong-identity", StateWrongIdentity.String())
	assert.Equal(t, "insufficient-role", StateInsufficientRole.String())
	assert.Equal(t, "authorized", StateAuthorized.String())
}
