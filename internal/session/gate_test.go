package session

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/clientstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	admins := Authenticated(RoleAdmin)

	tests := []struct {
		name    string
		session Session
		guard   Guard
		want    Decision
	}{
		{"no token, role matches", Session{Role: RoleAdmin}, admins, RedirectLogin},
		{"no token, role mismatch", Session{Role: RoleUser}, admins, RedirectLogin},
		{"token, role matches", Session{Token: "t", Role: RoleAdmin}, admins, Allow},
		{"token, role mismatch", Session{Token: "t", Role: RoleUser}, admins, RedirectHome},
		{"token, no role", Session{Token: "t"}, admins, RedirectHome},
		{"nothing stored", Session{}, admins, RedirectLogin},
		{"requires auth, any role, empty session", Session{}, Authenticated(), RedirectLogin},
		{"public route, empty session", Session{}, Public, Allow},
		{"public route, signed in", Session{Token: "t", Role: RoleVeterinarian}, Public, Allow},
		{"roles without auth flag, anonymous", Session{}, Guard{AllowedRoles: []Role{RoleUser}}, Allow},
		{"roles without auth flag, wrong role", Session{Token: "t", Role: RoleAdmin}, Guard{AllowedRoles: []Role{RoleUser}}, RedirectHome},
		{"multiple roles", Session{Token: "t", Role: RoleVeterinarian}, Authenticated(RoleUser, RoleVeterinarian), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.session, tt.guard))
		})
	}
}

func TestAuthorizeAnyRoleWhenAllowedRolesEmpty(t *testing.T) {
	for _, role := range []Role{RoleNone, RoleAdmin, RoleUser, RoleVeterinarian, Role("garbage")} {
		got := Authorize(Session{Token: "t", Role: role}, Authenticated())
		assert.Equal(t, Allow, got, "role %q", role)
	}
}

func TestDecisionLocation(t *testing.T) {
	assert.Equal(t, "", Allow.Location())
	assert.Equal(t, "/login", RedirectLogin.Location())
	assert.Equal(t, "/", RedirectHome.Location())
	assert.Equal(t, "redirect_home", RedirectHome.String())
}

func TestEvaluateReadsStorageEachTime(t *testing.T) {
	ctx := context.Background()
	s := clientstore.NewMemory(0).Storage("ctx")
	guard := Authenticated(RoleUser)

	d, _, err := Evaluate(ctx, s, guard)
	require.NoError(t, err)
	assert.Equal(t, RedirectLogin, d)

	require.NoError(t, Write(ctx, s, Login{Token: "t", Role: RoleUser}))

	d, sess, err := Evaluate(ctx, s, guard)
	require.NoError(t, err)
	assert.Equal(t, Allow, d)
	assert.Equal(t, RoleUser, sess.Role)

	require.NoError(t, Clear(ctx, s))

	d, _, err = Evaluate(ctx, s, guard)
	require.NoError(t, err)
	assert.Equal(t, RedirectLogin, d)
}

type failingStorage struct{ clientstore.Storage }

func (failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func TestEvaluateStorageFailureIsUnauthenticated(t *testing.T) {
	d, sess, err := Evaluate(context.Background(), failingStorage{}, Authenticated())
	assert.Error(t, err)
	assert.Equal(t, RedirectLogin, d)
	assert.False(t, sess.Authenticated())
}
