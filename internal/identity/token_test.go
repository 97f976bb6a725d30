package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda-storefront/internal/auth"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	u := User{
		ID:    4,
		Email: "ana@example.com",
		Roles: NewRoles(auth.RoleCustomer),
	}

	token, err := issuer.Issue(u, "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, auth.RoleCustomer, claims.RoleID)
	assert.Equal(t, "sess-1", claims.Session)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue(User{ID: 1}, "s")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := NewTokenIssuer("secret", -time.Minute).Issue(User{ID: 1}, "s")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", -time.Minute).Parse(token)
	assert.Error(t, err)
}

func TestIssueRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Issue(User{ID: 1}, "s")
	assert.Error(t, err)
}
