package tasks_test

import (
	"testing"

	"github.com/goliatone/go-tasks"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAuthority(t *testing.T) {
	assert.Equal(t, tasks.RoleAdmin, tasks.NormalizeAuthority("ROLE_ADMIN"))
	assert.Equal(t, tasks.RoleUser, tasks.NormalizeAuthority("role_user"))
	assert.Equal(t, tasks.RoleUser, tasks.NormalizeAuthority("  user  "))
	assert.Equal(t, tasks.RoleAdmin, tasks.NormalizeAuthority("admin"))
	assert.Equal(t, tasks.Role(""), tasks.NormalizeAuthority(""))
}

func TestNormalizeAuthorities(t *testing.T) {
	t.Run("drops blanks and duplicates, keeps order", func(t *testing.T) {
		roles := tasks.NormalizeAuthorities([]string{"ROLE_ADMIN", "user", "", "ADMIN", "USER"})
		assert.Equal(t, []tasks.Role{tasks.RoleAdmin, tasks.RoleUser}, roles)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		assert.Empty(t, tasks.NormalizeAuthorities(nil))
	})
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, tasks.RoleUser.IsValid())
	assert.True(t, tasks.RoleAdmin.IsValid())
	assert.False(t, tasks.Role("WIZARD").IsValid())
	assert.False(t, tasks.Role("").IsValid())
}

func TestParseRoles(t *testing.T) {
	roles := tasks.ParseRoles([]string{"USER", "WIZARD", "ADMIN", ""})
	assert.Equal(t, []tasks.Role{tasks.RoleUser, tasks.RoleAdmin}, roles)
}

func TestHasAdmin(t *testing.T) {
	assert.True(t, tasks.HasAdmin([]tasks.Role{tasks.RoleUser, tasks.RoleAdmin}))
	assert.False(t, tasks.HasAdmin([]tasks.Role{tasks.RoleUser}))
	assert.False(t, tasks.HasAdmin(nil))
}
