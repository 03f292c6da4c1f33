package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Allows(t *testing.T) {
	t.Parallel()

	role := &Role{
		Name:             "editor",
		CanCreatePlayers: true,
		CanReadPlayers:   true,
		CanUpdatePlayers: false,
		CanDeletePlayers: false,
		CanManageUsers:   true,
		IsActive:         true,
	}

	tests := []struct {
		cap  Capability
		want bool
	}{
		{cap: CapCreatePlayers, want: true},
		{cap: CapReadPlayers, want: true},
		{cap: CapUpdatePlayers, want: false},
		{cap: CapDeletePlayers, want: false},
		{cap: CapManageUsers, want: true},
		{cap: Capability(0), want: false},
		{cap: Capability(42), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.cap.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, role.Allows(tt.cap))
			assert.Equal(t, tt.want, role.Allows(tt.cap), "repeated checks are stable")
		})
	}
}

func TestRole_Allows_InactiveOrNil(t *testing.T) {
	t.Parallel()

	role := &Role{Name: "full", CanReadPlayers: true, CanManageUsers: true}
	assert.False(t, role.Allows(CapReadPlayers))

	var none *Role
	assert.False(t, none.Allows(CapReadPlayers))
}

func TestRole_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role *Role
		want bool
	}{
		{name: "lower", role: &Role{Name: "admin", IsActive: true}, want: true},
		{name: "mixed case", role: &Role{Name: "AdMiN", IsActive: true}, want: true},
		{name: "inactive", role: &Role{Name: "admin"}, want: false},
		{name: "other", role: &Role{Name: "administrator", IsActive: true}, want: false},
		{name: "nil", role: nil, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.role.IsAdmin())
		})
	}
}

func TestCapability_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "can_manage_users", CapManageUsers.String())
	assert.Equal(t, "unknown", Capability(99).String())
}
