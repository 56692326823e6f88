package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestRoleCapacities(t *testing.T) {
	assert.Equal(t, 1, RoleLeader.Capacity())
	assert.Equal(t, 1, RoleHealer.Capacity())
	assert.Equal(t, 6, RoleMember.Capacity())

	total := 0
	for _, r := range Roles() {
		total += r.Capacity()
	}
	assert.Equal(t, MaxPartySize, total)
}

func TestRoleFromEmoji(t *testing.T) {
	for _, r := range Roles() {
		role, ok := RoleFromEmoji(r.Emoji())
		assert.True(t, ok)
		assert.Equal(t, r, role)
	}

	// Unrecognized tokens are not role-change signals
	_, ok := RoleFromEmoji("🎉")
	assert.False(t, ok)
	_, ok = RoleFromEmoji(CloseEmoji)
	assert.False(t, ok)
}

func TestRoleFromString(t *testing.T) {
	role, ok := RoleFromString("healer")
	assert.True(t, ok)
	assert.Equal(t, RoleHealer, role)

	_, ok = RoleFromString("tank")
	assert.False(t, ok)
}

func TestPartyCloneIsIndependent(t *testing.T) {
	p := NewParty(1, "creator", testTime())
	p.Roster[RoleMember] = append(p.Roster[RoleMember], "u1")
	p.Views.Canonical = "v1"
	p.Views.Listings = []ViewID{"l1"}

	cp := p.Clone()
	cp.Roster[RoleMember] = append(cp.Roster[RoleMember], "u2")
	cp.Views.Listings = append(cp.Views.Listings, "l2")

	assert.Len(t, p.Roster[RoleMember], 1)
	assert.Len(t, p.Views.Listings, 1)
}

func TestViewsAll(t *testing.T) {
	v := Views{Canonical: "c", Listings: []ViewID{"l1", "l2"}}
	assert.Equal(t, []ViewID{"c", "l1", "l2"}, v.All())

	empty := Views{}
	assert.Empty(t, empty.All())
}
