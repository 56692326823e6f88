package model

// Role identifies a party slot type
type Role string

const (
	RoleLeader Role = "leader"
	RoleHealer Role = "healer"
	RoleMember Role = "member"
)

// MaxPartySize is the party-wide occupancy ceiling. It equals the sum of the
// role capacities, so the ceiling only bites when every role is full.
const MaxPartySize = 8

// CloseEmoji is the reaction signal requesting a manual close. It is not a
// role and never appears in a roster.
const CloseEmoji = "❌" // ❌

type roleInfo struct {
	emoji    string
	label    string
	capacity int
}

var roleCatalog = map[Role]roleInfo{
	RoleLeader: {emoji: "\U0001f6e1️", label: "Leader", capacity: 1}, // 🛡️
	RoleHealer: {emoji: "⚕️", label: "Healer", capacity: 1},     // ⚕️
	RoleMember: {emoji: "⚔️", label: "Member", capacity: 6},     // ⚔️
}

// roleOrder fixes the display and iteration order
var roleOrder = []Role{RoleLeader, RoleHealer, RoleMember}

// Roles returns all roles in display order
func Roles() []Role {
	return roleOrder
}

// Capacity returns the maximum number of simultaneous holders of the role
func (r Role) Capacity() int {
	return roleCatalog[r].capacity
}

// Emoji returns the reaction emoji bound to the role
func (r Role) Emoji() string {
	return roleCatalog[r].emoji
}

// Label returns the human-readable role name
func (r Role) Label() string {
	return roleCatalog[r].label
}

// RoleFromEmoji maps a reaction emoji to its role. Unrecognized emoji,
// including CloseEmoji, are not roles.
func RoleFromEmoji(emoji string) (Role, bool) {
	for _, r := range roleOrder {
		if roleCatalog[r].emoji == emoji {
			return r, true
		}
	}
	return "", false
}

// RoleFromString parses a role name as it appears on the wire
func RoleFromString(s string) (Role, bool) {
	r := Role(s)
	if _, ok := roleCatalog[r]; !ok {
		return "", false
	}
	return r, true
}
