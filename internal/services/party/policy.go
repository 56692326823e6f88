package party

import "github.com/yoBruxo/PTbotKND/internal/model"

// CanClose reports whether the actor may close the party: the creator, or an
// actor the surrounding context has marked as privileged (administrator).
// Join and leave signals require no authorization.
func CanClose(p *model.Party, actor model.UserID, isPrivileged bool) bool {
	return actor == p.CreatorID || isPrivileged
}
