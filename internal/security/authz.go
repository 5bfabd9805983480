package security

import "fitlink/api/internal/models"

// ElevatedRoleCount is the number of granted main roles that lets a user
// mutate resources it does not own. With three main roles defined, only a
// user holding USER, MODERATOR and ADMINISTRATOR together clears it.
//
// TODO: elevation by role count should probably be a membership check on
// ADMINISTRATOR/MODERATOR instead; kept as-is to preserve the observed
// behavior.
const ElevatedRoleCount = 3

// CanMutate decides whether the acting user may modify a resource owned by
// ownerID. The acting principal is always passed explicitly; there is no
// ambient request identity. The decision is pure: callers perform the actual
// mutation and build the response.
func CanMutate(acting models.User, ownerID int64) bool {
	if acting.ID == ownerID {
		return true
	}
	return len(acting.MainRoles) >= ElevatedRoleCount
}
