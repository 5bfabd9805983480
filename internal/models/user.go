package models

import "time"

type MainRole string

const (
	MainRoleUser          MainRole = "USER"
	MainRoleModerator     MainRole = "MODERATOR"
	MainRoleAdministrator MainRole = "ADMINISTRATOR"
)

// ParseMainRole maps a requested registration role string to a main role.
// Unrecognized values fall back to USER rather than erroring.
func ParseMainRole(s string) MainRole {
	switch s {
	case "admin":
		return MainRoleAdministrator
	case "mod":
		return MainRoleModerator
	default:
		return MainRoleUser
	}
}

type SubRole string

const (
	SubRoleCommon SubRole = "COMMON"
	SubRoleSilver SubRole = "SILVER"
	SubRoleGold   SubRole = "GOLD"
)

type StatusName string

const (
	StatusCommon     StatusName = "COMMON"
	StatusReadOnly   StatusName = "READ_ONLY"
	StatusNoActivity StatusName = "NO_ACTIVITY"
	StatusBan        StatusName = "BAN"
	StatusClear      StatusName = "CLEAR"
)

// Status is one entry of a user's status history. A nil EndsAt means the
// status holds indefinitely. Assigning a new status does not retire prior
// ones; the history is treated as a set.
type Status struct {
	ID          int64
	UserID      int64
	Name        StatusName
	ActivatedAt time.Time
	EndsAt      *time.Time
}

type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  []byte
	Locale        string
	SocialNetID   *string
	EmailActive   bool
	EmailCode     *string
	AvatarFile    *string
	CreatedAt     time.Time
	LastVisitedAt *time.Time

	MainRoles []MainRole
	SubRoles  []SubRole
	Statuses  []Status
	Tags      []Tag
}

func (u User) HasRole(role MainRole) bool {
	for _, r := range u.MainRoles {
		if r == role {
			return true
		}
	}
	return false
}
