package users_enums

type UserStatus string

const (
	// UserStatusInvited marks a placeholder account created by a
	// workspace invitation before the person has signed up.
	UserStatusInvited  UserStatus = "INVITED"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusInvited, UserStatusActive, UserStatusInactive:
		return true
	default:
		return false
	}
}
