package users_enums

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "OWNER"
	WorkspaceRoleMember WorkspaceRole = "MEMBER"
)

func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleMember:
		return true
	}
	return false
}
