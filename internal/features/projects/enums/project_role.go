package projects_enums

type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleLeader ProjectRole = "LEADER"
	ProjectRoleMember ProjectRole = "MEMBER"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleLeader, ProjectRoleMember:
		return true
	default:
		return false
	}
}

// IsManagement reports whether the role may create and edit tasks and
// manage project membership.
func (r ProjectRole) IsManagement() bool {
	return r == ProjectRoleOwner || r == ProjectRoleLeader
}
