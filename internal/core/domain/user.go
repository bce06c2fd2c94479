package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// User is the directory view of a person.
type User struct {
	ID           uint64
	Name         string
	Role         Role
	ManagerID    *uint64
	DepartmentID *uint64
	WorkspaceID  uint64
}

// Actor is the identity on whose behalf a core operation runs.
type Actor struct {
	UserID uint64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) CanAssignTasks() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
