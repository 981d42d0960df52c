package domain

type Role string

const (
	// Teachers create and grade evaluations for their own classes.
	RoleTeacher Role = "teacher"
	// Students submit work and see their own results.
	RoleStudent Role = "student"
	// Admins manage users and have every other privilege.
	RoleAdmin Role = "admin"
)

// Roles lists the closed enumeration in a stable order.
func Roles() []string {
	return []string{string(RoleTeacher), string(RoleStudent), string(RoleAdmin)}
}

func IsValidRole(r string) bool {
	return r == string(RoleTeacher) || r == string(RoleStudent) || r == string(RoleAdmin)
}
