package domain

// SystemUserID is the audit author for records written by background jobs.
const SystemUserID = "system"

// UserRole defines a user's permission level within its tenant.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleMember   UserRole = "MEMBER"
	RoleReadOnly UserRole = "READONLY"
)

// CanWrite reports whether the role may perform mutating operations.
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is a tenant member.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	TenantID     string   `json:"tenantID"`
	Name         string   `json:"name"`
	Username     string   `json:"username"` // Unique per tenant
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
