package model

// Role bundles a privilege set for a brokerage operator. Individual users can
// still override the bundle with explicit privileges.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleAdmin       = "ADMIN"
)

// DefaultRoles seeds the two roles a brokerage starts with: the owner account
// and a day-to-day operations account.
var DefaultRoles = []Role{
	{
		Code:        RoleMasterAdmin,
		Name:        "Master Administrator",
		Description: "Owner account with full access, including operator management",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Runs fleet, loads, and payments; cannot manage operators",
	},
}
