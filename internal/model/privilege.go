package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "load:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Load"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Fleet management
	{Code: "truck:view", Name: "View Truck"},
	{Code: "truck:create", Name: "Create Truck"},
	{Code: "truck:update", Name: "Update Truck"},
	{Code: "truck:delete", Name: "Delete Truck"},
	// Provider directory
	{Code: "provider:view", Name: "View Load Provider"},
	{Code: "provider:create", Name: "Create Load Provider"},
	{Code: "provider:update", Name: "Update Load Provider"},
	{Code: "provider:delete", Name: "Delete Load Provider"},
	// Load lifecycle
	{Code: "load:view", Name: "View Load"},
	{Code: "load:create", Name: "Create Load"},
	{Code: "load:assign", Name: "Assign Truck to Load"},
	{Code: "load:update_status", Name: "Update Load Status"},
	// Payments
	{Code: "transaction:view", Name: "View Transaction"},
	{Code: "transaction:create", Name: "Record Payment"},
	// Dashboard & reports
	{Code: "dashboard:view", Name: "View Dashboard"},
	{Code: "report:view", Name: "View Reports"},
}
