package model

import "github.com/google/uuid"

type TruckType string

const (
	TruckTypeOpen      TruckType = "open"
	TruckTypeContainer TruckType = "container"
)

// Truck is a vehicle in the operator's fleet. IsActive doubles as the
// availability flag: an assigned truck is inactive until its load completes.
type Truck struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	TruckNumber string    `gorm:"type:varchar(20);not null" json:"truck_number" validate:"required,max=20"`
	TruckType   TruckType `gorm:"type:varchar(20);not null" json:"truck_type" validate:"required,oneof=open container"`

	DriverName  string `gorm:"type:varchar(100);not null" json:"driver_name" validate:"required,max=100"`
	DriverPhone string `gorm:"type:varchar(20);not null" json:"driver_phone" validate:"required,phone10"`
	OwnerName   string `gorm:"type:varchar(100);not null" json:"owner_name" validate:"required,max=100"`
	OwnerPhone  string `gorm:"type:varchar(20);not null" json:"owner_phone" validate:"required,phone10"`

	// Optional third-party broker contact
	ContactPerson      *string `gorm:"type:varchar(100)" json:"contact_person,omitempty" validate:"omitempty,max=100"`
	ContactPersonPhone *string `gorm:"type:varchar(20)" json:"contact_person_phone,omitempty" validate:"omitempty,phone10"`

	TruckLength      float64 `gorm:"type:numeric(6,2);not null" json:"truck_length" validate:"required,gt=0,lte=100"`       // feet
	CarryingCapacity float64 `gorm:"type:numeric(7,2);not null" json:"carrying_capacity" validate:"required,gt=0,lte=1000"` // tons

	IsActive bool `gorm:"default:true" json:"is_active"`
}

func (Truck) TableName() string {
	return "trucks"
}
