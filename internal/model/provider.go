package model

import "github.com/google/uuid"

// LoadProvider is the party handing loads to the broker. Reference data:
// loads point at it, nothing mutates it outside directory CRUD.
type LoadProvider struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	CompanyName   string  `gorm:"type:varchar(200);not null" json:"company_name" validate:"required,max=200"`
	ContactPerson string  `gorm:"type:varchar(100);not null" json:"contact_person" validate:"required,max=100"`
	ContactPhone  string  `gorm:"type:varchar(20);not null" json:"contact_phone" validate:"required,phone10"`
	Email         *string `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address       *string `gorm:"type:varchar(500)" json:"address,omitempty" validate:"omitempty,max=500"`
}

func (LoadProvider) TableName() string {
	return "load_providers"
}
