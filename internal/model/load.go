package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type LoadStatus string

const (
	StatusPending   LoadStatus = "pending"
	StatusAssigned  LoadStatus = "assigned"
	StatusInTransit LoadStatus = "in_transit"
	StatusDelivered LoadStatus = "delivered"
	StatusCompleted LoadStatus = "completed"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrTruckRequired     = errors.New("a truck must be selected for assignment")
)

// Load is a single freight job: one provider, one truck, and two payment
// ledgers (money received from the provider, money paid to the driver).
type Load struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	LoadProviderID uuid.UUID     `gorm:"type:uuid;not null;index" json:"load_provider_id" validate:"uuid_required"`
	LoadProvider   *LoadProvider `gorm:"foreignKey:LoadProviderID" json:"load_provider,omitempty" validate:"-"`

	// Set exactly once, on assignment
	TruckID *uuid.UUID `gorm:"type:uuid;index" json:"truck_id,omitempty"`
	Truck   *Truck     `gorm:"foreignKey:TruckID" json:"truck,omitempty" validate:"-"`

	LoadingLocation     string  `gorm:"type:varchar(200);not null" json:"loading_location" validate:"required,max=200"`
	UnloadingLocation   string  `gorm:"type:varchar(200);not null" json:"unloading_location" validate:"required,max=200"`
	MaterialDescription string  `gorm:"type:varchar(500);not null" json:"material_description" validate:"required,max=500"`
	MaterialWeight      float64 `gorm:"type:numeric(7,2);not null" json:"material_weight" validate:"required,gt=0,lte=100"` // tons

	// FreightAmount is owed by the provider; TruckFreightAmount is owed to the
	// truck and may be quoted later. ProfitAmount is persisted at creation when
	// both are known.
	FreightAmount      float64  `gorm:"type:numeric(12,2);not null" json:"freight_amount" validate:"required,gt=0,lte=10000000"`
	TruckFreightAmount *float64 `gorm:"type:numeric(12,2)" json:"truck_freight_amount,omitempty" validate:"omitempty,gt=0,lte=10000000"`
	ProfitAmount       *float64 `gorm:"type:numeric(12,2)" json:"profit_amount,omitempty"`

	Status LoadStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	AssignedAt          *time.Time `json:"assigned_at,omitempty"`
	LoadingCompletedAt  *time.Time `json:"loading_completed_at,omitempty"`
	DeliveryCompletedAt *time.Time `json:"delivery_completed_at,omitempty"`

	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}

func (Load) TableName() string {
	return "loads"
}

// manualNext maps each status to the single manual advance allowed from it.
// Completion is not here: only settlement may flip a load to completed.
var manualNext = map[LoadStatus]LoadStatus{
	StatusPending:   StatusAssigned,
	StatusAssigned:  StatusInTransit,
	StatusInTransit: StatusDelivered,
}

func (l *Load) IsCompleted() bool {
	return l.Status == StatusCompleted
}

// Assign moves a pending load to assigned and stamps assigned_at. The truck
// id is set exactly once here.
func (l *Load) Assign(truckID uuid.UUID, now time.Time) error {
	if truckID == uuid.Nil {
		return ErrTruckRequired
	}
	if l.Status != StatusPending {
		return ErrIllegalTransition
	}
	l.TruckID = &truckID
	l.Status = StatusAssigned
	l.AssignedAt = &now
	return nil
}

// Advance applies a manual operator transition (assigned→in_transit,
// in_transit→delivered) and stamps the matching timestamp. Skipping states is
// not allowed, and neither is advancing to assigned or completed: assignment
// goes through Assign, completion through settlement.
func (l *Load) Advance(next LoadStatus, now time.Time) error {
	if next == StatusAssigned || next == StatusCompleted {
		return ErrIllegalTransition
	}
	if manualNext[l.Status] != next {
		return ErrIllegalTransition
	}
	l.Status = next
	switch next {
	case StatusInTransit:
		l.LoadingCompletedAt = &now
	case StatusDelivered:
		l.DeliveryCompletedAt = &now
	}
	return nil
}

// Complete is the settlement short-circuit: legal from any non-terminal state,
// even before delivery.
func (l *Load) Complete() error {
	if l.Status == StatusCompleted {
		return ErrIllegalTransition
	}
	l.Status = StatusCompleted
	return nil
}
