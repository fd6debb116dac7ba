package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentDirection string

const (
	DirectionReceived PaymentDirection = "received" // money from the load provider
	DirectionPaid     PaymentDirection = "paid"     // money to the truck/driver
)

type TransactionType string

const (
	TxAdvance TransactionType = "advance"
	TxBalance TransactionType = "balance"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Transaction is one entry in a load's katha. The ledger is append-only:
// entries are never edited or deleted. The composite unique index on
// (load_id, payment_direction, payment_sequence) is the storage-side backstop
// against two writers racing past a cap.
type Transaction struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	LoadID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_load_direction_seq" json:"load_id" validate:"uuid_required"`
	Load   *Load     `gorm:"foreignKey:LoadID" json:"load,omitempty" validate:"-"`

	PaymentDirection PaymentDirection `gorm:"type:varchar(10);not null;uniqueIndex:idx_load_direction_seq" json:"payment_direction" validate:"required,oneof=received paid"`
	TransactionType  TransactionType  `gorm:"type:varchar(10);not null" json:"transaction_type"`
	PaymentSequence  int              `gorm:"not null;uniqueIndex:idx_load_direction_seq" json:"payment_sequence"`

	Amount        float64       `gorm:"type:numeric(12,2);not null" json:"amount" validate:"required,gt=0,lte=10000000"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,oneof=cash upi bank_transfer"`

	PaymentDetails string `gorm:"type:varchar(500)" json:"payment_details,omitempty" validate:"omitempty,max=500"` // UPI handle, bank reference, cheque no.
	PartyName      string `gorm:"type:varchar(200)" json:"party_name"`
	Notes          string `gorm:"type:varchar(1000)" json:"notes,omitempty" validate:"omitempty,max=1000"`

	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
}

func (Transaction) TableName() string {
	return "transactions"
}
