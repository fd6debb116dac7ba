package ledger

import (
	"errors"
	"fmt"

	"go-freight-ws/internal/model"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidDirection   = errors.New("unknown payment direction")
	ErrTruckFreightNotSet = errors.New("truck freight is not set for this load")
	ErrLoadCompleted      = errors.New("load is already completed")
	ErrDeliveryRequired   = errors.New("balance payment requires the load to be delivered")

	// Matching targets for errors.Is against *CapError
	ErrExceedsProviderFreight = errors.New("payment exceeds provider freight")
	ErrExceedsTruckFreight    = errors.New("payment exceeds truck freight")
)

// CapError is returned when a payment would push a ledger past its cap. It
// carries the remaining balance so the caller can retry with a corrected
// amount.
type CapError struct {
	Direction model.PaymentDirection
	Remaining float64
}

func (e *CapError) Error() string {
	if e.Direction == model.DirectionReceived {
		return fmt.Sprintf("payment exceeds provider freight (remaining %.2f)", e.Remaining)
	}
	return fmt.Sprintf("payment exceeds truck freight (remaining %.2f)", e.Remaining)
}

func (e *CapError) Is(target error) bool {
	switch e.Direction {
	case model.DirectionReceived:
		return target == ErrExceedsProviderFreight
	case model.DirectionPaid:
		return target == ErrExceedsTruckFreight
	}
	return false
}
