package ledger

import (
	"math"
	"time"

	"go-freight-ws/internal/model"
)

// Settings control optional behavior of the payment flow.
type Settings struct {
	// RequireDeliveryBeforeBalance restores the older business rule that a
	// balance (non-first) payment is only accepted once the load is delivered.
	// Off by default: the current rule settles purely on money.
	RequireDeliveryBeforeBalance bool
}

// PaymentRequest is a proposed entry for one side of a load's katha.
type PaymentRequest struct {
	Direction      model.PaymentDirection
	Amount         float64
	Method         model.PaymentMethod
	PaymentDetails string
	Notes          string
	Date           time.Time
}

// Result is the outcome of applying a payment: the stamped entry (not yet
// persisted), the totals including it, and whether it settles the load.
type Result struct {
	Entry   model.Transaction
	Summary Summary
	Settles bool
}

// Amounts are numeric(12,2) money, so cap arithmetic runs in integer paise.
// Comparing raw float64 sums would reject a payment of exactly the remaining
// balance once decimals are involved (0.1+0.2 > 0.3 in binary floats).
func paise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func rupees(p int64) float64 {
	return float64(p) / 100
}

// NextSequence returns the ordinal and advance/balance label for the next
// payment in a direction. The first payment per direction is the advance;
// every later one is a balance entry, so multiple balance entries are legal.
func NextSequence(txs []model.Transaction, direction model.PaymentDirection) (int, model.TransactionType) {
	count := 0
	for _, tx := range txs {
		if tx.PaymentDirection == direction {
			count++
		}
	}
	if count == 0 {
		return 1, model.TxAdvance
	}
	return count + 1, model.TxBalance
}

// Validate checks a proposed payment against the load and its current totals.
// The checks run in a fixed order: amount sanity, cap per direction, then the
// terminal-state guard. Callers must hold the load row lock so the totals are
// not stale (two concurrent writers could otherwise both pass the cap check).
func Validate(load *model.Load, s Summary, direction model.PaymentDirection, amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	switch direction {
	case model.DirectionReceived:
		if paise(s.TotalReceived)+paise(amount) > paise(load.FreightAmount) {
			return &CapError{Direction: direction, Remaining: rupees(paise(load.FreightAmount) - paise(s.TotalReceived))}
		}
	case model.DirectionPaid:
		if load.TruckFreightAmount == nil {
			return ErrTruckFreightNotSet
		}
		if paise(s.TotalPaid)+paise(amount) > paise(*load.TruckFreightAmount) {
			return &CapError{Direction: direction, Remaining: rupees(paise(*load.TruckFreightAmount) - paise(s.TotalPaid))}
		}
	default:
		return ErrInvalidDirection
	}
	if load.IsCompleted() {
		return ErrLoadCompleted
	}
	return nil
}

// Apply runs the full per-payment pipeline: validate, sequence, stamp the
// entry, recompute the summary including it, and decide settlement. Pure; the
// caller persists the entry and the status flip in one storage transaction.
func Apply(load *model.Load, existing []model.Transaction, req PaymentRequest, cfg Settings) (*Result, error) {
	summary := Summarize(load, existing)
	if err := Validate(load, summary, req.Direction, req.Amount); err != nil {
		return nil, err
	}

	seq, txType := NextSequence(existing, req.Direction)
	if cfg.RequireDeliveryBeforeBalance && txType == model.TxBalance && load.Status != model.StatusDelivered {
		return nil, ErrDeliveryRequired
	}

	entry := model.Transaction{
		AccountID:        load.AccountID,
		LoadID:           load.ID,
		PaymentDirection: req.Direction,
		TransactionType:  txType,
		PaymentSequence:  seq,
		Amount:           req.Amount,
		PaymentMethod:    req.Method,
		PaymentDetails:   req.PaymentDetails,
		PartyName:        partyName(load, req.Direction),
		Notes:            req.Notes,
		TransactionDate:  req.Date,
	}

	after := Summarize(load, append(existing, entry))
	return &Result{
		Entry:   entry,
		Summary: after,
		Settles: after.Settled(load),
	}, nil
}

// partyName resolves who the money moved to or from: the provider's company
// for received entries, the assigned driver for paid ones.
func partyName(load *model.Load, direction model.PaymentDirection) string {
	if direction == model.DirectionReceived {
		if load.LoadProvider != nil {
			return load.LoadProvider.CompanyName
		}
		return "Load Provider"
	}
	if load.Truck != nil && load.Truck.DriverName != "" {
		return load.Truck.DriverName
	}
	return "Driver"
}
