// Package ledger implements the payment reconciliation engine: the katha
// arithmetic for a load, validation of proposed payments against the freight
// caps, advance/balance sequencing, and the settlement decision that completes
// a load once both sides are fully paid. Everything here is pure; persistence
// and locking belong to the service layer.
package ledger

import "go-freight-ws/internal/model"

// Summary is the arithmetic view of a load's katha. Recomputing it from the
// same transaction set always yields the same result regardless of order, so
// it is safe to rebuild on every read.
type Summary struct {
	TotalReceived    float64  `json:"total_received"`
	TotalPaid        float64  `json:"total_paid"`
	BalanceToReceive float64  `json:"balance_to_receive"`
	BalanceToPay     *float64 `json:"balance_to_pay,omitempty"`  // nil while truck freight is unset
	CurrentProfit    float64  `json:"current_profit"`
	ExpectedProfit   *float64 `json:"expected_profit,omitempty"` // nil while truck freight is unset
}

// Summarize folds a load's transactions into totals and derived balances.
func Summarize(load *model.Load, txs []model.Transaction) Summary {
	var received, paid float64
	for _, tx := range txs {
		switch tx.PaymentDirection {
		case model.DirectionReceived:
			received += tx.Amount
		case model.DirectionPaid:
			paid += tx.Amount
		}
	}

	s := Summary{
		TotalReceived:    received,
		TotalPaid:        paid,
		BalanceToReceive: load.FreightAmount - received,
		CurrentProfit:    received - paid,
	}
	if load.TruckFreightAmount != nil {
		toPay := *load.TruckFreightAmount - paid
		expected := load.FreightAmount - *load.TruckFreightAmount
		s.BalanceToPay = &toPay
		s.ExpectedProfit = &expected
	}
	return s
}

// Settled reports whether both ledgers have reached their caps, compared in
// paise so decimal installments that drift in binary floats still settle. A
// load with no truck freight can never settle on payment totals alone;
// closing such a load takes an explicit override.
func (s Summary) Settled(load *model.Load) bool {
	if load.TruckFreightAmount == nil {
		return false
	}
	return paise(s.TotalReceived) >= paise(load.FreightAmount) &&
		paise(s.TotalPaid) >= paise(*load.TruckFreightAmount)
}
