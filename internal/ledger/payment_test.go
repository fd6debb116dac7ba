package ledger

import (
	"errors"
	"math"
	"testing"
	"time"

	"go-freight-ws/internal/model"

	"github.com/google/uuid"
)

func paymentReq(direction model.PaymentDirection, amount float64) PaymentRequest {
	return PaymentRequest{
		Direction: direction,
		Amount:    amount,
		Method:    model.MethodUPI,
		Date:      time.Now(),
	}
}

func TestValidateRejectsBadAmounts(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	s := Summarize(load, nil)

	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := Validate(load, s, model.DirectionReceived, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestValidateProviderCap(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	s := Summarize(load, []model.Transaction{entry(model.DirectionReceived, 9000)})

	err := Validate(load, s, model.DirectionReceived, 2000)
	if !errors.Is(err, ErrExceedsProviderFreight) {
		t.Fatalf("expected ErrExceedsProviderFreight, got %v", err)
	}

	var capErr *CapError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapError, got %T", err)
	}
	if capErr.Remaining != 1000 {
		t.Fatalf("expected remaining 1000, got %v", capErr.Remaining)
	}

	// Exactly the remaining balance is fine
	if err := Validate(load, s, model.DirectionReceived, 1000); err != nil {
		t.Fatalf("payment equal to remaining balance should pass, got %v", err)
	}
}

func TestValidateTruckCap(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	s := Summarize(load, []model.Transaction{entry(model.DirectionPaid, 7500)})

	err := Validate(load, s, model.DirectionPaid, 1000)
	if !errors.Is(err, ErrExceedsTruckFreight) {
		t.Fatalf("expected ErrExceedsTruckFreight, got %v", err)
	}

	var capErr *CapError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapError, got %T", err)
	}
	if capErr.Remaining != 500 {
		t.Fatalf("expected remaining 500, got %v", capErr.Remaining)
	}
}

// 0.1 + 0.2 is 0.30000000000000004 in binary floats; cap checks must still
// accept a payment of exactly the remaining paise balance.
func TestValidateDecimalAmountsReachCap(t *testing.T) {
	load := newLoad(0.3, ptr(0.3))
	s := Summarize(load, []model.Transaction{entry(model.DirectionReceived, 0.1)})

	if err := Validate(load, s, model.DirectionReceived, 0.2); err != nil {
		t.Fatalf("exact remaining balance rejected: %v", err)
	}

	err := Validate(load, s, model.DirectionReceived, 0.21)
	var capErr *CapError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapError, got %v", err)
	}
	if capErr.Remaining != 0.2 {
		t.Fatalf("expected remaining 0.2, got %v", capErr.Remaining)
	}
}

func TestValidateRejectsUnknownDirection(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	s := Summarize(load, nil)

	if err := Validate(load, s, model.PaymentDirection("refund"), 100); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestValidatePaidRequiresTruckFreight(t *testing.T) {
	load := newLoad(10000, nil)
	s := Summarize(load, nil)

	if err := Validate(load, s, model.DirectionPaid, 100); !errors.Is(err, ErrTruckFreightNotSet) {
		t.Fatalf("expected ErrTruckFreightNotSet, got %v", err)
	}
}

func TestValidateCompletedLoadRejectsPayments(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	load.Status = model.StatusCompleted
	s := Summarize(load, []model.Transaction{entry(model.DirectionReceived, 5000)})

	if err := Validate(load, s, model.DirectionReceived, 1000); !errors.Is(err, ErrLoadCompleted) {
		t.Fatalf("expected ErrLoadCompleted, got %v", err)
	}
}

func TestNextSequenceLabels(t *testing.T) {
	var txs []model.Transaction

	seq, txType := NextSequence(txs, model.DirectionReceived)
	if seq != 1 || txType != model.TxAdvance {
		t.Fatalf("first payment: got (%d, %s), want (1, advance)", seq, txType)
	}

	// Sequences count per direction, and every non-first entry is a balance
	// entry even when there are several of them.
	txs = append(txs, model.Transaction{PaymentDirection: model.DirectionReceived, PaymentSequence: 1})
	txs = append(txs, model.Transaction{PaymentDirection: model.DirectionPaid, PaymentSequence: 1})

	seq, txType = NextSequence(txs, model.DirectionReceived)
	if seq != 2 || txType != model.TxBalance {
		t.Fatalf("second received payment: got (%d, %s), want (2, balance)", seq, txType)
	}

	txs = append(txs, model.Transaction{PaymentDirection: model.DirectionReceived, PaymentSequence: 2})
	seq, txType = NextSequence(txs, model.DirectionReceived)
	if seq != 3 || txType != model.TxBalance {
		t.Fatalf("third received payment: got (%d, %s), want (3, balance)", seq, txType)
	}

	seq, txType = NextSequence(txs, model.DirectionPaid)
	if seq != 2 || txType != model.TxBalance {
		t.Fatalf("second paid payment: got (%d, %s), want (2, balance)", seq, txType)
	}
}

// Feeding every accepted entry back into the next Apply call must keep both
// running totals at or under their caps, whatever the submission pattern.
func TestApplyCapInvariant(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	var accepted []model.Transaction

	amounts := []struct {
		direction model.PaymentDirection
		amount    float64
	}{
		{model.DirectionReceived, 4000},
		{model.DirectionPaid, 3000},
		{model.DirectionReceived, 4000},
		{model.DirectionReceived, 4000}, // would overshoot: rejected
		{model.DirectionPaid, 6000},     // would overshoot: rejected
		{model.DirectionReceived, 2000},
		{model.DirectionPaid, 5000},
	}

	for i, a := range amounts {
		res, err := Apply(load, accepted, paymentReq(a.direction, a.amount), Settings{})
		if err != nil {
			var capErr *CapError
			if !errors.As(err, &capErr) {
				t.Fatalf("step %d: unexpected error %v", i, err)
			}
			continue
		}
		accepted = append(accepted, res.Entry)
	}

	s := Summarize(load, accepted)
	if s.TotalReceived > load.FreightAmount {
		t.Fatalf("received total %v exceeded cap %v", s.TotalReceived, load.FreightAmount)
	}
	if s.TotalPaid > *load.TruckFreightAmount {
		t.Fatalf("paid total %v exceeded cap %v", s.TotalPaid, *load.TruckFreightAmount)
	}
	if s.TotalReceived != 10000 || s.TotalPaid != 8000 {
		t.Fatalf("expected exact caps reached, got received %v paid %v", s.TotalReceived, s.TotalPaid)
	}
}

// A rejected payment produces no entry, so the ledger stays unchanged.
func TestApplyRejectionLeavesLedgerUnchanged(t *testing.T) {
	load := newLoad(10000, ptr(8000))
	existing := []model.Transaction{entry(model.DirectionReceived, 9000)}

	_, err := Apply(load, existing, paymentReq(model.DirectionReceived, 2000), Settings{})
	if !errors.Is(err, ErrExceedsProviderFreight) {
		t.Fatalf("expected ErrExceedsProviderFreight, got %v", err)
	}

	s := Summarize(load, existing)
	if s.TotalReceived != 9000 {
		t.Fatalf("ledger changed after rejection: total received %v", s.TotalReceived)
	}
}

// Settlement must fire once both caps are reached, whichever side finishes
// last.
func TestApplySettlementFiresInAnyOrder(t *testing.T) {
	orders := [][]struct {
		direction model.PaymentDirection
		amount    float64
	}{
		{{model.DirectionReceived, 50000}, {model.DirectionPaid, 40000}},
		{{model.DirectionPaid, 40000}, {model.DirectionReceived, 50000}},
		{{model.DirectionReceived, 20000}, {model.DirectionPaid, 40000}, {model.DirectionReceived, 30000}},
	}

	for i, order := range orders {
		load := newLoad(50000, ptr(40000))
		var accepted []model.Transaction

		for j, a := range order {
			res, err := Apply(load, accepted, paymentReq(a.direction, a.amount), Settings{})
			if err != nil {
				t.Fatalf("order %d step %d: %v", i, j, err)
			}
			accepted = append(accepted, res.Entry)

			last := j == len(order)-1
			if res.Settles != last {
				t.Fatalf("order %d step %d: Settles = %v, want %v", i, j, res.Settles, last)
			}
		}
	}
}

// Decimal installments whose float sum drifts past the cap representation
// must still settle once the paise totals match.
func TestApplySettlesOnDecimalInstallments(t *testing.T) {
	load := newLoad(300.30, ptr(200.20))
	var accepted []model.Transaction

	steps := []struct {
		direction model.PaymentDirection
		amount    float64
	}{
		{model.DirectionReceived, 100.10},
		{model.DirectionReceived, 100.10},
		{model.DirectionReceived, 100.10},
		{model.DirectionPaid, 100.10},
		{model.DirectionPaid, 100.10},
	}

	for i, st := range steps {
		res, err := Apply(load, accepted, paymentReq(st.direction, st.amount), Settings{})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		accepted = append(accepted, res.Entry)

		last := i == len(steps)-1
		if res.Settles != last {
			t.Fatalf("step %d: Settles = %v, want %v", i, res.Settles, last)
		}
	}
}

func TestApplyNeverSettlesWithoutTruckFreight(t *testing.T) {
	load := newLoad(50000, nil)

	res, err := Apply(load, nil, paymentReq(model.DirectionReceived, 50000), Settings{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Settles {
		t.Fatalf("load without truck freight must not settle on payment totals")
	}
}

func TestApplyDeliveryGate(t *testing.T) {
	cfg := Settings{RequireDeliveryBeforeBalance: true}

	load := newLoad(50000, ptr(40000))
	load.Status = model.StatusInTransit

	// Advance is always allowed
	res, err := Apply(load, nil, paymentReq(model.DirectionReceived, 20000), cfg)
	if err != nil {
		t.Fatalf("advance payment should pass the gate: %v", err)
	}
	existing := []model.Transaction{res.Entry}

	// Balance before delivery is blocked
	if _, err := Apply(load, existing, paymentReq(model.DirectionReceived, 30000), cfg); !errors.Is(err, ErrDeliveryRequired) {
		t.Fatalf("expected ErrDeliveryRequired, got %v", err)
	}

	// After delivery the same payment goes through
	load.Status = model.StatusDelivered
	if _, err := Apply(load, existing, paymentReq(model.DirectionReceived, 30000), cfg); err != nil {
		t.Fatalf("balance payment after delivery: %v", err)
	}
}

func TestApplyStampsEntry(t *testing.T) {
	load := newLoad(50000, ptr(40000))
	load.ID = uuid.New()
	load.AccountID = uuid.New()
	load.LoadProvider = &model.LoadProvider{CompanyName: "Sharma Logistics"}
	load.Truck = &model.Truck{DriverName: "Ramesh", TruckNumber: "KA01AB1234"}

	res, err := Apply(load, nil, paymentReq(model.DirectionReceived, 10000), Settings{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	e := res.Entry
	if e.LoadID != load.ID || e.AccountID != load.AccountID {
		t.Fatalf("entry not bound to load and account")
	}
	if e.TransactionType != model.TxAdvance || e.PaymentSequence != 1 {
		t.Fatalf("expected advance #1, got %s #%d", e.TransactionType, e.PaymentSequence)
	}
	if e.PartyName != "Sharma Logistics" {
		t.Fatalf("received entry should carry the provider name, got %q", e.PartyName)
	}

	res, err = Apply(load, []model.Transaction{e}, paymentReq(model.DirectionPaid, 10000), Settings{})
	if err != nil {
		t.Fatalf("apply paid: %v", err)
	}
	if res.Entry.PartyName != "Ramesh" {
		t.Fatalf("paid entry should carry the driver name, got %q", res.Entry.PartyName)
	}

	// Without an assigned truck the driver is a placeholder
	load.Truck = nil
	res, err = Apply(load, []model.Transaction{e}, paymentReq(model.DirectionPaid, 10000), Settings{})
	if err != nil {
		t.Fatalf("apply paid without truck: %v", err)
	}
	if res.Entry.PartyName != "Driver" {
		t.Fatalf("expected placeholder party name, got %q", res.Entry.PartyName)
	}
}
