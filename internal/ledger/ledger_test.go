package ledger

import (
	"math/rand"
	"testing"

	"go-freight-ws/internal/model"
)

func newLoad(freight float64, truckFreight *float64) *model.Load {
	return &model.Load{
		FreightAmount:      freight,
		TruckFreightAmount: truckFreight,
		Status:             model.StatusAssigned,
	}
}

func ptr(v float64) *float64 { return &v }

func entry(direction model.PaymentDirection, amount float64) model.Transaction {
	return model.Transaction{PaymentDirection: direction, Amount: amount}
}

func TestSummarizeTotals(t *testing.T) {
	load := newLoad(50000, ptr(35000))
	txs := []model.Transaction{
		entry(model.DirectionReceived, 20000),
		entry(model.DirectionPaid, 10000),
		entry(model.DirectionReceived, 15000),
		entry(model.DirectionPaid, 5000),
	}

	s := Summarize(load, txs)

	if s.TotalReceived != 35000 {
		t.Fatalf("expected total received 35000, got %v", s.TotalReceived)
	}
	if s.TotalPaid != 15000 {
		t.Fatalf("expected total paid 15000, got %v", s.TotalPaid)
	}
	if s.BalanceToReceive != 15000 {
		t.Fatalf("expected balance to receive 15000, got %v", s.BalanceToReceive)
	}
	if s.BalanceToPay == nil || *s.BalanceToPay != 20000 {
		t.Fatalf("expected balance to pay 20000, got %v", s.BalanceToPay)
	}
	if s.CurrentProfit != 20000 {
		t.Fatalf("expected current profit 20000, got %v", s.CurrentProfit)
	}
	if s.ExpectedProfit == nil || *s.ExpectedProfit != 15000 {
		t.Fatalf("expected expected profit 15000, got %v", s.ExpectedProfit)
	}
}

func TestSummarizeTruckFreightUnset(t *testing.T) {
	load := newLoad(50000, nil)
	s := Summarize(load, []model.Transaction{entry(model.DirectionReceived, 10000)})

	if s.BalanceToPay != nil {
		t.Fatalf("balance to pay must be undefined while truck freight is unset")
	}
	if s.ExpectedProfit != nil {
		t.Fatalf("expected profit must be undefined while truck freight is unset")
	}
	if s.BalanceToReceive != 40000 {
		t.Fatalf("expected balance to receive 40000, got %v", s.BalanceToReceive)
	}
}

// Totals must not depend on the order transactions are read back in.
func TestSummarizeOrderIndependent(t *testing.T) {
	load := newLoad(50000, ptr(40000))
	txs := []model.Transaction{
		entry(model.DirectionReceived, 10000),
		entry(model.DirectionReceived, 25000),
		entry(model.DirectionReceived, 15000),
		entry(model.DirectionPaid, 30000),
		entry(model.DirectionPaid, 10000),
	}

	want := Summarize(load, txs)
	for i := 0; i < 10; i++ {
		shuffled := make([]model.Transaction, len(txs))
		copy(shuffled, txs)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Summarize(load, shuffled)
		if got != want {
			// Summary contains pointers; compare field by field
			if got.TotalReceived != want.TotalReceived || got.TotalPaid != want.TotalPaid ||
				got.BalanceToReceive != want.BalanceToReceive || got.CurrentProfit != want.CurrentProfit {
				t.Fatalf("shuffled totals diverged: got %+v want %+v", got, want)
			}
		}
	}
}

func TestProfitMathAtFullSettlement(t *testing.T) {
	load := newLoad(50000, ptr(35000))
	txs := []model.Transaction{
		entry(model.DirectionReceived, 50000),
		entry(model.DirectionPaid, 35000),
	}

	s := Summarize(load, txs)

	if s.ExpectedProfit == nil || *s.ExpectedProfit != 15000 {
		t.Fatalf("expected profit 15000, got %v", s.ExpectedProfit)
	}
	if s.CurrentProfit != *s.ExpectedProfit {
		t.Fatalf("current profit %v should equal expected profit %v once both sides are fully paid",
			s.CurrentProfit, *s.ExpectedProfit)
	}
}

func TestSettled(t *testing.T) {
	tests := []struct {
		name         string
		truckFreight *float64
		received     float64
		paid         float64
		want         bool
	}{
		{"both caps reached", ptr(40000), 50000, 40000, true},
		{"received short", ptr(40000), 49999, 40000, false},
		{"paid short", ptr(40000), 50000, 39999, false},
		{"nothing paid", ptr(40000), 0, 0, false},
		{"truck freight unset never settles", nil, 50000, 50000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := newLoad(50000, tt.truckFreight)
			s := Summarize(load, []model.Transaction{
				entry(model.DirectionReceived, tt.received),
				entry(model.DirectionPaid, tt.paid),
			})
			if got := s.Settled(load); got != tt.want {
				t.Fatalf("Settled() = %v, want %v", got, tt.want)
			}
		})
	}
}
