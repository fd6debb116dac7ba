package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAssign(t *testing.T) {
	now := time.Now()
	truckID := uuid.New()

	load := &Load{Status: StatusPending}
	if err := load.Assign(truckID, now); err != nil {
		t.Fatalf("assign from pending: %v", err)
	}
	if load.Status != StatusAssigned {
		t.Fatalf("expected status assigned, got %s", load.Status)
	}
	if load.TruckID == nil || *load.TruckID != truckID {
		t.Fatalf("truck id not recorded")
	}
	if load.AssignedAt == nil || !load.AssignedAt.Equal(now) {
		t.Fatalf("assigned_at not stamped")
	}
}

func TestAssignRequiresTruck(t *testing.T) {
	load := &Load{Status: StatusPending}
	if err := load.Assign(uuid.Nil, time.Now()); !errors.Is(err, ErrTruckRequired) {
		t.Fatalf("expected ErrTruckRequired, got %v", err)
	}
	if load.Status != StatusPending || load.TruckID != nil {
		t.Fatalf("failed assignment must not change the load")
	}
}

func TestAssignOnlyFromPending(t *testing.T) {
	for _, status := range []LoadStatus{StatusAssigned, StatusInTransit, StatusDelivered, StatusCompleted} {
		load := &Load{Status: status}
		if err := load.Assign(uuid.New(), time.Now()); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("assign from %s: expected ErrIllegalTransition, got %v", status, err)
		}
	}
}

func TestAdvanceChain(t *testing.T) {
	now := time.Now()
	load := &Load{Status: StatusAssigned}

	if err := load.Advance(StatusInTransit, now); err != nil {
		t.Fatalf("assigned -> in_transit: %v", err)
	}
	if load.LoadingCompletedAt == nil || !load.LoadingCompletedAt.Equal(now) {
		t.Fatalf("loading_completed_at not stamped")
	}

	later := now.Add(time.Hour)
	if err := load.Advance(StatusDelivered, later); err != nil {
		t.Fatalf("in_transit -> delivered: %v", err)
	}
	if load.DeliveryCompletedAt == nil || !load.DeliveryCompletedAt.Equal(later) {
		t.Fatalf("delivery_completed_at not stamped")
	}
}

func TestAdvanceRejectsSkipsAndReservedTargets(t *testing.T) {
	tests := []struct {
		name string
		from LoadStatus
		to   LoadStatus
	}{
		{"skip to delivered", StatusAssigned, StatusDelivered},
		{"skip from pending", StatusPending, StatusInTransit},
		{"backwards", StatusDelivered, StatusInTransit},
		{"assignment is not a manual advance", StatusPending, StatusAssigned},
		{"completion is not a manual advance", StatusDelivered, StatusCompleted},
		{"completed is absorbing", StatusCompleted, StatusInTransit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := &Load{Status: tt.from}
			if err := load.Advance(tt.to, time.Now()); !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if load.Status != tt.from {
				t.Fatalf("failed advance must not change status, got %s", load.Status)
			}
		})
	}
}

// Settlement may short-circuit the lifecycle from any non-terminal state.
func TestCompleteFromAnyNonTerminalState(t *testing.T) {
	for _, status := range []LoadStatus{StatusPending, StatusAssigned, StatusInTransit, StatusDelivered} {
		load := &Load{Status: status}
		if err := load.Complete(); err != nil {
			t.Fatalf("complete from %s: %v", status, err)
		}
		if !load.IsCompleted() {
			t.Fatalf("complete from %s did not reach completed", status)
		}
	}

	load := &Load{Status: StatusCompleted}
	if err := load.Complete(); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("completing a completed load: expected ErrIllegalTransition, got %v", err)
	}
}
