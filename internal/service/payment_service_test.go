package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-freight-ws/internal/ledger"
	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeDB runs the transactional closure directly; the fake repositories
// ignore the nil tx handle.
type fakeDB struct{}

func (fakeDB) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeLoadRepo struct {
	loads map[uuid.UUID]*model.Load
}

var _ repository.LoadRepository = (*fakeLoadRepo)(nil)

func (f *fakeLoadRepo) Create(load *model.Load) error {
	if load.ID == uuid.Nil {
		load.ID = uuid.New()
	}
	f.loads[load.ID] = load
	return nil
}

func (f *fakeLoadRepo) FindAll(accountID uuid.UUID) ([]model.Load, error) {
	var out []model.Load
	for _, l := range f.loads {
		if l.AccountID == accountID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLoadRepo) FindByID(accountID, id uuid.UUID) (*model.Load, error) {
	load, ok := f.loads[id]
	if !ok || load.AccountID != accountID {
		return nil, gorm.ErrRecordNotFound
	}
	return load, nil
}

func (f *fakeLoadRepo) FindByIDForUpdate(tx *gorm.DB, accountID, id uuid.UUID) (*model.Load, error) {
	return f.FindByID(accountID, id)
}

func (f *fakeLoadRepo) Save(tx *gorm.DB, load *model.Load) error {
	f.loads[load.ID] = load
	return nil
}

func (f *fakeLoadRepo) FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Load, error) {
	return nil, nil
}

func (f *fakeLoadRepo) CountByStatus(accountID uuid.UUID) (active, completed int64, err error) {
	return 0, 0, nil
}

func (f *fakeLoadRepo) TotalFreight(accountID uuid.UUID) (float64, error) {
	return 0, nil
}

type fakeTruckRepo struct {
	trucks map[uuid.UUID]*model.Truck
}

var _ repository.TruckRepository = (*fakeTruckRepo)(nil)

func (f *fakeTruckRepo) Create(truck *model.Truck) error {
	if truck.ID == uuid.Nil {
		truck.ID = uuid.New()
	}
	f.trucks[truck.ID] = truck
	return nil
}

func (f *fakeTruckRepo) FindAll(accountID uuid.UUID) ([]model.Truck, error) {
	return nil, nil
}

func (f *fakeTruckRepo) FindAvailable(accountID uuid.UUID) ([]model.Truck, error) {
	return nil, nil
}

func (f *fakeTruckRepo) FindByID(accountID, id uuid.UUID) (*model.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok || truck.AccountID != accountID {
		return nil, gorm.ErrRecordNotFound
	}
	return truck, nil
}

func (f *fakeTruckRepo) Update(truck *model.Truck) error {
	f.trucks[truck.ID] = truck
	return nil
}

func (f *fakeTruckRepo) Delete(accountID, id uuid.UUID) error {
	delete(f.trucks, id)
	return nil
}

func (f *fakeTruckRepo) SetAvailability(tx *gorm.DB, id uuid.UUID, available bool, updatedBy string) error {
	truck, ok := f.trucks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	truck.IsActive = available
	truck.UpdatedBy = updatedBy
	return nil
}

func (f *fakeTruckRepo) CountByAvailability(accountID uuid.UUID) (total, available int64, err error) {
	return 0, 0, nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*model.LoadProvider
}

var _ repository.ProviderRepository = (*fakeProviderRepo)(nil)

func (f *fakeProviderRepo) Create(provider *model.LoadProvider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeProviderRepo) FindAll(accountID uuid.UUID) ([]model.LoadProvider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) FindByID(accountID, id uuid.UUID) (*model.LoadProvider, error) {
	provider, ok := f.providers[id]
	if !ok || provider.AccountID != accountID {
		return nil, gorm.ErrRecordNotFound
	}
	return provider, nil
}

func (f *fakeProviderRepo) Update(provider *model.LoadProvider) error {
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeProviderRepo) Delete(accountID, id uuid.UUID) error {
	delete(f.providers, id)
	return nil
}

func (f *fakeProviderRepo) Count(accountID uuid.UUID) (int64, error) {
	return int64(len(f.providers)), nil
}

type fakeTxRepo struct {
	entries []model.Transaction
}

var _ repository.TransactionRepository = (*fakeTxRepo)(nil)

func (f *fakeTxRepo) Create(tx *gorm.DB, entry *model.Transaction) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeTxRepo) FindByLoad(tx *gorm.DB, loadID uuid.UUID) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, e := range f.entries {
		if e.LoadID == loadID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) FindAll(accountID uuid.UUID) ([]model.Transaction, error) {
	return f.entries, nil
}

func (f *fakeTxRepo) FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Transaction, error) {
	return nil, nil
}

func (f *fakeTxRepo) SumByDirection(accountID uuid.UUID, direction model.PaymentDirection) (float64, error) {
	var total float64
	for _, e := range f.entries {
		if e.PaymentDirection == direction {
			total += e.Amount
		}
	}
	return total, nil
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// The settling payment must complete the load and free its truck in the same
// call; an earlier payment must do neither.
func TestRecordPaymentFreesTruckOnSettlement(t *testing.T) {
	accountID := uuid.New()

	truck := &model.Truck{TruckNumber: "KA01AB1234", DriverName: "Ramesh", IsActive: false}
	truck.ID = uuid.New()
	truck.AccountID = accountID

	truckFreight := 40000.0
	load := &model.Load{
		AccountID:          accountID,
		FreightAmount:      50000,
		TruckFreightAmount: &truckFreight,
		Status:             model.StatusInTransit,
		TruckID:            &truck.ID,
	}
	load.ID = uuid.New()

	loadRepo := &fakeLoadRepo{loads: map[uuid.UUID]*model.Load{load.ID: load}}
	truckRepo := &fakeTruckRepo{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	txRepo := &fakeTxRepo{}
	svc := NewPaymentService(loadRepo, truckRepo, txRepo, fakeDB{}, newTestHub(), ledger.Settings{})

	receipt, err := svc.RecordPayment(accountID, load.ID, &RecordPaymentRequest{
		Direction: model.DirectionReceived,
		Amount:    50000,
		Method:    model.MethodCash,
	}, "Asha")
	if err != nil {
		t.Fatalf("record received payment: %v", err)
	}
	if receipt.Completed {
		t.Fatalf("load must not complete while the driver is unpaid")
	}
	if truck.IsActive {
		t.Fatalf("truck freed before settlement")
	}

	receipt, err = svc.RecordPayment(accountID, load.ID, &RecordPaymentRequest{
		Direction: model.DirectionPaid,
		Amount:    40000,
		Method:    model.MethodBankTransfer,
	}, "Asha")
	if err != nil {
		t.Fatalf("record paid payment: %v", err)
	}
	if !receipt.Completed {
		t.Fatalf("settling payment did not report completion")
	}
	if load.Status != model.StatusCompleted {
		t.Fatalf("expected completed load, got %s", load.Status)
	}
	if !truck.IsActive {
		t.Fatalf("truck not freed on settlement")
	}
	if len(txRepo.entries) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(txRepo.entries))
	}
}

func TestAssignTruckMarksTruckBusy(t *testing.T) {
	accountID := uuid.New()

	truck := &model.Truck{TruckNumber: "KA02CD5678", DriverName: "Suresh", IsActive: true}
	truck.ID = uuid.New()
	truck.AccountID = accountID

	provider := &model.LoadProvider{CompanyName: "Sharma Logistics"}
	provider.ID = uuid.New()
	provider.AccountID = accountID

	load := &model.Load{
		AccountID:      accountID,
		LoadProviderID: provider.ID,
		FreightAmount:  50000,
		Status:         model.StatusPending,
	}
	load.ID = uuid.New()

	loadRepo := &fakeLoadRepo{loads: map[uuid.UUID]*model.Load{load.ID: load}}
	truckRepo := &fakeTruckRepo{trucks: map[uuid.UUID]*model.Truck{truck.ID: truck}}
	providerRepo := &fakeProviderRepo{providers: map[uuid.UUID]*model.LoadProvider{provider.ID: provider}}
	svc := NewLoadService(loadRepo, truckRepo, providerRepo, &fakeTxRepo{}, fakeDB{}, newTestHub())

	assigned, err := svc.AssignTruck(accountID, load.ID, truck.ID, "Asha")
	if err != nil {
		t.Fatalf("assign truck: %v", err)
	}
	if assigned.Status != model.StatusAssigned {
		t.Fatalf("expected assigned load, got %s", assigned.Status)
	}
	if truck.IsActive {
		t.Fatalf("truck still marked available after assignment")
	}

	// A busy truck cannot take a second load
	other := &model.Load{
		AccountID:      accountID,
		LoadProviderID: provider.ID,
		FreightAmount:  20000,
		Status:         model.StatusPending,
	}
	other.ID = uuid.New()
	loadRepo.loads[other.ID] = other

	if _, err := svc.AssignTruck(accountID, other.ID, truck.ID, "Asha"); !errors.Is(err, ErrTruckUnavailable) {
		t.Fatalf("expected ErrTruckUnavailable, got %v", err)
	}
}
