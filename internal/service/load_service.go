package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-freight-ws/internal/ledger"
	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/internal/ws"
	"go-freight-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLoadNotFound        = errors.New("load not found")
	ErrProviderNotFound    = errors.New("load provider not found")
	ErrTruckNotFound       = errors.New("truck not found")
	ErrTruckUnavailable    = errors.New("truck is not available for assignment")
	ErrTruckFreightTooHigh = errors.New("truck freight cannot exceed provider freight")
)

// txRunner is the transactional surface the services need from *gorm.DB.
// Tests substitute a runner that hands the callback a nil tx, which fake
// repositories ignore.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type LoadService interface {
	CreateLoad(req *model.Load, accountID uuid.UUID, userName string) error
	GetLoads(accountID uuid.UUID) ([]model.Load, error)
	GetLoad(accountID, id uuid.UUID) (*model.Load, error)
	GetKatha(accountID, id uuid.UUID) (*KathaResponse, error)
	AssignTruck(accountID, loadID, truckID uuid.UUID, userName string) (*model.Load, error)
	AdvanceStatus(accountID, loadID uuid.UUID, next model.LoadStatus, userName string) (*model.Load, error)
}

// KathaResponse is the full account book for one load: the load, its
// transactions in entry order, and the recomputed totals. The summary is a
// projection rebuilt from persisted rows on every read, never cached.
type KathaResponse struct {
	Load         model.Load          `json:"load"`
	Transactions []model.Transaction `json:"transactions"`
	Summary      ledger.Summary      `json:"summary"`
}

type loadService struct {
	loadRepo     repository.LoadRepository
	truckRepo    repository.TruckRepository
	providerRepo repository.ProviderRepository
	txRepo       repository.TransactionRepository
	db           txRunner
	wsHub        *ws.Hub
}

func NewLoadService(
	loadRepo repository.LoadRepository,
	truckRepo repository.TruckRepository,
	providerRepo repository.ProviderRepository,
	txRepo repository.TransactionRepository,
	db txRunner,
	hub *ws.Hub,
) LoadService {
	return &loadService{
		loadRepo:     loadRepo,
		truckRepo:    truckRepo,
		providerRepo: providerRepo,
		txRepo:       txRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *loadService) CreateLoad(req *model.Load, accountID uuid.UUID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Truck freight above provider freight would make the job a guaranteed
	// loss; reject before anything is written.
	if req.TruckFreightAmount != nil && *req.TruckFreightAmount > req.FreightAmount {
		return ErrTruckFreightTooHigh
	}

	// Provider must belong to the same account
	provider, err := s.providerRepo.FindByID(accountID, req.LoadProviderID)
	if err != nil {
		return ErrProviderNotFound
	}

	req.AccountID = accountID
	req.Status = model.StatusPending
	req.TruckID = nil
	req.CreatedBy = accountID.String()
	req.UpdatedBy = accountID.String()

	if req.TruckFreightAmount != nil {
		profit := req.FreightAmount - *req.TruckFreightAmount
		req.ProfitAmount = &profit
	}

	if err := s.loadRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.Publish(ws.EventLoadCreated, map[string]interface{}{
		"load_id":        req.ID,
		"provider":       provider.CompanyName,
		"freight_amount": req.FreightAmount,
		"message":        fmt.Sprintf("%s created a load from %s to %s", userName, req.LoadingLocation, req.UnloadingLocation),
	})

	return nil
}

func (s *loadService) GetLoads(accountID uuid.UUID) ([]model.Load, error) {
	return s.loadRepo.FindAll(accountID)
}

func (s *loadService) GetLoad(accountID, id uuid.UUID) (*model.Load, error) {
	load, err := s.loadRepo.FindByID(accountID, id)
	if err != nil {
		return nil, ErrLoadNotFound
	}
	return load, nil
}

func (s *loadService) GetKatha(accountID, id uuid.UUID) (*KathaResponse, error) {
	load, err := s.loadRepo.FindByID(accountID, id)
	if err != nil {
		return nil, ErrLoadNotFound
	}
	entries, err := s.txRepo.FindByLoad(nil, load.ID)
	if err != nil {
		return nil, err
	}
	return &KathaResponse{
		Load:         *load,
		Transactions: entries,
		Summary:      ledger.Summarize(load, entries),
	}, nil
}

// AssignTruck moves a pending load to assigned and marks the truck busy, in
// one commit so the load and the truck can never disagree.
func (s *loadService) AssignTruck(accountID, loadID, truckID uuid.UUID, userName string) (*model.Load, error) {
	var assigned *model.Load

	err := s.db.Transaction(func(tx *gorm.DB) error {
		load, err := s.loadRepo.FindByIDForUpdate(tx, accountID, loadID)
		if err != nil {
			return ErrLoadNotFound
		}

		truck, err := s.truckRepo.FindByID(accountID, truckID)
		if err != nil {
			return ErrTruckNotFound
		}
		if !truck.IsActive {
			return ErrTruckUnavailable
		}

		if err := load.Assign(truckID, time.Now()); err != nil {
			return err
		}
		load.UpdatedBy = accountID.String()

		if err := s.loadRepo.Save(tx, load); err != nil {
			return err
		}
		if err := s.truckRepo.SetAvailability(tx, truckID, false, accountID.String()); err != nil {
			return err
		}

		load.Truck = truck
		assigned = load
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.EventTruckAssigned, map[string]interface{}{
		"load_id":  assigned.ID,
		"truck_id": assigned.TruckID,
		"status":   assigned.Status,
		"message":  fmt.Sprintf("%s assigned truck %s", userName, assigned.Truck.TruckNumber),
	})

	return assigned, nil
}

// AdvanceStatus applies a manual operator transition. Payment state is not
// consulted here; only settlement completes a load.
func (s *loadService) AdvanceStatus(accountID, loadID uuid.UUID, next model.LoadStatus, userName string) (*model.Load, error) {
	var advanced *model.Load

	err := s.db.Transaction(func(tx *gorm.DB) error {
		load, err := s.loadRepo.FindByIDForUpdate(tx, accountID, loadID)
		if err != nil {
			return ErrLoadNotFound
		}

		if err := load.Advance(next, time.Now()); err != nil {
			return err
		}
		load.UpdatedBy = accountID.String()

		if err := s.loadRepo.Save(tx, load); err != nil {
			return err
		}

		advanced = load
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.EventStatusChanged, map[string]interface{}{
		"load_id": advanced.ID,
		"status":  advanced.Status,
		"message": fmt.Sprintf("%s marked load %s", userName, advanced.Status),
	})

	return advanced, nil
}
