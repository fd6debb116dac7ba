package service

import (
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

type PaymentService interface {
	RecordPayment(accountID, loadID uuid.UUID, req *RecordPaymentRequest, userName string) (*PaymentReceipt, error)
	GetTimeline(accountID, loadID uuid.UUID) ([]model.Transaction, error)
	GetCashLedger(accountID uuid.UUID) ([]model.Transaction, error)
}

type RecordPaymentRequest struct {
	Direction      model.PaymentDirection `json:"payment_direction" validate:"required,oneof=received paid"`
	Amount         float64                `json:"amount" validate:"required,gt=0,lte=10000000"`
	Method         model.PaymentMethod    `json:"payment_method" validate:"required,oneof=cash upi bank_transfer"`
	PaymentDetails string                 `json:"payment_details" validate:"omitempty,max=500"`
	Notes          string                 `json:"notes" validate:"omitempty,max=1000"`
}

// PaymentReceipt reports the recorded entry, the totals including it, and
// whether the payment settled the load.
type PaymentReceipt struct {
	Transaction model.Transaction `json:"transaction"`
	Summary     ledger.Summary    `json:"summary"`
	Completed   bool              `json:"completed"`
}

type paymentService struct {
	loadRepo  repository.LoadRepository
	truckRepo repository.TruckRepository
	txRepo    repository.TransactionRepository
	db        txRunner
	wsHub     *ws.Hub
	settings  ledger.Settings
}

func NewPaymentService(
	loadRepo repository.LoadRepository,
	truckRepo repository.TruckRepository,
	txRepo repository.TransactionRepository,
	db txRunner,
	hub *ws.Hub,
	settings ledger.Settings,
) PaymentService {
	return &paymentService{
		loadRepo:  loadRepo,
		truckRepo: truckRepo,
		txRepo:    txRepo,
		db:        db,
		wsHub:     hub,
		settings:  settings,
	}
}

// RecordPayment runs the whole per-payment pipeline inside one transaction
// holding the load row lock: validate against the live totals, stamp sequence
// and label, insert the entry, and settle the load if both ledgers just
// reached their caps. The truck is freed in the same commit, so a fully paid
// load and a busy truck can never be observed together.
func (s *paymentService) RecordPayment(accountID, loadID uuid.UUID, req *RecordPaymentRequest, userName string) (*PaymentReceipt, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var receipt *PaymentReceipt

	err := s.db.Transaction(func(tx *gorm.DB) error {
		load, err := s.loadRepo.FindByIDForUpdate(tx, accountID, loadID)
		if err != nil {
			return ErrLoadNotFound
		}

		existing, err := s.txRepo.FindByLoad(tx, load.ID)
		if err != nil {
			return err
		}

		result, err := ledger.Apply(load, existing, ledger.PaymentRequest{
			Direction:      req.Direction,
			Amount:         req.Amount,
			Method:         req.Method,
			PaymentDetails: req.PaymentDetails,
			Notes:          req.Notes,
			Date:           time.Now(),
		}, s.settings)
		if err != nil {
			return err
		}

		result.Entry.CreatedBy = accountID.String()
		result.Entry.UpdatedBy = accountID.String()
		if err := s.txRepo.Create(tx, &result.Entry); err != nil {
			return err
		}

		if result.Settles {
			if err := load.Complete(); err != nil {
				return err
			}
			load.UpdatedBy = accountID.String()
			if err := s.loadRepo.Save(tx, load); err != nil {
				return err
			}
			if load.TruckID != nil {
				if err := s.truckRepo.SetAvailability(tx, *load.TruckID, true, accountID.String()); err != nil {
					return err
				}
			}
		}

		receipt = &PaymentReceipt{
			Transaction: result.Entry,
			Summary:     result.Summary,
			Completed:   result.Settles,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go func(r PaymentReceipt) {
		s.wsHub.Publish(ws.EventPaymentRecorded, map[string]interface{}{
			"load_id":   loadID,
			"direction": r.Transaction.PaymentDirection,
			"sequence":  r.Transaction.PaymentSequence,
			"amount":    r.Transaction.Amount,
			"message":   fmt.Sprintf("%s recorded a %s %s payment", userName, r.Transaction.TransactionType, r.Transaction.PaymentDirection),
		})
		if r.Completed {
			s.wsHub.Publish(ws.EventLoadCompleted, map[string]interface{}{
				"load_id": loadID,
				"message": "Load fully settled and completed; truck is available again",
			})
		}
	}(*receipt)

	return receipt, nil
}

func (s *paymentService) GetTimeline(accountID, loadID uuid.UUID) ([]model.Transaction, error) {
	// Scope check before reading the katha
	if _, err := s.loadRepo.FindByID(accountID, loadID); err != nil {
		return nil, ErrLoadNotFound
	}
	return s.txRepo.FindByLoad(nil, loadID)
}

func (s *paymentService) GetCashLedger(accountID uuid.UUID) ([]model.Transaction, error) {
	return s.txRepo.FindAll(accountID)
}
