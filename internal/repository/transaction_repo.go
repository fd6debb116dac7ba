package repository

import (
	"time"

	"go-freight-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, entry *model.Transaction) error
	FindByLoad(tx *gorm.DB, loadID uuid.UUID) ([]model.Transaction, error)
	FindAll(accountID uuid.UUID) ([]model.Transaction, error)
	FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Transaction, error)
	SumByDirection(accountID uuid.UUID, direction model.PaymentDirection) (float64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create accepts a *gorm.DB so the insert shares the commit that holds the
// load row lock. The composite unique index on (load_id, direction, sequence)
// rejects a duplicate sequence if two writers ever slip past the lock.
func (r *transactionRepo) Create(tx *gorm.DB, entry *model.Transaction) error {
	return tx.Create(entry).Error
}

// FindByLoad reads a load's katha ordered by entry time for the timeline
// view. Pass the caller's transaction to read under its row lock, or nil for
// a plain read.
func (r *transactionRepo) FindByLoad(tx *gorm.DB, loadID uuid.UUID) ([]model.Transaction, error) {
	if tx == nil {
		tx = r.db
	}
	var entries []model.Transaction
	err := tx.Where("load_id = ?", loadID).Order("transaction_date ASC").Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) FindAll(accountID uuid.UUID) ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.Preload("Load").
		Where("account_id = ?", accountID).
		Order("transaction_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.Preload("Load").
		Where("account_id = ? AND transaction_date BETWEEN ? AND ?", accountID, start, end).
		Order("transaction_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) SumByDirection(accountID uuid.UUID, direction model.PaymentDirection) (float64, error) {
	var total float64
	err := r.db.Model(&model.Transaction{}).
		Where("account_id = ? AND payment_direction = ?", accountID, direction).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
