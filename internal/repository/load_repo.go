package repository

import (
	"time"

	"go-freight-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoadRepository interface {
	Create(load *model.Load) error
	FindAll(accountID uuid.UUID) ([]model.Load, error)
	FindByID(accountID, id uuid.UUID) (*model.Load, error)
	FindByIDForUpdate(tx *gorm.DB, accountID, id uuid.UUID) (*model.Load, error)
	Save(tx *gorm.DB, load *model.Load) error
	FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Load, error)
	CountByStatus(accountID uuid.UUID) (active, completed int64, err error)
	TotalFreight(accountID uuid.UUID) (float64, error)
}

type loadRepo struct {
	db *gorm.DB
}

func NewLoadRepo(db *gorm.DB) LoadRepository {
	return &loadRepo{db}
}

func (r *loadRepo) Create(load *model.Load) error {
	return r.db.Create(load).Error
}

func (r *loadRepo) FindAll(accountID uuid.UUID) ([]model.Load, error) {
	var loads []model.Load
	err := r.db.Preload("LoadProvider").Preload("Truck").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&loads).Error
	return loads, err
}

func (r *loadRepo) FindByID(accountID, id uuid.UUID) (*model.Load, error) {
	var load model.Load
	err := r.db.Preload("LoadProvider").Preload("Truck").
		Where("account_id = ?", accountID).
		First(&load, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &load, nil
}

// FindByIDForUpdate locks the load row for the duration of the surrounding
// transaction, then reads it back with its associations. The lock is what
// serializes concurrent payments so the cap check never runs against a stale
// total.
func (r *loadRepo) FindByIDForUpdate(tx *gorm.DB, accountID, id uuid.UUID) (*model.Load, error) {
	var load model.Load
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("account_id = ?", accountID).
		First(&load, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Preload("LoadProvider").Preload("Truck").First(&load, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &load, nil
}

// Save accepts a *gorm.DB so status flips ride the caller's transaction.
func (r *loadRepo) Save(tx *gorm.DB, load *model.Load) error {
	return tx.Save(load).Error
}

func (r *loadRepo) FindBetween(accountID uuid.UUID, start, end time.Time) ([]model.Load, error) {
	var loads []model.Load
	err := r.db.Preload("LoadProvider").Preload("Truck").
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, start, end).
		Order("created_at DESC").
		Find(&loads).Error
	return loads, err
}

func (r *loadRepo) CountByStatus(accountID uuid.UUID) (active, completed int64, err error) {
	if err = r.db.Model(&model.Load{}).
		Where("account_id = ? AND status <> ?", accountID, model.StatusCompleted).
		Count(&active).Error; err != nil {
		return
	}
	err = r.db.Model(&model.Load{}).
		Where("account_id = ? AND status = ?", accountID, model.StatusCompleted).
		Count(&completed).Error
	return
}

func (r *loadRepo) TotalFreight(accountID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&model.Load{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(freight_amount), 0)").
		Scan(&total).Error
	return total, err
}
