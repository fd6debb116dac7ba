package repository

import (
	"go-freight-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TruckRepository interface {
	Create(truck *model.Truck) error
	FindAll(accountID uuid.UUID) ([]model.Truck, error)
	FindAvailable(accountID uuid.UUID) ([]model.Truck, error)
	FindByID(accountID, id uuid.UUID) (*model.Truck, error)
	Update(truck *model.Truck) error
	Delete(accountID, id uuid.UUID) error
	SetAvailability(tx *gorm.DB, id uuid.UUID, available bool, updatedBy string) error
	CountByAvailability(accountID uuid.UUID) (total, available int64, err error)
}

type truckRepo struct {
	db *gorm.DB
}

func NewTruckRepo(db *gorm.DB) TruckRepository {
	return &truckRepo{db}
}

func (r *truckRepo) Create(truck *model.Truck) error {
	return r.db.Create(truck).Error
}

func (r *truckRepo) FindAll(accountID uuid.UUID) ([]model.Truck, error) {
	var trucks []model.Truck
	err := r.db.Where("account_id = ?", accountID).Order("truck_number ASC").Find(&trucks).Error
	return trucks, err
}

// FindAvailable lists only trucks that can take a new load. Truck pickers for
// assignment must use this, not FindAll.
func (r *truckRepo) FindAvailable(accountID uuid.UUID) ([]model.Truck, error) {
	var trucks []model.Truck
	err := r.db.Where("account_id = ? AND is_active = ?", accountID, true).Order("truck_number ASC").Find(&trucks).Error
	return trucks, err
}

func (r *truckRepo) FindByID(accountID, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.Where("account_id = ?", accountID).First(&truck, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepo) Update(truck *model.Truck) error {
	return r.db.Save(truck).Error
}

func (r *truckRepo) Delete(accountID, id uuid.UUID) error {
	return r.db.Where("account_id = ?", accountID).Delete(&model.Truck{}, "id = ?", id).Error
}

// SetAvailability accepts a *gorm.DB so the flip can run inside the same
// commit as the assignment or settlement that caused it.
func (r *truckRepo) SetAvailability(tx *gorm.DB, id uuid.UUID, available bool, updatedBy string) error {
	return tx.Model(&model.Truck{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  available,
			"updated_by": updatedBy,
		}).Error
}

func (r *truckRepo) CountByAvailability(accountID uuid.UUID) (total, available int64, err error) {
	if err = r.db.Model(&model.Truck{}).Where("account_id = ?", accountID).Count(&total).Error; err != nil {
		return
	}
	err = r.db.Model(&model.Truck{}).Where("account_id = ? AND is_active = ?", accountID, true).Count(&available).Error
	return
}
