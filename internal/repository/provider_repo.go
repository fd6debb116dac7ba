package repository

import (
	"go-freight-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderRepository interface {
	Create(provider *model.LoadProvider) error
	FindAll(accountID uuid.UUID) ([]model.LoadProvider, error)
	FindByID(accountID, id uuid.UUID) (*model.LoadProvider, error)
	Update(provider *model.LoadProvider) error
	Delete(accountID, id uuid.UUID) error
	Count(accountID uuid.UUID) (int64, error)
}

type providerRepo struct {
	db *gorm.DB
}

func NewProviderRepo(db *gorm.DB) ProviderRepository {
	return &providerRepo{db}
}

func (r *providerRepo) Create(provider *model.LoadProvider) error {
	return r.db.Create(provider).Error
}

func (r *providerRepo) FindAll(accountID uuid.UUID) ([]model.LoadProvider, error) {
	var providers []model.LoadProvider
	err := r.db.Where("account_id = ?", accountID).Order("company_name ASC").Find(&providers).Error
	return providers, err
}

func (r *providerRepo) FindByID(accountID, id uuid.UUID) (*model.LoadProvider, error) {
	var provider model.LoadProvider
	err := r.db.Where("account_id = ?", accountID).First(&provider, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepo) Update(provider *model.LoadProvider) error {
	return r.db.Save(provider).Error
}

func (r *providerRepo) Delete(accountID, id uuid.UUID) error {
	return r.db.Where("account_id = ?", accountID).Delete(&model.LoadProvider{}, "id = ?", id).Error
}

func (r *providerRepo) Count(accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.LoadProvider{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
