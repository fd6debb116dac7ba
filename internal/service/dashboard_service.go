package service

import (
	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetDashboardStats(accountID uuid.UUID) (*DashboardStats, error)
}

// DashboardStats is the operations overview: fleet, directory, load pipeline,
// and the two money flows rolled up across the account.
type DashboardStats struct {
	TotalTrucks        int64   `json:"total_trucks"`
	AvailableTrucks    int64   `json:"available_trucks"`
	TotalLoadProviders int64   `json:"total_load_providers"`
	ActiveLoads        int64   `json:"active_loads"`
	CompletedLoads     int64   `json:"completed_loads"`
	TotalReceived      float64 `json:"total_received"`
	TotalPaid          float64 `json:"total_paid"`
	PendingRevenue     float64 `json:"pending_revenue"` // booked freight minus received
	RealizedProfit     float64 `json:"realized_profit"` // received minus paid
}

type dashboardService struct {
	truckRepo    repository.TruckRepository
	providerRepo repository.ProviderRepository
	loadRepo     repository.LoadRepository
	txRepo       repository.TransactionRepository
}

func NewDashboardService(
	truckRepo repository.TruckRepository,
	providerRepo repository.ProviderRepository,
	loadRepo repository.LoadRepository,
	txRepo repository.TransactionRepository,
) DashboardService {
	return &dashboardService{
		truckRepo:    truckRepo,
		providerRepo: providerRepo,
		loadRepo:     loadRepo,
		txRepo:       txRepo,
	}
}

func (s *dashboardService) GetDashboardStats(accountID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalTrucks, stats.AvailableTrucks, err = s.truckRepo.CountByAvailability(accountID); err != nil {
		return nil, err
	}
	if stats.TotalLoadProviders, err = s.providerRepo.Count(accountID); err != nil {
		return nil, err
	}
	if stats.ActiveLoads, stats.CompletedLoads, err = s.loadRepo.CountByStatus(accountID); err != nil {
		return nil, err
	}

	totalFreight, err := s.loadRepo.TotalFreight(accountID)
	if err != nil {
		return nil, err
	}
	if stats.TotalReceived, err = s.txRepo.SumByDirection(accountID, model.DirectionReceived); err != nil {
		return nil, err
	}
	if stats.TotalPaid, err = s.txRepo.SumByDirection(accountID, model.DirectionPaid); err != nil {
		return nil, err
	}

	stats.PendingRevenue = totalFreight - stats.TotalReceived
	stats.RealizedProfit = stats.TotalReceived - stats.TotalPaid

	return stats, nil
}
