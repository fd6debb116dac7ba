package service

import (
	"errors"
	"time"

	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidPeriod = errors.New("invalid report period")

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

type ReportService interface {
	GetLoadReport(accountID uuid.UUID, period ReportPeriod) (*LoadReport, error)
	GetTransactionReport(accountID uuid.UUID, period ReportPeriod) (*TransactionReport, error)
}

type LoadReport struct {
	Period       ReportPeriod `json:"period"`
	From         time.Time    `json:"from"`
	To           time.Time    `json:"to"`
	Count        int          `json:"count"`
	TotalFreight float64      `json:"total_freight"`
	Loads        []model.Load `json:"loads"`
}

type TransactionReport struct {
	Period       ReportPeriod        `json:"period"`
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	Count        int                 `json:"count"`
	TotalAmount  float64             `json:"total_amount"`
	Transactions []model.Transaction `json:"transactions"`
}

type reportService struct {
	loadRepo repository.LoadRepository
	txRepo   repository.TransactionRepository
}

func NewReportService(loadRepo repository.LoadRepository, txRepo repository.TransactionRepository) ReportService {
	return &reportService{loadRepo: loadRepo, txRepo: txRepo}
}

func (s *reportService) GetLoadReport(accountID uuid.UUID, period ReportPeriod) (*LoadReport, error) {
	start, end, err := periodRange(time.Now(), period)
	if err != nil {
		return nil, err
	}

	loads, err := s.loadRepo.FindBetween(accountID, start, end)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, l := range loads {
		total += l.FreightAmount
	}

	return &LoadReport{
		Period:       period,
		From:         start,
		To:           end,
		Count:        len(loads),
		TotalFreight: total,
		Loads:        loads,
	}, nil
}

func (s *reportService) GetTransactionReport(accountID uuid.UUID, period ReportPeriod) (*TransactionReport, error) {
	start, end, err := periodRange(time.Now(), period)
	if err != nil {
		return nil, err
	}

	entries, err := s.txRepo.FindBetween(accountID, start, end)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, e := range entries {
		total += e.Amount
	}

	return &TransactionReport{
		Period:       period,
		From:         start,
		To:           end,
		Count:        len(entries),
		TotalAmount:  total,
		Transactions: entries,
	}, nil
}

// periodRange resolves a report period to an inclusive window around now.
// Weeks start on Sunday.
func periodRange(now time.Time, period ReportPeriod) (time.Time, time.Time, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodDaily:
		return dayStart, dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	case PeriodWeekly:
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return weekStart, weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond), nil
	case PeriodMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return monthStart, monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	}
	return time.Time{}, time.Time{}, ErrInvalidPeriod
}
