package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"fmt"
)

// StatsService computes the dashboard shown to admins and volunteers.
type StatsService struct {
	repo model.Repository
}

func NewStatsService(repo model.Repository) *StatsService {
	return &StatsService{repo: repo}
}

// Dashboard reads the counters and the ledger. Any store failure is returned
// as an error, never folded into the payload.
func (s *StatsService) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	requests, err := s.repo.CountRequests(ctx, "")
	if err != nil {
		return nil, fromStore(err, "request")
	}
	byStatus, err := s.repo.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, fromStore(err, "request")
	}
	payments, err := s.repo.AllPayments(ctx)
	if err != nil {
		return nil, fromStore(err, "payment")
	}
	dashboard := BuildDashboard(users, requests, byStatus, payments)
	return &dashboard, nil
}

// BuildDashboard aggregates already loaded data.
//
// Each amount is truncated to an integer before it is added to TotalFunds.
// TimeSeries keeps ledger order and labels rows "day/month" with 1-based months.
func BuildDashboard(users, requests int64, byStatus map[entity.DonationStatus]int64, payments []entity.DbPayment) entity.Dashboard {
	dashboard := entity.Dashboard{
		TotalUsers:      users,
		TotalRequests:   requests,
		StatusBreakdown: make([]entity.StatusCount, 0, len(entity.DonationStatuses)),
		TimeSeries:      make([][]interface{}, 0, len(payments)+1),
	}
	for _, status := range entity.DonationStatuses {
		dashboard.StatusBreakdown = append(dashboard.StatusBreakdown, entity.StatusCount{
			Name:  status.Label(),
			Value: byStatus[status],
		})
	}

	dashboard.TimeSeries = append(dashboard.TimeSeries, []interface{}{"Day", "Funds"})
	for _, p := range payments {
		dashboard.TotalFunds += int64(p.Amount)
		date := p.Date.UTC()
		label := fmt.Sprintf("%d/%d", date.Day(), int(date.Month()))
		dashboard.TimeSeries = append(dashboard.TimeSeries, []interface{}{label, p.Amount})
	}
	return dashboard
}
