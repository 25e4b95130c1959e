package service

import (
	"context"
	"fmt"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	topStylesLimit    = 5
	recentOrdersLimit = 10
)

type AdminService interface {
	Stats(ctx context.Context) (*dto.AdminStats, error)
}

type adminServiceImpl struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewAdminService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository) AdminService {
	return &adminServiceImpl{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.AdminStats, error) {
	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	completed, err := s.orderRepo.CountByStatus(ctx, []model.OrderStatus{model.StatusPaid, model.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}

	revenue, err := s.paymentRepo.TotalRevenueCents(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	styles, err := s.orderRepo.TopStyles(ctx, topStylesLimit)
	if err != nil {
		return nil, fmt.Errorf("top styles: %w", err)
	}
	if styles == nil {
		styles = []model.StyleCount{}
	}

	orders, err := s.orderRepo.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	recent := make([]dto.RecentOrder, len(orders))
	for i, o := range orders {
		recent[i] = dto.RecentOrder{
			ID:            o.ID,
			RecipientName: o.RecipientName,
			Style:         o.SelectedStyle,
			Status:        o.Status,
			CreatedAt:     o.CreatedAt,
		}
	}

	rate := conversionRate(completed, total)

	return &dto.AdminStats{
		TotalOrders:       total,
		TotalRevenue:      revenue,
		TotalRevenueFmt:   "$" + decimal.New(revenue, -2).StringFixed(2),
		CompletedOrders:   completed,
		ConversionRate:    rate.InexactFloat64(),
		ConversionRateFmt: rate.StringFixed(1) + "%",
		TopStyles:         styles,
		RecentOrders:      recent,
	}, nil
}

// conversionRate is completed/total as a percentage rounded to one decimal.
func conversionRate(completed, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(completed).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(1)
}
