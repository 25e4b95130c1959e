package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clock is injected wherever wall-clock time drives a state change.
type Clock func() time.Time

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	UpdateOrder(ctx context.Context, orderID string, req *dto.UpdateOrderRequest) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:                uuid.NewString(),
		Email:             req.Email,
		RecipientName:     req.RecipientName,
		Nickname:          req.Nickname,
		Gender:            req.Gender,
		Age:               req.Age,
		Relationship:      req.Relationship,
		PersonalityTraits: nonNil(req.PersonalityTraits),
		Hobbies:           nonNil(req.Hobbies),
		FunnyStory:        req.FunnyStory,
		Occupation:        req.Occupation,
		PetPeeve:          req.PetPeeve,
		ImportantPeople:   req.ImportantPeople,
		SharedMemory:      req.SharedMemory,
		DesiredMessage:    req.DesiredMessage,
		Tone:              req.Tone,
		Language:          req.Language,
		Status:            model.StatusCreated,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return findOrder(ctx, s.orderRepo, orderID)
}

// UpdateOrder merges only the fields present in req. Choosing a style moves a
// fresh order to style_selected unless the caller sets a status itself.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, orderID string, req *dto.UpdateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.SelectedStyle != nil {
		fields["selected_style"] = *req.SelectedStyle
		if req.Status == nil {
			fields["status"] = order.Status.Advance(model.StatusStyleSelected)
		}
	}
	if req.SelectedLyricsID != nil {
		fields["selected_lyrics_id"] = *req.SelectedLyricsID
	}
	if req.SelectedSongID != nil {
		fields["selected_song_id"] = *req.SelectedSongID
	}
	if req.Status != nil {
		fields["status"] = model.OrderStatus(*req.Status)
	}

	if err := s.orderRepo.Update(ctx, nil, orderID, fields); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return findOrder(ctx, s.orderRepo, orderID)
}

func findOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID string) (*model.Order, error) {
	order, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
