package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/client"
	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const eventCheckoutCompleted = "checkout.session.completed"

type CheckoutService interface {
	CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*client.CreatedSession, error)
	LookupSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	HandleWebhook(ctx context.Context, req *dto.CompleteCheckoutRequest) (*model.CompletedCheckout, error)
	PricingTiers() []model.PricingTier
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	checkoutClient   client.CheckoutClient
	emailClient      client.EmailClient
	frontendURL      string
	orderRepo        repository.OrderRepository
	paymentRepo      repository.PaymentRepository
	webhookEventRepo repository.WebhookEventRepository
	log              logrus.FieldLogger
}

func NewCheckoutService(
	db *gorm.DB,
	checkoutClient client.CheckoutClient,
	emailClient client.EmailClient,
	frontendURL string,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	webhookEventRepo repository.WebhookEventRepository,
	log logrus.FieldLogger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		checkoutClient:   checkoutClient,
		emailClient:      emailClient,
		frontendURL:      strings.TrimRight(frontendURL, "/"),
		orderRepo:        orderRepo,
		paymentRepo:      paymentRepo,
		webhookEventRepo: webhookEventRepo,
		log:              log,
	}
}

func (s *checkoutServiceImpl) CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*client.CreatedSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.orderRepo, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Shareable() {
		return nil, apperr.Forbidden("Order has already been paid").WithCode("already_paid")
	}

	session, err := s.checkoutClient.CreateSession(ctx, order.ID, req.Tier)
	if err != nil {
		if errors.Is(err, client.ErrUnknownTier) {
			return nil, apperr.Validation("Invalid request", apperr.FieldError{Path: "tier", Message: "is not a known pricing tier"})
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"session_id": session.SessionID,
		"tier":       req.Tier,
	}).Info("checkout session created")

	return session, nil
}

func (s *checkoutServiceImpl) LookupSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	session, ok := s.checkoutClient.LookupSession(ctx, sessionID)
	if !ok {
		return nil, apperr.NotFound("Checkout session not found")
	}
	return session, nil
}

// HandleWebhook completes a session and records its payment. The gateway
// completion, the payment row, the webhook event and the order status change
// succeed or fail together: when the transaction fails the session is
// reopened so the webhook can be retried.
func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, req *dto.CompleteCheckoutRequest) (*model.CompletedCheckout, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	processed, err := s.webhookEventRepo.Exists(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		return nil, apperr.Forbidden("Checkout session already completed").WithCode("already_completed")
	}

	var (
		completed *model.CompletedCheckout
		order     *model.Order
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		completed, err = s.completeSession(ctx, req.SessionID)
		if err != nil {
			return err
		}

		order, err = s.orderRepo.MarkPaid(ctx, tx, completed.OrderID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return apperr.NotFound("Order not found")
			case errors.Is(err, repository.ErrOrderNotPayable):
				return apperr.Forbidden("Order has already been paid").WithCode("already_paid")
			}
			return fmt.Errorf("mark order paid: %w", err)
		}

		err = s.paymentRepo.Create(ctx, tx, &model.Payment{
			PaymentIntentID: completed.PaymentIntentID,
			SessionID:       completed.SessionID,
			OrderID:         completed.OrderID,
			Tier:            completed.Tier,
			AmountCents:     completed.AmountCents,
			Currency:        completed.Currency,
		})
		if err != nil {
			return fmt.Errorf("store payment: %w", err)
		}

		if err := s.webhookEventRepo.MarkProcessed(ctx, tx, completed.SessionID, eventCheckoutCompleted); err != nil {
			return fmt.Errorf("mark webhook event processed: %w", err)
		}
		return nil
	})
	if err != nil {
		if completed != nil {
			s.reopenSession(ctx, completed)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":          completed.OrderID,
		"session_id":        completed.SessionID,
		"payment_intent_id": completed.PaymentIntentID,
		"amount_cents":      completed.AmountCents,
	}).Info("checkout completed")

	if order.Email != "" {
		go s.sendSongReady(context.WithoutCancel(ctx), order)
	}

	return completed, nil
}

func (s *checkoutServiceImpl) completeSession(ctx context.Context, sessionID string) (*model.CompletedCheckout, error) {
	completed, err := s.checkoutClient.CompleteSession(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrSessionNotFound):
			return nil, apperr.NotFound("Checkout session not found")
		case errors.Is(err, client.ErrAlreadyCompleted):
			return nil, apperr.Forbidden("Checkout session already completed").WithCode("already_completed")
		case errors.Is(err, client.ErrSessionExpired):
			return nil, apperr.Forbidden("Checkout session expired").WithCode("session_expired")
		}
		return nil, fmt.Errorf("complete checkout session: %w", err)
	}
	return completed, nil
}

func (s *checkoutServiceImpl) reopenSession(ctx context.Context, completed *model.CompletedCheckout) {
	log := s.log.WithFields(logrus.Fields{
		"order_id":   completed.OrderID,
		"session_id": completed.SessionID,
	})
	if !s.checkoutClient.ReopenSession(context.WithoutCancel(ctx), completed.SessionID, completed.PaymentIntentID) {
		log.Error("checkout session could not be reopened after failed payment")
		return
	}
	log.Warn("checkout session reopened after failed payment")
}

func (s *checkoutServiceImpl) sendSongReady(ctx context.Context, order *model.Order) {
	shareURL := fmt.Sprintf("%s/share/%s", s.frontendURL, order.ID)
	if err := s.emailClient.SendSongReady(ctx, order.Email, order.RecipientName, shareURL); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("send song ready email")
	}
}

func (s *checkoutServiceImpl) PricingTiers() []model.PricingTier {
	return client.PricingTiers()
}
