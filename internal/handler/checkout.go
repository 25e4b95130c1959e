package handler

import (
	"net/http"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	var req dto.CreateCheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.checkoutService.CreateCheckout(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CreateCheckoutResponse{
		Success:     true,
		SessionID:   session.SessionID,
		CheckoutURL: session.CheckoutURL,
	})
}

func (h *CheckoutHandler) GetSession(c echo.Context) error {
	session, err := h.checkoutService.LookupSession(c.Request().Context(), c.Param("sessionId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutSessionResponse{Success: true, Session: session})
}

// Webhook is called by the mock checkout page once the buyer confirms payment.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	var req dto.CompleteCheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	payment, err := h.checkoutService.HandleWebhook(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CompleteCheckoutResponse{Success: true, Payment: payment})
}

func (h *CheckoutHandler) Pricing(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.PricingResponse{Success: true, Tiers: h.checkoutService.PricingTiers()})
}
