package handler

import (
	"net/http"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.OrderResponse{Success: true, Order: order})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{Success: true, Order: order})
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	var req dto.UpdateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateOrder(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{Success: true, Order: order})
}
