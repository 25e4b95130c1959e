package handler

import (
	"net/http"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
)

type SocialHandler struct {
	socialService service.SocialService
}

func NewSocialHandler(socialService service.SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
	}
}

func (h *SocialHandler) Autofill(c echo.Context) error {
	var req dto.SocialAutofillRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.socialService.Autofill(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SocialAutofillResponse{Success: true, Profile: profile})
}
