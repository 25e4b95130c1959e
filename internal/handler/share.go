package handler

import (
	"net/http"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
)

type ShareHandler struct {
	shareService service.ShareService
}

func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

func (h *ShareHandler) GetShare(c echo.Context) error {
	viewer := service.Viewer{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	info, err := h.shareService.GetShare(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.ShareResponse{Success: true, Share: info})
}
