package handler

import (
	"net/http"

	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

func (h *GenerationHandler) GenerateLyrics(c echo.Context) error {
	var req dto.GenerateLyricsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lyrics, err := h.generationService.GenerateLyrics(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LyricsListResponse{Success: true, Lyrics: lyrics})
}

func (h *GenerationHandler) ListLyrics(c echo.Context) error {
	lyrics, err := h.generationService.ListLyrics(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LyricsListResponse{Success: true, Lyrics: lyrics})
}

func (h *GenerationHandler) SelectLyrics(c echo.Context) error {
	lyrics, err := h.generationService.SelectLyrics(c.Request().Context(), c.Param("id"), c.Param("lyricsId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LyricsListResponse{Success: true, Lyrics: lyrics})
}

func (h *GenerationHandler) EditLyrics(c echo.Context) error {
	var req dto.EditLyricsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lyrics, err := h.generationService.EditLyrics(c.Request().Context(), c.Param("id"), c.Param("lyricsId"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LyricsResponse{Success: true, Lyrics: lyrics})
}

func (h *GenerationHandler) GenerateSongs(c echo.Context) error {
	var req dto.GenerateSongsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	songs, err := h.generationService.GenerateSongs(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SongListResponse{Success: true, Songs: songs})
}

func (h *GenerationHandler) ListSongs(c echo.Context) error {
	songs, err := h.generationService.ListSongs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SongListResponse{Success: true, Songs: songs})
}

func (h *GenerationHandler) SelectSong(c echo.Context) error {
	songs, err := h.generationService.SelectSong(c.Request().Context(), c.Param("id"), c.Param("songId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.SongListResponse{Success: true, Songs: songs})
}

func (h *GenerationHandler) StartVideo(c echo.Context) error {
	clip, err := h.generationService.StartVideo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, &dto.VideoResponse{Success: true, Video: clip})
}

// GetVideo is polled by the client until the video is completed.
func (h *GenerationHandler) GetVideo(c echo.Context) error {
	clip, err := h.generationService.GetVideo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.VideoResponse{Success: true, Video: clip})
}
