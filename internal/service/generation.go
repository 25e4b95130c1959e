package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/generator"
	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationService interface {
	GenerateLyrics(ctx context.Context, orderID string, req *dto.GenerateLyricsRequest) ([]*model.LyricsVariation, error)
	ListLyrics(ctx context.Context, orderID string) ([]*model.LyricsVariation, error)
	SelectLyrics(ctx context.Context, orderID, lyricsID string) ([]*model.LyricsVariation, error)
	EditLyrics(ctx context.Context, orderID, lyricsID string, req *dto.EditLyricsRequest) (*model.LyricsVariation, error)

	GenerateSongs(ctx context.Context, orderID string, req *dto.GenerateSongsRequest) ([]*model.SongVariation, error)
	ListSongs(ctx context.Context, orderID string) ([]*model.SongVariation, error)
	SelectSong(ctx context.Context, orderID, songID string) ([]*model.SongVariation, error)

	StartVideo(ctx context.Context, orderID string) (*model.VideoClip, error)
	GetVideo(ctx context.Context, orderID string) (*model.VideoClip, error)
}

type generationServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	lyricsRepo  repository.LyricsRepository
	songRepo    repository.SongRepository
	videoRepo   repository.VideoRepository
	media       *generator.Media
	renderDelay time.Duration
	now         Clock
}

func NewGenerationService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	lyricsRepo repository.LyricsRepository,
	songRepo repository.SongRepository,
	videoRepo repository.VideoRepository,
	media *generator.Media,
	renderDelay time.Duration,
	now Clock,
) GenerationService {
	return &generationServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		lyricsRepo:  lyricsRepo,
		songRepo:    songRepo,
		videoRepo:   videoRepo,
		media:       media,
		renderDelay: renderDelay,
		now:         now,
	}
}

// GenerateLyrics renders a fresh set of variations. The order status is left alone.
func (s *generationServiceImpl) GenerateLyrics(ctx context.Context, orderID string, req *dto.GenerateLyricsRequest) ([]*model.LyricsVariation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	tone := req.Tone
	if tone == "" {
		tone = order.Tone
	}

	drafts, err := generator.GenerateLyrics(req.Style, tone, answersFor(order))
	if err != nil {
		return nil, apperr.Validation("Invalid request", apperr.FieldError{Path: "style", Message: err.Error()})
	}

	createdAt := s.now()
	variations := make([]*model.LyricsVariation, len(drafts))
	for i, d := range drafts {
		variations[i] = &model.LyricsVariation{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			Model:     d.Model,
			Style:     d.Style,
			Content:   d.Content,
			Position:  i,
			CreatedAt: createdAt,
		}
	}

	if err := s.lyricsRepo.CreateMany(ctx, variations); err != nil {
		return nil, fmt.Errorf("store lyrics variations: %w", err)
	}

	return variations, nil
}

func (s *generationServiceImpl) ListLyrics(ctx context.Context, orderID string) ([]*model.LyricsVariation, error) {
	if _, err := findOrder(ctx, s.orderRepo, orderID); err != nil {
		return nil, err
	}

	lyrics, err := s.lyricsRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list lyrics: %w", err)
	}
	return lyrics, nil
}

func (s *generationServiceImpl) SelectLyrics(ctx context.Context, orderID, lyricsID string) ([]*model.LyricsVariation, error) {
	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lyricsRepo.Select(ctx, tx, orderID, lyricsID); err != nil {
			return err
		}
		return s.orderRepo.Update(ctx, tx, orderID, map[string]interface{}{
			"selected_lyrics_id": lyricsID,
			"status":             order.Status.Advance(model.StatusLyricsReady),
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Lyrics not found")
		}
		return nil, fmt.Errorf("select lyrics: %w", err)
	}

	return s.ListLyrics(ctx, orderID)
}

// EditLyrics stores an override next to the generated text.
func (s *generationServiceImpl) EditLyrics(ctx context.Context, orderID, lyricsID string, req *dto.EditLyricsRequest) (*model.LyricsVariation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.lyricsRepo.UpdateEditedContent(ctx, orderID, lyricsID, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Lyrics not found")
		}
		return nil, fmt.Errorf("edit lyrics: %w", err)
	}

	lyrics, err := s.lyricsRepo.FindByID(ctx, orderID, lyricsID)
	if err != nil {
		return nil, fmt.Errorf("find lyrics: %w", err)
	}
	return lyrics, nil
}

// GenerateSongs produces songs for the requested lyrics, or the selected ones
// when no id is given. Each song carries the lyrics text it was sung from.
func (s *generationServiceImpl) GenerateSongs(ctx context.Context, orderID string, req *dto.GenerateSongsRequest) ([]*model.SongVariation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	var lyrics *model.LyricsVariation
	if req.LyricsID != "" {
		lyrics, err = s.lyricsRepo.FindByID(ctx, order.ID, req.LyricsID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Lyrics not found")
		}
	} else {
		lyrics, err = s.lyricsRepo.FindSelected(ctx, order.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("Select lyrics before generating songs").WithCode("lyrics_not_selected")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("find lyrics: %w", err)
	}

	createdAt := s.now()
	content := lyrics.FinalContent()
	songs := make([]*model.SongVariation, generator.SongVariationCount)
	for i := range songs {
		id := uuid.NewString()
		previewURL, audioURL := s.media.SongURLs(order.ID, id)
		songs[i] = &model.SongVariation{
			ID:         id,
			OrderID:    order.ID,
			LyricsID:   lyrics.ID,
			Lyrics:     content,
			PreviewURL: previewURL,
			AudioURL:   audioURL,
			Position:   i,
			CreatedAt:  createdAt,
		}
	}

	if err := s.songRepo.CreateMany(ctx, songs); err != nil {
		return nil, fmt.Errorf("store song variations: %w", err)
	}

	return songs, nil
}

func (s *generationServiceImpl) ListSongs(ctx context.Context, orderID string) ([]*model.SongVariation, error) {
	if _, err := findOrder(ctx, s.orderRepo, orderID); err != nil {
		return nil, err
	}

	songs, err := s.songRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

func (s *generationServiceImpl) SelectSong(ctx context.Context, orderID, songID string) ([]*model.SongVariation, error) {
	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.songRepo.Select(ctx, tx, orderID, songID); err != nil {
			return err
		}
		return s.orderRepo.Update(ctx, tx, orderID, map[string]interface{}{
			"selected_song_id": songID,
			"status":           order.Status.Advance(model.StatusSongReady),
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Song not found")
		}
		return nil, fmt.Errorf("select song: %w", err)
	}

	return s.ListSongs(ctx, orderID)
}

// StartVideo queues a render of the selected song. A finished render of the
// same song is returned as is; anything else restarts.
func (s *generationServiceImpl) StartVideo(ctx context.Context, orderID string) (*model.VideoClip, error) {
	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	song, err := s.songRepo.FindSelected(ctx, order.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("Select a song before creating the video").WithCode("song_not_selected")
		}
		return nil, fmt.Errorf("find selected song: %w", err)
	}

	clipID := uuid.NewString()
	existing, err := s.videoRepo.FindByOrder(ctx, order.ID)
	switch {
	case err == nil:
		if existing.Status == model.VideoCompleted && existing.SongID == song.ID {
			return existing, nil
		}
		clipID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find video: %w", err)
	}

	clip := &model.VideoClip{
		ID:      clipID,
		OrderID: order.ID,
		SongID:  song.ID,
		Status:  model.VideoProcessing,
		ReadyAt: s.now().Add(s.renderDelay),
	}
	if err := s.videoRepo.Upsert(ctx, clip); err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	return s.videoRepo.FindByOrder(ctx, order.ID)
}

// GetVideo is polled by the client; a due render is completed on read.
func (s *generationServiceImpl) GetVideo(ctx context.Context, orderID string) (*model.VideoClip, error) {
	clip, err := s.videoRepo.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Video not found")
		}
		return nil, fmt.Errorf("find video: %w", err)
	}

	rendering := clip.Status == model.VideoPending || clip.Status == model.VideoProcessing
	if rendering && !s.now().Before(clip.ReadyAt) {
		if err := s.videoRepo.MarkCompleted(ctx, clip.ID, s.media.VideoURL(orderID, clip.ID)); err != nil {
			return nil, fmt.Errorf("complete video: %w", err)
		}
		return s.videoRepo.FindByOrder(ctx, orderID)
	}

	return clip, nil
}

func answersFor(order *model.Order) generator.Answers {
	return generator.Answers{
		Name:              order.RecipientName,
		Nickname:          order.Nickname,
		Age:               order.Age,
		Relationship:      order.Relationship,
		PersonalityTraits: order.PersonalityTraits,
		Hobbies:           order.Hobbies,
		FunnyStory:        order.FunnyStory,
		Occupation:        order.Occupation,
		PetPeeve:          order.PetPeeve,
		ImportantPeople:   order.ImportantPeople,
		SharedMemory:      order.SharedMemory,
		DesiredMessage:    order.DesiredMessage,
	}
}
