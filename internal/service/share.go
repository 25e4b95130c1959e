package service

import (
	"context"
	"errors"
	"fmt"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/dto"
	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Viewer identifies who opened a share link, for analytics only.
type Viewer struct {
	IP        string
	UserAgent string
}

type ShareService interface {
	GetShare(ctx context.Context, orderID string, viewer Viewer) (*dto.ShareInfo, error)
}

type shareServiceImpl struct {
	orderRepo      repository.OrderRepository
	songRepo       repository.SongRepository
	videoRepo      repository.VideoRepository
	shareEventRepo repository.ShareEventRepository
	log            logrus.FieldLogger
}

func NewShareService(
	orderRepo repository.OrderRepository,
	songRepo repository.SongRepository,
	videoRepo repository.VideoRepository,
	shareEventRepo repository.ShareEventRepository,
	log logrus.FieldLogger,
) ShareService {
	return &shareServiceImpl{
		orderRepo:      orderRepo,
		songRepo:       songRepo,
		videoRepo:      videoRepo,
		shareEventRepo: shareEventRepo,
		log:            log,
	}
}

func (s *shareServiceImpl) GetShare(ctx context.Context, orderID string, viewer Viewer) (*dto.ShareInfo, error) {
	order, err := findOrder(ctx, s.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Shareable() {
		return nil, apperr.Forbidden("This song is not yet available for sharing").WithCode("not_available")
	}

	info := &dto.ShareInfo{
		OrderID:       order.ID,
		RecipientName: order.RecipientName,
		Style:         order.SelectedStyle,
		CreatedAt:     order.CreatedAt,
	}

	songs, err := s.songRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	if song := pickSong(songs); song != nil {
		info.AudioURL = song.AudioURL
	}

	clip, err := s.videoRepo.FindByOrder(ctx, order.ID)
	switch {
	case err == nil:
		if clip.Status == model.VideoCompleted {
			info.VideoURL = clip.VideoURL
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find video: %w", err)
	}

	err = s.shareEventRepo.Create(ctx, &model.ShareEvent{
		OrderID:   order.ID,
		IP:        viewer.IP,
		UserAgent: viewer.UserAgent,
		HasAudio:  info.AudioURL != "",
		HasVideo:  info.VideoURL != "",
	})
	if err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("record share event")
	}

	return info, nil
}

// pickSong prefers the selected song and falls back to the first one.
func pickSong(songs []*model.SongVariation) *model.SongVariation {
	for _, song := range songs {
		if song.Selected {
			return song
		}
	}
	if len(songs) > 0 {
		return songs[0]
	}
	return nil
}
