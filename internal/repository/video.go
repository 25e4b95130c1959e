package repository

import (
	"context"
	"time"

	"birthday-song-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Upsert(ctx context.Context, clip *model.VideoClip) error
	FindByOrder(ctx context.Context, orderID string) (*model.VideoClip, error)
	MarkCompleted(ctx context.Context, clipID, videoURL string) error
}

type videoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepoImpl{
		db: db,
	}
}

// Upsert starts a clip for the order, replacing any earlier render of it.
// Callers pass the existing clip id on a restart so the row id stays stable.
func (r *videoRepoImpl) Upsert(ctx context.Context, clip *model.VideoClip) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"song_id":    clip.SongID,
			"status":     clip.Status,
			"video_url":  clip.VideoURL,
			"ready_at":   clip.ReadyAt,
			"updated_at": time.Now(),
		}),
	}).Create(clip).Error
}

func (r *videoRepoImpl) FindByOrder(ctx context.Context, orderID string) (*model.VideoClip, error) {
	var clip model.VideoClip
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&clip).Error

	if err != nil {
		return nil, err
	}

	return &clip, nil
}

// MarkCompleted only moves clips that are still rendering.
func (r *videoRepoImpl) MarkCompleted(ctx context.Context, clipID, videoURL string) error {
	return r.db.WithContext(ctx).
		Model(&model.VideoClip{}).
		Where("id = ? AND status IN ?", clipID, []model.VideoStatus{model.VideoPending, model.VideoProcessing}).
		Updates(map[string]interface{}{
			"status":     model.VideoCompleted,
			"video_url":  videoURL,
			"updated_at": time.Now(),
		}).Error
}
