package repository

import (
	"context"

	"birthday-song-service/internal/model"

	"gorm.io/gorm"
)

type SongRepository interface {
	CreateMany(ctx context.Context, variations []*model.SongVariation) error
	ListByOrder(ctx context.Context, orderID string) ([]*model.SongVariation, error)
	FindSelected(ctx context.Context, orderID string) (*model.SongVariation, error)
	Select(ctx context.Context, tx *gorm.DB, orderID, songID string) error
}

type songRepoImpl struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepoImpl{
		db: db,
	}
}

func (r *songRepoImpl) CreateMany(ctx context.Context, variations []*model.SongVariation) error {
	return r.db.WithContext(ctx).Create(&variations).Error
}

// ListByOrder returns the songs of an order oldest first, so the first entry
// is the default pick when nothing is selected.
func (r *songRepoImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.SongVariation, error) {
	var variations []*model.SongVariation
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, position ASC").
		Find(&variations).Error

	if err != nil {
		return nil, err
	}

	return variations, nil
}

func (r *songRepoImpl) FindSelected(ctx context.Context, orderID string) (*model.SongVariation, error) {
	var variation model.SongVariation
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND selected = ?", orderID, true).
		First(&variation).Error

	if err != nil {
		return nil, err
	}

	return &variation, nil
}

func (r *songRepoImpl) Select(ctx context.Context, tx *gorm.DB, orderID, songID string) error {
	return selectExclusive(ctx, tx, &model.SongVariation{}, orderID, songID)
}
