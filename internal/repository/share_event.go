package repository

import (
	"context"

	"birthday-song-service/internal/model"

	"gorm.io/gorm"
)

type ShareEventRepository interface {
	Create(ctx context.Context, event *model.ShareEvent) error
	CountByOrder(ctx context.Context, orderID string) (int64, error)
}

type shareEventRepoImpl struct {
	db *gorm.DB
}

func NewShareEventRepository(db *gorm.DB) ShareEventRepository {
	return &shareEventRepoImpl{
		db: db,
	}
}

func (r *shareEventRepoImpl) Create(ctx context.Context, event *model.ShareEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *shareEventRepoImpl) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ShareEvent{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count, err
}
