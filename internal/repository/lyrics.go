package repository

import (
	"context"

	"birthday-song-service/internal/model"

	"gorm.io/gorm"
)

type LyricsRepository interface {
	CreateMany(ctx context.Context, variations []*model.LyricsVariation) error
	ListByOrder(ctx context.Context, orderID string) ([]*model.LyricsVariation, error)
	FindByID(ctx context.Context, orderID, lyricsID string) (*model.LyricsVariation, error)
	FindSelected(ctx context.Context, orderID string) (*model.LyricsVariation, error)
	Select(ctx context.Context, tx *gorm.DB, orderID, lyricsID string) error
	UpdateEditedContent(ctx context.Context, orderID, lyricsID, content string) error
}

type lyricsRepoImpl struct {
	db *gorm.DB
}

func NewLyricsRepository(db *gorm.DB) LyricsRepository {
	return &lyricsRepoImpl{
		db: db,
	}
}

func (r *lyricsRepoImpl) CreateMany(ctx context.Context, variations []*model.LyricsVariation) error {
	return r.db.WithContext(ctx).Create(&variations).Error
}

func (r *lyricsRepoImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.LyricsVariation, error) {
	var variations []*model.LyricsVariation
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, position ASC").
		Find(&variations).Error

	if err != nil {
		return nil, err
	}

	return variations, nil
}

func (r *lyricsRepoImpl) FindByID(ctx context.Context, orderID, lyricsID string) (*model.LyricsVariation, error) {
	var variation model.LyricsVariation
	err := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", lyricsID, orderID).
		First(&variation).Error

	if err != nil {
		return nil, err
	}

	return &variation, nil
}

func (r *lyricsRepoImpl) FindSelected(ctx context.Context, orderID string) (*model.LyricsVariation, error) {
	var variation model.LyricsVariation
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND selected = ?", orderID, true).
		First(&variation).Error

	if err != nil {
		return nil, err
	}

	return &variation, nil
}

func (r *lyricsRepoImpl) Select(ctx context.Context, tx *gorm.DB, orderID, lyricsID string) error {
	return selectExclusive(ctx, tx, &model.LyricsVariation{}, orderID, lyricsID)
}

func (r *lyricsRepoImpl) UpdateEditedContent(ctx context.Context, orderID, lyricsID, content string) error {
	result := r.db.WithContext(ctx).
		Model(&model.LyricsVariation{}).
		Where("id = ? AND order_id = ?", lyricsID, orderID).
		Update("edited_content", content)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
