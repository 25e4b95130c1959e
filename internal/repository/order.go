package repository

import (
	"context"
	"errors"
	"time"

	"birthday-song-service/internal/model"

	"gorm.io/gorm"
)

var ErrOrderNotPayable = errors.New("order is not payable")

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	Update(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) error
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, statuses []model.OrderStatus) (int64, error)
	TopStyles(ctx context.Context, limit int) ([]model.StyleCount, error)
	Recent(ctx context.Context, limit int) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Update merges fields into the order. Pass a nil tx to run outside a transaction.
func (r *orderRepoImpl) Update(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	fields["updated_at"] = time.Now()

	result := tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MarkPaid moves an unpaid order to paid. An order that is already paid,
// completed or in a terminal state is left alone and ErrOrderNotPayable is
// returned.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&order).
			Where("id = ? AND status IN ?", orderID, model.PayableStatuses()).
			Updates(map[string]interface{}{
				"status":     model.StatusPaid,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			return err
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotPayable
		}
		return nil
	})

	return &order, err
}

func (r *orderRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) CountByStatus(ctx context.Context, statuses []model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status IN ?", statuses).
		Count(&count).Error

	return count, err
}

func (r *orderRepoImpl) TopStyles(ctx context.Context, limit int) ([]model.StyleCount, error) {
	var styles []model.StyleCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("selected_style AS style, COUNT(*) AS count").
		Where("selected_style <> ?", "").
		Group("selected_style").
		Order("count DESC, style ASC").
		Limit(limit).
		Scan(&styles).Error

	if err != nil {
		return nil, err
	}

	return styles, nil
}

func (r *orderRepoImpl) Recent(ctx context.Context, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
