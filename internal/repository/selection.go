package repository

import (
	"context"

	"gorm.io/gorm"
)

// selectExclusive flags row id as the selected item of the order and clears
// the flag on every sibling. Callers run it inside a transaction so readers
// never see two selected rows.
func selectExclusive(ctx context.Context, tx *gorm.DB, table interface{}, orderID, id string) error {
	var count int64
	err := tx.WithContext(ctx).Model(table).
		Where("id = ? AND order_id = ?", id, orderID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	err = tx.WithContext(ctx).Model(table).
		Where("order_id = ? AND id <> ?", orderID, id).
		Update("selected", false).Error
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).Model(table).
		Where("id = ?", id).
		Update("selected", true).Error
}
