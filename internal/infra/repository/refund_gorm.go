package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type RefundGormRepository struct {
	db *gorm.DB
}

func NewRefundGormRepository(db *gorm.DB) *RefundGormRepository {
	return &RefundGormRepository{db: db}
}

func (r *RefundGormRepository) ListByPaymentID(ctx context.Context, paymentID int64) ([]model.Refund, error) {
	var items []model.Refund
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).Order("id asc").Find(&items).Error; err != nil {
		return []model.Refund{}, err
	}
	return items, nil
}

func (r *RefundGormRepository) FindByID(ctx context.Context, id int64) (model.Refund, error) {
	var ref model.Refund
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Refund{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Refund{}, err
	}
	return ref, nil
}

func (r *RefundGormRepository) Create(ctx context.Context, ref model.Refund) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&ref).Error; err != nil {
		return 0, err
	}
	return ref.ID, nil
}

func (r *RefundGormRepository) Update(ctx context.Context, ref model.Refund) error {
	res := r.db.WithContext(ctx).Save(&ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
