package repository

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type BannerGormRepository struct {
	db *gorm.DB
}

func NewBannerGormRepository(db *gorm.DB) *BannerGormRepository {
	return &BannerGormRepository{db: db}
}

func (r *BannerGormRepository) ListActive(ctx context.Context) ([]model.Banner, error) {
	var items []model.Banner
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("position asc, id asc").Find(&items).Error; err != nil {
		return []model.Banner{}, err
	}
	return items, nil
}

func (r *BannerGormRepository) Create(ctx context.Context, b model.Banner) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *BannerGormRepository) Update(ctx context.Context, b model.Banner) error {
	res := r.db.WithContext(ctx).Save(&b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BannerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Banner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
