package repository

import (
	"context"

	"shop/internal/domain/model"
)

type BannerRepository interface {
	// is_activeなものをposition昇順で
	ListActive(ctx context.Context) ([]model.Banner, error)
	Create(ctx context.Context, b model.Banner) (int64, error)
	Update(ctx context.Context, b model.Banner) error
	Delete(ctx context.Context, id int64) error
}
