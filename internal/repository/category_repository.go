package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (int64, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
}

// 商品とカテゴリの紐付け
type ProductCategoryRepository interface {
	Assign(ctx context.Context, productID int64, categoryID int64) error
	Unassign(ctx context.Context, productID int64, categoryID int64) error
	ListCategoriesByProduct(ctx context.Context, productID int64) ([]model.Category, error)
}
