package repository

import (
	"context"

	"shop/internal/domain/model"
)

type AddressRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, id int64) (model.Address, error)
	Create(ctx context.Context, a model.Address) (int64, error)
	Update(ctx context.Context, a model.Address) error
	Delete(ctx context.Context, id int64) error
}
