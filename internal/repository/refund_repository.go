package repository

import (
	"context"

	"shop/internal/domain/model"
)

type RefundRepository interface {
	ListByPaymentID(ctx context.Context, paymentID int64) ([]model.Refund, error)
	FindByID(ctx context.Context, id int64) (model.Refund, error)
	Create(ctx context.Context, r model.Refund) (int64, error)
	Update(ctx context.Context, r model.Refund) error
}
