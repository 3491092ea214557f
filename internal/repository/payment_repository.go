package repository

import (
	"context"

	"shop/internal/domain/model"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, id int64) (model.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, error)

	// 同じ注文の最新の試行（notifyの照合に使う）
	FindLatestByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error)

	List(ctx context.Context, page int, limit int) ([]model.Payment, int64, error)

	Create(ctx context.Context, p model.Payment) (int64, error)
	Update(ctx context.Context, p model.Payment) error
}
