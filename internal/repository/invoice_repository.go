package repository

import (
	"context"

	"shop/internal/domain/model"
)

type InvoiceRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Invoice, error)
	FindByID(ctx context.Context, id int64) (model.Invoice, error)
	FindDefaultByUserID(ctx context.Context, userID int64) (model.Invoice, error)
	// ClearDefaultByUserID はユーザーの既存デフォルトをすべて外す。
	ClearDefaultByUserID(ctx context.Context, userID int64) error
	Create(ctx context.Context, inv model.Invoice) (int64, error)
	Update(ctx context.Context, inv model.Invoice) error
	Delete(ctx context.Context, id int64) error
}
