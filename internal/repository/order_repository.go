package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// id昇順の全件ページング（1始まり）
	List(ctx context.Context, page int, limit int) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	// ステータス系カラムとタイムスタンプをまとめて上書き
	Update(ctx context.Context, order model.Order) error
}
