package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（足りなければfalse）。注文確定と同一トランザクションで呼ぶ。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
