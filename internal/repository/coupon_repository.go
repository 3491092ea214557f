package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (model.Coupon, error)

	// 残回数があるときだけusage_countを進める（上限到達ならfalse）
	IncrementUsageIfAvailable(ctx context.Context, code string) (bool, error)
}
