package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type RefundUsecase struct {
	tx      repo.TransactionManager
	refunds repo.RefundRepository
	logger  zerolog.Logger
}

func NewRefundUsecase(tx repo.TransactionManager, refunds repo.RefundRepository, logger zerolog.Logger) *RefundUsecase {
	return &RefundUsecase{
		tx:      tx,
		refunds: refunds,
		logger:  logger.With().Str("usecase", "refund").Logger(),
	}
}

type RequestRefundInput struct {
	PaymentID int64
	Amount    decimal.Decimal
	Reason    *string
}

// RequestRefund はPaid状態の決済に対してRequested状態の返金行を起こす。
// 金額は決済額を超えられない。
func (u *RefundUsecase) RequestRefund(ctx context.Context, in RequestRefundInput) (int64, error) {
	if in.PaymentID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid payment_id")
	}
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return 0, NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	var refundID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, in.PaymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//返せるのは実際に支払われた決済だけ
		if p.PayStatus != model.PaymentStatusPaid {
			return NewHTTPError(http.StatusConflict, "payment is not paid")
		}
		if in.Amount.GreaterThan(p.Amount) {
			return NewHTTPError(http.StatusBadRequest, "amount exceeds payment")
		}

		now := time.Now()
		id, err := r.Refunds().Create(ctx, model.Refund{
			PaymentID:   in.PaymentID,
			Amount:      in.Amount,
			Status:      model.RefundStatusRequested,
			Reason:      in.Reason,
			RequestedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "failed to create refund")
		}

		refundID = id
		return nil
	})

	if err != nil {
		return 0, err
	}

	u.logger.Info().Int64("refund_id", refundID).Int64("payment_id", in.PaymentID).Msg("refund requested")
	return refundID, nil
}

// ProcessRefund はRequestedの返金をCompletedかRejectedへ倒す。
// Completedになったとき決済と親注文のpay_statusをRefundedへ揃え、
// processed_at / refunded_atを打つ。同じ結果の再適用はno-op成功。
func (u *RefundUsecase) ProcessRefund(ctx context.Context, refundID int64, status model.RefundStatus) (model.Refund, error) {
	if refundID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if status != model.RefundStatusCompleted && status != model.RefundStatusRejected {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.Refund

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ref, err := r.Refunds().FindByID(ctx, refundID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if ref.Status == status {
			out = ref
			return nil
		}
		if ref.Status != model.RefundStatusRequested {
			return NewHTTPError(http.StatusConflict, "refund already processed")
		}

		now := time.Now()
		ref.Status = status
		ref.ProcessedAt = &now
		ref.UpdatedAt = now
		if err := r.Refunds().Update(ctx, ref); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if status == model.RefundStatusCompleted {
			p, err := r.Payments().FindByID(ctx, ref.PaymentID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.PayStatus != model.PaymentStatusRefunded {
				p.PayStatus = model.PaymentStatusRefunded
				p.UpdatedAt = now
				if err := r.Payments().Update(ctx, p); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

			o, err := r.Orders().FindByID(ctx, p.OrderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.PaymentStatus = model.PaymentStatusRefunded
			o.UpdatedAt = now
			if o.RefundedAt == nil {
				o.RefundedAt = &now
			}
			if err := r.Orders().Update(ctx, o); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = ref
		return nil
	})

	if err != nil {
		return model.Refund{}, err
	}

	u.logger.Info().Int64("refund_id", refundID).Int("status", int(status)).Msg("refund processed")
	return out, nil
}

func (u *RefundUsecase) ListRefundsByPayment(ctx context.Context, paymentID int64) ([]model.Refund, error) {
	if paymentID <= 0 {
		return []model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid payment_id")
	}

	items, err := u.refunds.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return []model.Refund{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *RefundUsecase) GetRefund(ctx context.Context, id int64) (model.Refund, error) {
	if id <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ref, err := u.refunds.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Refund{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Refund{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ref, nil
}
