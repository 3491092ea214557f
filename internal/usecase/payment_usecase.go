package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shop/internal/domain/model"
	"shop/internal/payment"
	repo "shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type PaymentUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	payments  repo.PaymentRepository
	providers *payment.Registry
	logger    zerolog.Logger
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	payments repo.PaymentRepository,
	providers *payment.Registry,
	logger zerolog.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:        tx,
		orders:    orders,
		payments:  payments,
		providers: providers,
		logger:    logger.With().Str("usecase", "payment").Logger(),
	}
}

type CreatePaymentInput struct {
	OrderID       int64
	PaymentMethod model.PaymentMethod
	Amount        decimal.Decimal
}

type CreatePaymentOutput struct {
	Payment  model.Payment       `json:"payment"`
	Provider payment.TradeResult `json:"provider"`
}

// CreatePayment は外部ネットワークに取引を作り、成功したときだけ
// Pending状態のPayment行を永続化する。ゲートウェイ失敗時は何も書かない。
func (u *PaymentUsecase) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentOutput, error) {
	if in.OrderID <= 0 {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	order, err := u.orders.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	provider, err := u.providers.Lookup(in.PaymentMethod)
	if err != nil {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported payment_method")
	}

	//取引参照はUUID（タイムスタンプは同時リクエストで衝突する）
	transactionID := uuid.NewString()

	//Txの外で呼ぶ。失敗ならここで中断、まだ何も書いていない。
	result, err := provider.CreateTrade(ctx, payment.TradeRequest{
		TransactionID: transactionID,
		OrderID:       order.ID,
		Amount:        in.Amount,
		Subject:       fmt.Sprintf("order #%d", order.ID),
	})
	if err != nil {
		u.logger.Warn().Err(err).Int64("order_id", order.ID).Msg("trade create failed")
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	//支払いはコールバックで確定するまでPendingのまま
	p := model.Payment{
		OrderID:       order.ID,
		PaymentMethod: in.PaymentMethod,
		TransactionID: transactionID,
		PayStatus:     model.PaymentStatusPending,
		Amount:        in.Amount,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	id, err := u.payments.Create(ctx, p)
	if err != nil {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create payment")
	}
	p.ID = id

	u.logger.Info().Int64("payment_id", id).Int64("order_id", order.ID).
		Str("transaction_id", transactionID).Msg("payment created")

	return CreatePaymentOutput{Payment: p, Provider: result}, nil
}

// Payment.pay_statusの遷移表。Pending→{Paid,Failed}→Refundedのみ。
// 報告済みと同じ状態の再通知はno-op成功として扱う（冪等性）。
func payStatusTransitionAllowed(from, to model.PaymentStatus) bool {
	switch from {
	case model.PaymentStatusPending:
		return to == model.PaymentStatusPaid || to == model.PaymentStatusFailed
	case model.PaymentStatusPaid, model.PaymentStatusFailed:
		return to == model.PaymentStatusRefunded
	default:
		return false
	}
}

// 通知がtransaction_idを持てばその試行、無ければ注文の最新の試行を対象にする。
func resolveNotifyPayment(ctx context.Context, payments repo.PaymentRepository, n payment.Notification) (model.Payment, error) {
	if n.TransactionID != "" {
		return payments.FindByTransactionID(ctx, n.TransactionID)
	}
	return payments.FindLatestByOrderID(ctx, n.OrderID)
}

// HandleNotify はプロバイダからの非同期決済通知を照合する。
// 署名が検証できなければ何も書かない。同じ通知の再送は状態を変えない。
func (u *PaymentUsecase) HandleNotify(ctx context.Context, n payment.Notification) error {
	if n.OrderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	reported := model.PaymentStatus(n.PayStatus)
	if !reported.Valid() || reported == model.PaymentStatusPending {
		return NewHTTPError(http.StatusBadRequest, "invalid pay_status")
	}

	//検証する鍵は支払い行を作ったプロバイダに紐づく
	p, err := resolveNotifyPayment(ctx, u.payments, n)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.OrderID != n.OrderID {
		return NewHTTPError(http.StatusBadRequest, "order mismatch")
	}

	provider, err := u.providers.Lookup(p.PaymentMethod)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "unsupported payment_method")
	}

	//真正性検証。失敗時は状態を一切変えない。
	if err := provider.VerifyCallback(n); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			u.logger.Warn().Int64("order_id", n.OrderID).Msg("notify signature mismatch")
			return NewHTTPError(http.StatusUnauthorized, "invalid signature")
		}
		return NewHTTPError(http.StatusInternalServerError, "verify error")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//Tx内で取り直す（検証と更新の間の並行適用を塞ぐ）
		pay, err := resolveNotifyPayment(ctx, r.Payments(), n)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じ結果の再通知は成功扱いで何もしない
		if pay.PayStatus == reported {
			return nil
		}

		if !payStatusTransitionAllowed(pay.PayStatus, reported) {
			return NewHTTPError(http.StatusConflict, "illegal pay_status transition")
		}

		now := time.Now()
		pay.PayStatus = reported
		pay.UpdatedAt = now
		if reported == model.PaymentStatusPaid && pay.PaidAt == nil {
			pay.PaidAt = &now
		}
		if err := r.Payments().Update(ctx, pay); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//親注文のpayment_statusも揃える
		o, err := r.Orders().FindByID(ctx, n.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.PaymentStatus = reported
		o.UpdatedAt = now
		if reported == model.PaymentStatusPaid && o.PaidAt == nil {
			o.PaidAt = &now
		}
		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return err
	}

	u.logger.Info().Int64("order_id", n.OrderID).Int("pay_status", n.PayStatus).Msg("notify applied")
	return nil
}

func (u *PaymentUsecase) GetPayment(ctx context.Context, id int64) (model.Payment, error) {
	if id <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.payments.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Payment{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *PaymentUsecase) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if orderID <= 0 {
		return []model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}

	items, err := u.payments.ListByOrderID(ctx, orderID)
	if err != nil {
		return []model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type PaymentListOutput struct {
	Payments   []model.Payment `json:"payments"`
	Total      int64           `json:"total"`
	TotalPages int64           `json:"total_pages"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

func (u *PaymentUsecase) ListPayments(ctx context.Context, page int, limit int) (PaymentListOutput, error) {
	if page < 1 {
		return PaymentListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return PaymentListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.payments.List(ctx, page, limit)
	if err != nil {
		return PaymentListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return PaymentListOutput{
		Payments:   items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}, nil
}
