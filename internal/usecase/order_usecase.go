package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	logger zerolog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, logger zerolog.Logger) *OrderUsecase {
	return &OrderUsecase{
		tx:     tx,
		logger: logger.With().Str("usecase", "order").Logger(),
	}
}

type CreateOrderInput struct {
	TotalPrice      decimal.Decimal
	CouponCode      *string
	GiftCardCode    *string
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   model.PaymentMethod
	Discount        *decimal.Decimal
	ShippingCompany string
	TrackingNumber  string
	Notes           *string

	// 1注文につき明細は1行
	ProductID int64
	Quantity  int64
	Price     decimal.Decimal
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"user_id"`
	TotalPrice      decimal.Decimal      `json:"total_price"`
	Status          model.OrderStatus    `json:"status"`
	ShippingStatus  model.ShippingStatus `json:"shipping_status"`
	PaymentStatus   model.PaymentStatus  `json:"payment_status"`
	PaymentMethod   model.PaymentMethod  `json:"payment_method"`
	ShippingAddress string               `json:"shipping_address"`
	BillingAddress  string               `json:"billing_address"`
	CreatedAt       time.Time            `json:"created_at"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	ShippedAt       *time.Time           `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time           `json:"delivered_at,omitempty"`
	CanceledAt      *time.Time           `json:"canceled_at,omitempty"`
	RefundedAt      *time.Time           `json:"refunded_at,omitempty"`
	Items           []OrderItemOutput    `json:"items"`
}

// CreateOrder は注文1件と明細1行を同一トランザクションで作る。
// 在庫減算も同じトランザクション内で行い、足りなければ全体を失敗させる。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}
	if strings.TrimSpace(in.BillingAddress) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "billing_address required")
	}
	if !in.PaymentMethod.Valid() {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	if in.ProductID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}
	if in.Price.IsNegative() || in.TotalPrice.IsNegative() {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品の存在と公開状態を確認
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.Status {
			return NewHTTPError(http.StatusBadRequest, "invalid product")
		}

		//在庫減算（足りないなら false）
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusBadRequest, "out of stock")
		}

		//クーポンは有効期間内かつ残回数があるときだけ消費する
		if in.CouponCode != nil && *in.CouponCode != "" {
			coupon, err := r.Coupons().FindByCode(ctx, *in.CouponCode)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid coupon")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			now := time.Now()
			if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
				return NewHTTPError(http.StatusBadRequest, "coupon expired")
			}

			used, err := r.Coupons().IncrementUsageIfAvailable(ctx, *in.CouponCode)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !used {
				return NewHTTPError(http.StatusBadRequest, "invalid coupon")
			}
		}

		now := time.Now()
		order := model.Order{
			UserID:          userID,
			TotalPrice:      in.TotalPrice,
			Status:          model.OrderStatusPending,
			ShippingStatus:  model.ShippingStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			PaymentMethod:   in.PaymentMethod,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			Discount:        in.Discount,
			CouponCode:      in.CouponCode,
			GiftCardCode:    in.GiftCardCode,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.ShippingCompany != "" {
			order.ShippingCompany = &in.ShippingCompany
		}
		if in.TrackingNumber != "" {
			order.TrackingNumber = &in.TrackingNumber
		}

		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "failed to create order")
		}

		//購入時点の価格スナップショット
		_, err = r.OrderItems().Create(ctx, model.OrderItem{
			OrderID:   id,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     in.Price,
			CreatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "failed to create order item")
		}

		orderID = id
		return nil
	})

	if err != nil {
		return 0, err
	}

	u.logger.Info().Int64("order_id", orderID).Int64("user_id", userID).Msg("order created")
	return orderID, nil
}

// 注文ライフサイクルの遷移表。同一ステータスはno-op成功、
// Canceledはどの状態からでも到達できる。
func orderTransitionAllowed(from, to model.OrderStatus) bool {
	if from == to {
		return true
	}
	if to == model.OrderStatusCanceled {
		return true
	}
	switch from {
	case model.OrderStatusPending:
		return to == model.OrderStatusPaid
	case model.OrderStatusPaid:
		return to == model.OrderStatusShipped || to == model.OrderStatusRefunded
	case model.OrderStatusShipped:
		return to == model.OrderStatusCompleted || to == model.OrderStatusRefunded
	default:
		return false
	}
}

func (u *OrderUsecase) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !status.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じステータスの再適用は何も変えずに成功
		if o.Status == status {
			out = toOrderOutput(o, items)
			return nil
		}

		if !orderTransitionAllowed(o.Status, status) {
			return NewHTTPError(http.StatusBadRequest, "illegal status transition")
		}

		//shipping_statusはライフサイクルに追従させる
		now := time.Now()
		o.Status = status
		o.UpdatedAt = now
		switch status {
		case model.OrderStatusPaid:
			o.PaidAt = &now
		case model.OrderStatusShipped:
			o.ShippedAt = &now
			o.ShippingStatus = model.ShippingStatusShipped
		case model.OrderStatusCompleted:
			o.DeliveredAt = &now
			o.ShippingStatus = model.ShippingStatusDelivered
		case model.OrderStatusCanceled:
			o.CanceledAt = &now
			o.ShippingStatus = model.ShippingStatusCancelled
		case model.OrderStatusRefunded:
			o.RefundedAt = &now
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder は set_order_status(Canceled) の別名。
func (u *OrderUsecase) CancelOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	return u.SetOrderStatus(ctx, orderID, model.OrderStatusCanceled)
}

// SetPaymentStatus は注文のpayment_statusカラムを上書きする。
// paid_atはPaidになったときだけ打つ。
func (u *OrderUsecase) SetPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !status.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		o.PaymentStatus = status
		o.UpdatedAt = now
		if status == model.PaymentStatusPaid && o.PaidAt == nil {
			o.PaidAt = &now
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type OrderListOutput struct {
	Orders     []OrderOutput `json:"orders"`
	Total      int64         `json:"total"`
	TotalPages int64         `json:"total_pages"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// ListOrders はid昇順・1始まりページング。total_pages = ceil(total/limit)。
func (u *OrderUsecase) ListOrders(ctx context.Context, page int, limit int) (OrderListOutput, error) {
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		totalPages := total / int64(limit)
		if total%int64(limit) != 0 {
			totalPages++
		}

		out = OrderListOutput{
			Orders:     outs,
			Total:      total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalPrice:      o.TotalPrice,
		Status:          o.Status,
		ShippingStatus:  o.ShippingStatus,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		CreatedAt:       o.CreatedAt,
		PaidAt:          o.PaidAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CanceledAt:      o.CanceledAt,
		RefundedAt:      o.RefundedAt,
		Items:           outItems,
	}
}
