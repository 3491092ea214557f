package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文のライフサイクル（支払い・配送とは独立した状態機械）
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusPaid      OrderStatus = 1
	OrderStatusShipped   OrderStatus = 2
	OrderStatusCompleted OrderStatus = 3
	OrderStatusCanceled  OrderStatus = 4
	OrderStatusRefunded  OrderStatus = 5
)

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusPending && s <= OrderStatusRefunded
}

type ShippingStatus int

const (
	ShippingStatusPending   ShippingStatus = 0
	ShippingStatusShipped   ShippingStatus = 1
	ShippingStatusDelivered ShippingStatus = 2
	ShippingStatusCancelled ShippingStatus = 3
)

func (s ShippingStatus) Valid() bool {
	return s >= ShippingStatusPending && s <= ShippingStatusCancelled
}

type PaymentStatus int

const (
	PaymentStatusPending  PaymentStatus = 0
	PaymentStatusPaid     PaymentStatus = 1
	PaymentStatusFailed   PaymentStatus = 2
	PaymentStatusRefunded PaymentStatus = 3
)

func (s PaymentStatus) Valid() bool {
	return s >= PaymentStatusPending && s <= PaymentStatusRefunded
}

type PaymentMethod int

const (
	PaymentMethodWechat       PaymentMethod = 0
	PaymentMethodAlipay       PaymentMethod = 1
	PaymentMethodCreditCard   PaymentMethod = 2
	PaymentMethodPaypal       PaymentMethod = 3
	PaymentMethodBankTransfer PaymentMethod = 4
)

func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodWechat && m <= PaymentMethodBankTransfer
}

type Order struct {
	ID              int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64            `gorm:"not null;index" json:"user_id"`
	TotalPrice      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status          OrderStatus      `gorm:"not null;index;default:0" json:"status"`
	ShippingStatus  ShippingStatus   `gorm:"not null;default:0" json:"shipping_status"`
	PaymentStatus   PaymentStatus    `gorm:"not null;default:0" json:"payment_status"`
	PaymentMethod   PaymentMethod    `gorm:"not null" json:"payment_method"`
	ShippingAddress string           `gorm:"type:text;not null" json:"shipping_address"`
	BillingAddress  string           `gorm:"type:text;not null" json:"billing_address"`
	Discount        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount,omitempty"`
	CouponCode      *string          `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`
	GiftCardCode    *string          `gorm:"type:varchar(64)" json:"gift_card_code,omitempty"`
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	ShippingCompany *string          `gorm:"type:varchar(64)" json:"shipping_company,omitempty"`
	TrackingNumber  *string          `gorm:"type:varchar(64)" json:"tracking_number,omitempty"`
	CreatedAt       time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	ShippedAt       *time.Time       `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time       `json:"delivered_at,omitempty"`
	CanceledAt      *time.Time       `json:"canceled_at,omitempty"`
	RefundedAt      *time.Time       `json:"refunded_at,omitempty"`
}
