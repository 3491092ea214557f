package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 1つの注文に対する決済の試行。注文は複数回の試行を持てる（order_idは非ユニーク）。
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;index" json:"order_id"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	TransactionID string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"transaction_id"`
	PayStatus     PaymentStatus   `gorm:"not null;default:0" json:"pay_status"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
