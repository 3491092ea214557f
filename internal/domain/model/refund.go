package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RefundStatus int

const (
	RefundStatusRequested RefundStatus = 0
	RefundStatusCompleted RefundStatus = 1
	RefundStatusRejected  RefundStatus = 2
)

func (s RefundStatus) Valid() bool {
	return s >= RefundStatusRequested && s <= RefundStatusRejected
}

// 決済1件に対する返金。payment_id単位で複数回（部分返金）持てる。
type Refund struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID   int64           `gorm:"not null;index" json:"payment_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      RefundStatus    `gorm:"not null;default:0" json:"status"`
	Reason      *string         `gorm:"type:text" json:"reason,omitempty"`
	RequestedAt time.Time       `gorm:"not null" json:"requested_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
