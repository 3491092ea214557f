package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	ValidFrom  time.Time       `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time       `gorm:"not null" json:"valid_until"`
	UsageCount int64           `gorm:"not null;default:0" json:"usage_count"`
	TotalCount int64           `gorm:"not null" json:"total_count"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
