package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Sku           string          `gorm:"type:varchar(64)" json:"sku"`
	Brand         string          `gorm:"type:varchar(64)" json:"brand"`
	TypeName      string          `gorm:"type:varchar(64)" json:"type_name"`
	Detail        string          `gorm:"type:text" json:"detail"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null;default:0" json:"stock_quantity"`
	Status        bool            `gorm:"not null;default:true" json:"status"`
	IsNew         bool            `gorm:"not null;default:false" json:"is_new"`
	ImageURL      string          `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
