package model

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ParentID    *int64    `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 商品とカテゴリの多対多の中間行
type ProductCategory struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64 `gorm:"not null;index:idx_product_category,unique" json:"product_id"`
	CategoryID int64 `gorm:"not null;index:idx_product_category,unique" json:"category_id"`
}
