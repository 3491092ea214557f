package model

import "time"

// 発票（領収書）の種別
type InvoiceType int

const (
	InvoiceTypePersonal InvoiceType = 0
	InvoiceTypeCompany  InvoiceType = 1
)

func (t InvoiceType) Valid() bool {
	return t == InvoiceTypePersonal || t == InvoiceTypeCompany
}

// ユーザーごとの発票ヘッダ情報。is_defaultは同一ユーザー内で高々1つ。
type Invoice struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Type      InvoiceType `gorm:"not null;default:0" json:"type"`
	Title     string      `gorm:"type:varchar(128);not null" json:"title"`
	TaxNumber *string     `gorm:"type:varchar(64)" json:"tax_number,omitempty"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	Email     *string     `gorm:"type:varchar(128)" json:"email,omitempty"`
	Phone     *string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	IsDefault bool        `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
