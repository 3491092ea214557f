package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shop/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	// コールバックの署名不一致
	ErrInvalidSignature = errors.New("invalid signature")
	// ゲートウェイ呼び出し失敗
	ErrProvider = errors.New("provider error")
	// 未対応の支払い方法
	ErrUnknownMethod = errors.New("unknown payment method")
)

// ゲートウェイへの取引作成リクエスト。フィールドの詳細レイアウトは各社依存なので
// アダプタ側で組み立てる。
type TradeRequest struct {
	TransactionID string
	OrderID       int64
	Amount        decimal.Decimal
	Subject       string
}

// プロバイダの応答はそのまま呼び出し元へ通す（リダイレクトURL・QRなど）。
type TradeResult struct {
	Provider string          `json:"provider"`
	Payload  json.RawMessage `json:"payload"`
}

// プロバイダからの非同期通知。transaction_idは任意で、
// あれば対象の試行をピンポイントに特定できる。
type Notification struct {
	OrderID       int64  `json:"order_id"`
	PayStatus     int    `json:"pay_status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Timestamp     string `json:"timestamp"`
	Nonce         string `json:"nonce"`
	Signature     string `json:"signature"`
}

// 外部決済ネットワーク1社ぶんの能力。
type Provider interface {
	Name() string
	CreateTrade(ctx context.Context, req TradeRequest) (TradeResult, error)

	// 通知の真正性検証。失敗したら状態を一切変えないこと。
	VerifyCallback(n Notification) error
}

// payment_methodからプロバイダを引く。
type Registry struct {
	providers map[model.PaymentMethod]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: map[model.PaymentMethod]Provider{}}
}

func (r *Registry) Register(method model.PaymentMethod, p Provider) {
	r.providers[method] = p
}

func (r *Registry) Lookup(method model.PaymentMethod) (Provider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
	}
	return p, nil
}
