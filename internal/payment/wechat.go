package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type WechatConfig struct {
	GatewayURL     string
	AppID          string
	MchID          string
	CallbackSecret string
	Timeout        time.Duration
}

// ウォレット系ネットワーク。取引作成はJSON POST、応答にQR/prepayの
// ペイロードが返る。
type WechatProvider struct {
	cfg      WechatConfig
	client   *http.Client
	verifier *hmacVerifier
	logger   zerolog.Logger
}

func NewWechatProvider(cfg WechatConfig, logger zerolog.Logger) *WechatProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WechatProvider{
		cfg:      cfg,
		client:   &http.Client{Timeout: timeout},
		verifier: &hmacVerifier{secret: cfg.CallbackSecret},
		logger:   logger.With().Str("provider", "wechat").Logger(),
	}
}

func (p *WechatProvider) Name() string { return "wechat" }

func (p *WechatProvider) CreateTrade(ctx context.Context, req TradeRequest) (TradeResult, error) {
	// 金額は最小通貨単位（分）で送る
	payload := map[string]any{
		"appid":        p.cfg.AppID,
		"mchid":        p.cfg.MchID,
		"out_trade_no": req.TransactionID,
		"description":  req.Subject,
		"amount": map[string]any{
			"total":    req.Amount.Shift(2).IntPart(),
			"currency": "CNY",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.GatewayURL,
		bytes.NewReader(body))
	if err != nil {
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		// タイムアウトは結果不明。成功扱いにしない。
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warn().Int("status", resp.StatusCode).Str("out_trade_no", req.TransactionID).
			Msg("trade create rejected")
		return TradeResult{}, fmt.Errorf("%w: gateway status %d", ErrProvider, resp.StatusCode)
	}

	p.logger.Info().Str("out_trade_no", req.TransactionID).Msg("trade created")

	return TradeResult{Provider: p.Name(), Payload: respBody}, nil
}

func (p *WechatProvider) VerifyCallback(n Notification) error {
	return p.verifier.verify(n)
}
