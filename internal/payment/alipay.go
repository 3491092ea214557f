package payment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type AlipayConfig struct {
	GatewayURL     string
	AppID          string
	SellerID       string
	CallbackSecret string
	Timeout        time.Duration
}

// カード/銀行系ネットワーク。取引作成はフォームPOST、応答はJSONで
// リダイレクト用ペイロードが返る。
type AlipayProvider struct {
	cfg      AlipayConfig
	client   *http.Client
	verifier *hmacVerifier
	logger   zerolog.Logger
}

func NewAlipayProvider(cfg AlipayConfig, logger zerolog.Logger) *AlipayProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AlipayProvider{
		cfg:      cfg,
		client:   &http.Client{Timeout: timeout},
		verifier: &hmacVerifier{secret: cfg.CallbackSecret},
		logger:   logger.With().Str("provider", "alipay").Logger(),
	}
}

func (p *AlipayProvider) Name() string { return "alipay" }

func (p *AlipayProvider) CreateTrade(ctx context.Context, req TradeRequest) (TradeResult, error) {
	form := url.Values{}
	form.Set("app_id", p.cfg.AppID)
	form.Set("seller_id", p.cfg.SellerID)
	form.Set("out_trade_no", req.TransactionID)
	form.Set("total_amount", req.Amount.StringFixed(2))
	form.Set("subject", req.Subject)
	form.Set("timestamp", time.Now().UTC().Format(time.RFC3339))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.GatewayURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		// タイムアウトは結果不明。成功扱いにしない。
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TradeResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warn().Int("status", resp.StatusCode).Str("out_trade_no", req.TransactionID).
			Msg("trade create rejected")
		return TradeResult{}, fmt.Errorf("%w: gateway status %d", ErrProvider, resp.StatusCode)
	}

	p.logger.Info().Str("out_trade_no", req.TransactionID).Msg("trade created")

	// 応答はそのまま通す
	return TradeResult{Provider: p.Name(), Payload: body}, nil
}

func (p *AlipayProvider) VerifyCallback(n Notification) error {
	return p.verifier.verify(n)
}
