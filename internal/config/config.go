package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	JWTSecret string // JWT署名シークレット

	LogLevel  string // debug/info/warn/error
	LogFormat string // json/console

	// 決済ゲートウェイ
	AlipayGatewayURL     string
	AlipayAppID          string
	AlipaySellerID       string
	AlipayCallbackSecret string

	WechatGatewayURL     string
	WechatAppID          string
	WechatMchID          string
	WechatCallbackSecret string

	PaymentTimeout time.Duration // ゲートウェイHTTPタイムアウト
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		AlipayGatewayURL:     os.Getenv("ALIPAY_GATEWAY_URL"),
		AlipayAppID:          os.Getenv("ALIPAY_APP_ID"),
		AlipaySellerID:       os.Getenv("ALIPAY_SELLER_ID"),
		AlipayCallbackSecret: os.Getenv("ALIPAY_CALLBACK_SECRET"),

		WechatGatewayURL:     os.Getenv("WECHAT_GATEWAY_URL"),
		WechatAppID:          os.Getenv("WECHAT_APP_ID"),
		WechatMchID:          os.Getenv("WECHAT_MCH_ID"),
		WechatCallbackSecret: os.Getenv("WECHAT_CALLBACK_SECRET"),

		PaymentTimeout: 10 * time.Second,
	}

	if v := os.Getenv("PAYMENT_TIMEOUT_SECONDS"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PAYMENT_TIMEOUT_SECONDS must be number: %w", err)
		}
		cfg.PaymentTimeout = time.Duration(sec) * time.Second
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AlipayGatewayURL == "" {
		return Config{}, fmt.Errorf("ALIPAY_GATEWAY_URL is required")
	}
	if cfg.AlipayCallbackSecret == "" {
		return Config{}, fmt.Errorf("ALIPAY_CALLBACK_SECRET is required")
	}
	if cfg.WechatGatewayURL == "" {
		return Config{}, fmt.Errorf("WECHAT_GATEWAY_URL is required")
	}
	if cfg.WechatCallbackSecret == "" {
		return Config{}, fmt.Errorf("WECHAT_CALLBACK_SECRET is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
