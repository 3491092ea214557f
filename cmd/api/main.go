package main

import (
	"strconv"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/payment"
	"shop/internal/server"
	"shop/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無ければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := config.NewLogger(cfg)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Category{},
		&model.ProductCategory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Coupon{},
		&model.CartItem{},
		&model.Review{},
		&model.Banner{},
		&model.Address{},
		&model.Invoice{},
		&model.Refund{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productCategoryRepo := infraRepo.NewProductCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartItemGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	bannerRepo := infraRepo.NewBannerGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(gormDB)
	refundRepo := infraRepo.NewRefundGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//決済ゲートウェイ
	providers := payment.NewRegistry()
	providers.Register(model.PaymentMethodWechat, payment.NewWechatProvider(payment.WechatConfig{
		GatewayURL:     cfg.WechatGatewayURL,
		AppID:          cfg.WechatAppID,
		MchID:          cfg.WechatMchID,
		CallbackSecret: cfg.WechatCallbackSecret,
		Timeout:        cfg.PaymentTimeout,
	}, logger))
	providers.Register(model.PaymentMethodAlipay, payment.NewAlipayProvider(payment.AlipayConfig{
		GatewayURL:     cfg.AlipayGatewayURL,
		AppID:          cfg.AlipayAppID,
		SellerID:       cfg.AlipaySellerID,
		CallbackSecret: cfg.AlipayCallbackSecret,
		Timeout:        cfg.PaymentTimeout,
	}, logger))

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer)
	orderUC := usecase.NewOrderUsecase(txManager, logger)
	paymentUC := usecase.NewPaymentUsecase(txManager, orderRepo, paymentRepo, providers, logger)
	productUC := usecase.NewProductUsecase(productRepo, productCategoryRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	bannerUC := usecase.NewBannerUsecase(bannerRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	invoiceUC := usecase.NewInvoiceUsecase(invoiceRepo)
	refundUC := usecase.NewRefundUsecase(txManager, refundRepo, logger)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Order:    handler.NewOrderHandler(orderUC),
		Payment:  handler.NewPaymentHandler(paymentUC),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Cart:     handler.NewCartHandler(cartUC),
		Review:   handler.NewReviewHandler(reviewUC),
		Banner:   handler.NewBannerHandler(bannerUC),
		Address:  handler.NewAddressHandler(addressUC),
		Invoice:  handler.NewInvoiceHandler(invoiceUC),
		Refund:   handler.NewRefundHandler(refundUC),
	}

	e := server.New(h, cfg.JWTSecret, logger)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info().Str("addr", addr).Msg("starting server")
	if err := server.Start(e, addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
