package server

import (
	"shop/internal/handler"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlersはルーティングに必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Refund   *handler.RefundHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Review   *handler.ReviewHandler
	Banner   *handler.BannerHandler
	Address  *handler.AddressHandler
	Invoice  *handler.InvoiceHandler
}

// Newはechoを組み立ててルートを登録する
func New(h Handlers, jwtSecret string, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(logger))

	auth := middleware.AuthJWT(jwtSecret)

	h.Auth.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, auth)
	h.Payment.RegisterRoutes(e, auth)
	h.Refund.RegisterRoutes(e, auth)
	h.Product.RegisterRoutes(e, auth)
	h.Category.RegisterRoutes(e, auth)
	h.Cart.RegisterRoutes(e, auth)
	h.Review.RegisterRoutes(e, auth)
	h.Banner.RegisterRoutes(e, auth)
	h.Address.RegisterRoutes(e, auth)
	h.Invoice.RegisterRoutes(e, auth)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
