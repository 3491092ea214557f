package handler

import (
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	TotalPrice      decimal.Decimal  `json:"total_price"`
	CouponCode      *string          `json:"coupon_code,omitempty"`
	GiftCardCode    *string          `json:"gift_card_code,omitempty"`
	ShippingAddress string           `json:"shipping_address"`
	BillingAddress  string           `json:"billing_address"`
	PaymentMethod   int              `json:"payment_method"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	ShippingCompany string           `json:"shipping_company"`
	TrackingNumber  string           `json:"tracking_number"`
	Notes           *string          `json:"notes,omitempty"`
	ProductID       int64            `json:"product_id"`
	Quantity        int64            `json:"quantity"`
	Price           decimal.Decimal  `json:"price"`
}

type OrderStatusRequest struct {
	OrderStatus int `json:"order_status"`
}

type PaymentStatusRequest struct {
	PaymentStatus int `json:"payment_status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/order")
	g.Use(auth)

	g.POST("/create", h.create)
	g.POST("/update_status/:id", h.updateStatus)
	g.POST("/set_payment/:id", h.setPaymentStatus)
	g.POST("/cancel_order/:id", h.cancel)
	g.GET("/list", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	orderID, err := h.uc.CreateOrder(c.Request().Context(), userID, usecase.CreateOrderInput{
		TotalPrice:      req.TotalPrice,
		CouponCode:      req.CouponCode,
		GiftCardCode:    req.GiftCardCode,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		Discount:        req.Discount,
		ShippingCompany: req.ShippingCompany,
		TrackingNumber:  req.TrackingNumber,
		Notes:           req.Notes,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		Price:           req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "Order created successfully", map[string]any{"order_id": orderID})
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SetOrderStatus(c.Request().Context(), id, model.OrderStatus(req.OrderStatus))
	if err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "Order updated", out)
}

func (h *OrderHandler) setPaymentStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SetPaymentStatus(c.Request().Context(), id, model.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "Order updated", out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "Order canceled", out)
}

func (h *OrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	limit := 5
	if v := c.QueryParam("page_size"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page_size")
		}
		limit = l
	}

	out, err := h.uc.ListOrders(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", out)
}
