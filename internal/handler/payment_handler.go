package handler

import (
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/payment"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type PaymentCreateRequest struct {
	OrderID       int64           `json:"order_id"`
	PaymentMethod int             `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	//notifyは外部プロバイダが叩くので認証を掛けない（署名で検証する）
	e.POST("/payment/notify", h.notify)

	g := e.Group("/payment")
	g.Use(auth)
	g.POST("", h.create)
	g.GET("/list", h.list)
	g.GET("/order/:id", h.listByOrder)
	g.GET("/:id", h.detail)
}

func (h *PaymentHandler) create(c echo.Context) error {
	var req PaymentCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreatePayment(c.Request().Context(), usecase.CreatePaymentInput{
		OrderID:       req.OrderID,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Amount:        req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "Payment created successfully", out)
}

func (h *PaymentHandler) notify(c echo.Context) error {
	var n payment.Notification
	if err := c.Bind(&n); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.HandleNotify(c.Request().Context(), n); err != nil {
		return writeError(c, err)
	}

	return writeSuccess(c, "ok", nil)
}

func (h *PaymentHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	p, err := h.uc.GetPayment(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", p)
}

func (h *PaymentHandler) listByOrder(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	items, err := h.uc.ListPaymentsByOrder(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *PaymentHandler) list(c echo.Context) error {
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

	out, err := h.uc.ListPayments(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", out)
}
