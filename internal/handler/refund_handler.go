package handler

import (
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RefundHandler struct {
	uc *usecase.RefundUsecase
}

func NewRefundHandler(uc *usecase.RefundUsecase) *RefundHandler {
	return &RefundHandler{uc: uc}
}

type RefundCreateRequest struct {
	PaymentID int64           `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    *string         `json:"reason"`
}

type RefundProcessRequest struct {
	Status int `json:"status"`
}

func (h *RefundHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/refund", auth)
	g.POST("/create", h.create)
	g.POST("/process/:id", h.process)
	g.GET("/payment/:id", h.listByPayment)
	g.GET("/:id", h.detail)
}

func (h *RefundHandler) create(c echo.Context) error {
	var req RefundCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.RequestRefund(c.Request().Context(), usecase.RequestRefundInput{
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Refund requested successfully", map[string]any{"refund_id": id})
}

func (h *RefundHandler) process(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req RefundProcessRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ref, err := h.uc.ProcessRefund(c.Request().Context(), id, model.RefundStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Refund processed successfully", ref)
}

func (h *RefundHandler) listByPayment(c echo.Context) error {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid payment_id")
	}

	items, err := h.uc.ListRefundsByPayment(c.Request().Context(), paymentID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *RefundHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	ref, err := h.uc.GetRefund(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", ref)
}
