package handler

import (
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	uc *usecase.InvoiceUsecase
}

func NewInvoiceHandler(uc *usecase.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

type InvoiceRequest struct {
	Type      int     `json:"type"`
	Title     string  `json:"title"`
	TaxNumber *string `json:"tax_number"`
	Content   string  `json:"content"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	IsDefault bool    `json:"is_default"`
}

// 発票情報は本人のものだけ触れる
func (h *InvoiceHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/invoice", auth)
	g.GET("/get", h.list)
	g.GET("/default", h.getDefault)
	g.GET("/:id", h.detail)
	g.POST("/create", h.create)
	g.POST("/update/:id", h.update)
	g.DELETE("/delete/:id", h.delete)
}

func (h *InvoiceHandler) list(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.uc.ListInvoices(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *InvoiceHandler) getDefault(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	inv, err := h.uc.GetDefaultInvoice(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", inv)
}

func (h *InvoiceHandler) detail(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	inv, err := h.uc.GetInvoice(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", inv)
}

func (h *InvoiceHandler) create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.CreateInvoice(c.Request().Context(), userID, toInvoiceInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Invoice created successfully", map[string]any{"invoice_id": id})
}

func (h *InvoiceHandler) update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UpdateInvoice(c.Request().Context(), userID, id, toInvoiceInput(req)); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Invoice updated successfully", nil)
}

func (h *InvoiceHandler) delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteInvoice(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Invoice deleted successfully", nil)
}

func toInvoiceInput(req InvoiceRequest) usecase.InvoiceInput {
	return usecase.InvoiceInput{
		Type:      model.InvoiceType(req.Type),
		Title:     req.Title,
		TaxNumber: req.TaxNumber,
		Content:   req.Content,
		Email:     req.Email,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	}
}
