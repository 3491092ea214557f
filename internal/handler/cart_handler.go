package handler

import (
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int64 `json:"quantity"`
}

// カートは全経路で認証必須
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/cart", auth)
	g.GET("/get", h.list)
	g.POST("/create", h.add)
	g.POST("/update/:id", h.update)
	g.DELETE("/delete/:id", h.delete)
}

func (h *CartHandler) list(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.uc.ListCartItems(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *CartHandler) add(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.AddCartItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Item added to cart", map[string]any{"cart_item_id": id})
}

func (h *CartHandler) update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req CartUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UpdateCartItem(c.Request().Context(), userID, itemID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Cart item updated", nil)
}

func (h *CartHandler) delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteCartItem(c.Request().Context(), userID, itemID); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Cart item deleted", nil)
}
