package handler

import (
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

type AddressRequest struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// 住所は本人のものだけ触れる
func (h *AddressHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/address", auth)
	g.GET("/get", h.list)
	g.POST("/create", h.create)
	g.POST("/update/:id", h.update)
	g.DELETE("/delete/:id", h.delete)
}

func (h *AddressHandler) list(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.uc.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *AddressHandler) create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.CreateAddress(c.Request().Context(), userID, toAddressInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Address created successfully", map[string]any{"address_id": id})
}

func (h *AddressHandler) update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UpdateAddress(c.Request().Context(), userID, id, toAddressInput(req)); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Address updated", nil)
}

func (h *AddressHandler) delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteAddress(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Address deleted", nil)
}

func toAddressInput(req AddressRequest) usecase.AddressInput {
	return usecase.AddressInput{
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
}
