package handler

import (
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BannerHandler struct {
	uc *usecase.BannerUsecase
}

func NewBannerHandler(uc *usecase.BannerUsecase) *BannerHandler {
	return &BannerHandler{uc: uc}
}

type BannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

func (h *BannerHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/banner/all", h.list)
	e.POST("/banner/create", h.create, auth)
	e.POST("/banner/update/:id", h.update, auth)
	e.DELETE("/banner/delete/:id", h.delete, auth)
}

func (h *BannerHandler) list(c echo.Context) error {
	items, err := h.uc.ListBanners(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *BannerHandler) create(c echo.Context) error {
	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.CreateBanner(c.Request().Context(), usecase.BannerInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Banner created successfully", map[string]any{"banner_id": id})
}

func (h *BannerHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UpdateBanner(c.Request().Context(), id, usecase.BannerInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		IsActive: req.IsActive,
	}); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Banner updated", nil)
}

func (h *BannerHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteBanner(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Banner deleted", nil)
}
