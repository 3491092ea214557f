package handler

import (
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Sku           string          `json:"sku"`
	Brand         string          `json:"brand"`
	TypeName      string          `json:"type_name"`
	Detail        string          `json:"detail"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	Status        bool            `json:"status"`
	IsNew         bool            `json:"is_new"`
	ImageURL      string          `json:"image_url"`
}

type ProductCategoryRequest struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	//閲覧系は公開
	e.GET("/product/get", h.list)
	e.GET("/product/new_arrivals", h.newArrivals)
	e.GET("/product/:id", h.detail)
	e.GET("/product/:id/categories", h.listCategories)

	//更新系は認証必須
	e.POST("/product/create", h.create, auth)
	e.POST("/product/update/:id", h.update, auth)
	e.DELETE("/product/delete/:id", h.delete, auth)
	e.POST("/product/category", h.assignCategory, auth)
	e.DELETE("/product/category", h.unassignCategory, auth)
}

func (h *ProductHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("page_size"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page_size")
		}
		limit = l
	}

	var categoryID *int64
	if v := c.QueryParam("category_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid category_id")
		}
		categoryID = &x
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:       page,
		Limit:      limit,
		Name:       c.QueryParam("name"),
		CategoryID: categoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", out)
}

func (h *ProductHandler) newArrivals(c echo.Context) error {
	items, err := h.uc.ListNewArrivals(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", p)
}

func (h *ProductHandler) listCategories(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	items, err := h.uc.ListProductCategories(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "ok", items)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	id, err := h.uc.CreateProduct(c.Request().Context(), toCreateProductInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Product created successfully", map[string]any{"product_id": id})
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), id, toCreateProductInput(req)); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Product updated", nil)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Product deleted", nil)
}

func (h *ProductHandler) assignCategory(c echo.Context) error {
	var req ProductCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.AssignCategory(c.Request().Context(), req.ProductID, req.CategoryID); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Category assigned", nil)
}

func (h *ProductHandler) unassignCategory(c echo.Context) error {
	var req ProductCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.UnassignCategory(c.Request().Context(), req.ProductID, req.CategoryID); err != nil {
		return writeError(c, err)
	}
	return writeSuccess(c, "Category unassigned", nil)
}

func toCreateProductInput(req ProductRequest) usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Sku:           req.Sku,
		Brand:         req.Brand,
		TypeName:      req.TypeName,
		Detail:        req.Detail,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Status:        req.Status,
		IsNew:         req.IsNew,
		ImageURL:      req.ImageURL,
	}
}
