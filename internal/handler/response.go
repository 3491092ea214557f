package handler

import (
	"net/http"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全レスポンス共通の封筒
type Response struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeSuccess(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Response{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, Response{
			Status:  "error",
			Code:    he.Status,
			Message: he.Message,
			Data:    nil,
		})
	}

	//500
	return c.JSON(http.StatusInternalServerError, Response{
		Status:  "error",
		Code:    http.StatusInternalServerError,
		Message: "internal error",
		Data:    nil,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: message,
		Data:    nil,
	})
}

func getUserIDFromContext(c echo.Context) (int64, error) {
	raw := c.Get("user_id")
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}
