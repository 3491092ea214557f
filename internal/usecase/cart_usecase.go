package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type CartUsecase struct {
	cartRepo    repo.CartItemRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

func (u *CartUsecase) ListCartItems(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if userID <= 0 {
		return []model.CartItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CartUsecase) AddCartItem(ctx context.Context, userID int64, productID int64, quantity int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	//存在しない・非公開の商品は入れられない
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Status {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	id, err := u.cartRepo.Create(ctx, model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, itemID int64, quantity int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	item, err := u.cartRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人のカートは「存在しない扱い」にする
	if item.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, itemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartRepo.Delete(ctx, itemID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
