package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type BannerUsecase struct {
	bannerRepo repo.BannerRepository
}

func NewBannerUsecase(bannerRepo repo.BannerRepository) *BannerUsecase {
	return &BannerUsecase{bannerRepo: bannerRepo}
}

func (u *BannerUsecase) ListBanners(ctx context.Context) ([]model.Banner, error) {
	items, err := u.bannerRepo.ListActive(ctx)
	if err != nil {
		return []model.Banner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type BannerInput struct {
	Title    string
	ImageURL string
	LinkURL  string
	Position int
	IsActive bool
}

func (u *BannerUsecase) CreateBanner(ctx context.Context, in BannerInput) (int64, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "image_url required")
	}

	now := time.Now()
	id, err := u.bannerRepo.Create(ctx, model.Banner{
		Title:     strings.TrimSpace(in.Title),
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		Position:  in.Position,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *BannerUsecase) UpdateBanner(ctx context.Context, bannerID int64, in BannerInput) error {
	if bannerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}

	err := u.bannerRepo.Update(ctx, model.Banner{
		ID:        bannerID,
		Title:     strings.TrimSpace(in.Title),
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		Position:  in.Position,
		IsActive:  in.IsActive,
		UpdatedAt: time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BannerUsecase) DeleteBanner(ctx context.Context, bannerID int64) error {
	if bannerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.bannerRepo.Delete(ctx, bannerID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
