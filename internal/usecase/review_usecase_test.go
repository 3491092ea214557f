package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RevReviewRepoMock struct{ mock.Mock }

func (m *RevReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *RevReviewRepoMock) FindByID(ctx context.Context, id int64) (model.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *RevReviewRepoMock) Create(ctx context.Context, r model.Review) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RevReviewRepoMock) Update(ctx context.Context, r model.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RevReviewRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type RevProductRepoMock struct{ mock.Mock }

func (m *RevProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *RevProductRepoMock) ListNewArrivals(ctx context.Context, limit int) ([]model.Product, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in ReviewUsecase tests")
}

func TestCreateReview_Success(t *testing.T) {
	ctx := context.Background()
	reviews := new(RevReviewRepoMock)
	products := new(RevProductRepoMock)
	uc := usecase.NewReviewUsecase(reviews, products)

	products.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7}, nil)
	reviews.On("Create", ctx, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 7 && r.UserID == 1 && r.Rating == 4
	})).Return(int64(10), nil)

	id, err := uc.CreateReview(ctx, 1, 7, 4, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	reviews.AssertExpectations(t)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewReviewUsecase(new(RevReviewRepoMock), new(RevProductRepoMock))

	_, err := uc.CreateReview(ctx, 1, 7, 0, "")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreateReview(ctx, 1, 7, 6, "")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpdateReview_Success(t *testing.T) {
	ctx := context.Background()
	reviews := new(RevReviewRepoMock)
	uc := usecase.NewReviewUsecase(reviews, new(RevProductRepoMock))

	reviews.On("FindByID", ctx, int64(10)).Return(model.Review{
		ID:        10,
		ProductID: 7,
		UserID:    1,
		Rating:    2,
		Comment:   "meh",
	}, nil)
	//rating/commentだけ書き換わり、product_id/user_idは保たれる
	reviews.On("Update", ctx, mock.MatchedBy(func(r model.Review) bool {
		return r.ID == 10 && r.ProductID == 7 && r.UserID == 1 &&
			r.Rating == 5 && r.Comment == "actually great"
	})).Return(nil)

	err := uc.UpdateReview(ctx, 10, 5, "actually great")
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestUpdateReview_NotFound(t *testing.T) {
	ctx := context.Background()
	reviews := new(RevReviewRepoMock)
	uc := usecase.NewReviewUsecase(reviews, new(RevProductRepoMock))

	reviews.On("FindByID", ctx, int64(42)).Return(model.Review{}, repo.ErrNotFound)

	err := uc.UpdateReview(ctx, 42, 3, "x")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestUpdateReview_InvalidRating(t *testing.T) {
	ctx := context.Background()
	reviews := new(RevReviewRepoMock)
	uc := usecase.NewReviewUsecase(reviews, new(RevProductRepoMock))

	err := uc.UpdateReview(ctx, 10, 0, "x")
	assertHTTPStatus(t, err, http.StatusBadRequest)
	//レーティングが不正なら読みにも行かない
	reviews.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDeleteReview_NotFound(t *testing.T) {
	ctx := context.Background()
	reviews := new(RevReviewRepoMock)
	uc := usecase.NewReviewUsecase(reviews, new(RevProductRepoMock))

	reviews.On("Delete", ctx, int64(42)).Return(repo.ErrNotFound)

	err := uc.DeleteReview(ctx, 42)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
