package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Create(ctx context.Context, u model.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

type fixedIssuer struct{}

func (i *fixedIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	return "token-abc", now.Add(15 * time.Minute), nil
}

func newAuthUsecaseForTest(userRepo repo.UserRepository) *usecase.AuthUsecase {
	//コストを下げてテストを速くする
	return usecase.NewAuthUsecase(
		userRepo,
		usecase.NewBcryptPasswordHasher(4),
		usecase.NewBcryptPasswordVerifier(),
		&fixedIssuer{},
	)
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecaseForTest(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	u, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Taro",
		Email:    " Taro@Example.com ",
		Password: "password123",
	})
	require.NoError(t, err)

	//メールは正規化して保存する
	assert.Equal(t, "taro@example.com", u.Email)
	assert.Equal(t, int64(1), u.ID)
	assert.NotEqual(t, "password123", u.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	uc := newAuthUsecaseForTest(new(AuthUserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "not-an-email",
		Password: "password123",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestRegister_ShortPassword(t *testing.T) {
	uc := newAuthUsecaseForTest(new(AuthUserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "short",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecaseForTest(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(model.User{ID: 2}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "password123",
	})
	assertHTTPStatus(t, err, http.StatusConflict)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecaseForTest(userRepo)

	hasher := usecase.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(model.User{ID: 5, Email: "a@example.com", PasswordHash: hash}, nil)

	out, err := uc.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-abc", out.AccessToken)
	assert.Equal(t, int64(5), out.User.ID)
	assert.False(t, out.ExpiresAt.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecaseForTest(userRepo)

	hasher := usecase.NewBcryptPasswordHasher(4)
	hash, _ := hasher.Hash("password123")

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(model.User{ID: 5, PasswordHash: hash}, nil)

	_, err := uc.Login(context.Background(), "a@example.com", "wrong-password")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecaseForTest(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(model.User{}, repo.ErrNotFound)

	//存在しないメールでも同じ文言を返す
	_, err := uc.Login(context.Background(), "nobody@example.com", "password123")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLogin_EmptyInput(t *testing.T) {
	uc := newAuthUsecaseForTest(new(AuthUserRepoMock))

	_, err := uc.Login(context.Background(), "", "")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
