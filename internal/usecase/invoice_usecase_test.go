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

type InvInvoiceRepoMock struct{ mock.Mock }

func (m *InvInvoiceRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Invoice, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Invoice)
	return items, args.Error(1)
}

func (m *InvInvoiceRepoMock) FindByID(ctx context.Context, id int64) (model.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(model.Invoice)
	return inv, args.Error(1)
}

func (m *InvInvoiceRepoMock) FindDefaultByUserID(ctx context.Context, userID int64) (model.Invoice, error) {
	args := m.Called(ctx, userID)
	inv, _ := args.Get(0).(model.Invoice)
	return inv, args.Error(1)
}

func (m *InvInvoiceRepoMock) ClearDefaultByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *InvInvoiceRepoMock) Create(ctx context.Context, inv model.Invoice) (int64, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InvInvoiceRepoMock) Update(ctx context.Context, inv model.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *InvInvoiceRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateInvoice_Success(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("Create", ctx, mock.MatchedBy(func(inv model.Invoice) bool {
		return inv.UserID == 1 && inv.Title == "personal" && !inv.IsDefault
	})).Return(int64(5), nil)

	id, err := uc.CreateInvoice(ctx, 1, usecase.InvoiceInput{
		Type:    model.InvoiceTypePersonal,
		Title:   "personal",
		Content: "goods",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	//デフォルトでなければ既存のデフォルトには触らない
	invoices.AssertNotCalled(t, "ClearDefaultByUserID", mock.Anything, mock.Anything)
}

func TestCreateInvoice_DefaultUnsetsOthers(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("ClearDefaultByUserID", ctx, int64(1)).Return(nil)
	invoices.On("Create", ctx, mock.MatchedBy(func(inv model.Invoice) bool {
		return inv.IsDefault
	})).Return(int64(5), nil)

	_, err := uc.CreateInvoice(ctx, 1, usecase.InvoiceInput{
		Type:      model.InvoiceTypePersonal,
		Title:     "personal",
		Content:   "goods",
		IsDefault: true,
	})
	require.NoError(t, err)
	invoices.AssertExpectations(t)
}

func TestCreateInvoice_CompanyRequiresTaxNumber(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInvoiceUsecase(new(InvInvoiceRepoMock))

	_, err := uc.CreateInvoice(ctx, 1, usecase.InvoiceInput{
		Type:    model.InvoiceTypeCompany,
		Title:   "acme",
		Content: "goods",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "tax_number required")
}

func TestCreateInvoice_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInvoiceUsecase(new(InvInvoiceRepoMock))

	_, err := uc.CreateInvoice(ctx, 1, usecase.InvoiceInput{
		Type:    model.InvoiceType(9),
		Title:   "t",
		Content: "c",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreateInvoice(ctx, 1, usecase.InvoiceInput{
		Type:    model.InvoiceTypePersonal,
		Title:   " ",
		Content: "c",
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreateInvoice(ctx, 0, usecase.InvoiceInput{
		Type:    model.InvoiceTypePersonal,
		Title:   "t",
		Content: "c",
	})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestUpdateInvoice_DefaultUnsetsOthers(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("FindByID", ctx, int64(5)).Return(model.Invoice{ID: 5, UserID: 1, Title: "old"}, nil)
	invoices.On("ClearDefaultByUserID", ctx, int64(1)).Return(nil)
	invoices.On("Update", ctx, mock.MatchedBy(func(inv model.Invoice) bool {
		return inv.ID == 5 && inv.Title == "new" && inv.IsDefault
	})).Return(nil)

	err := uc.UpdateInvoice(ctx, 1, 5, usecase.InvoiceInput{
		Type:      model.InvoiceTypePersonal,
		Title:     "new",
		Content:   "goods",
		IsDefault: true,
	})
	require.NoError(t, err)
	invoices.AssertExpectations(t)
}

func TestGetInvoice_OtherUsersInvoiceHidden(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("FindByID", ctx, int64(5)).Return(model.Invoice{ID: 5, UserID: 2}, nil)

	_, err := uc.GetInvoice(ctx, 1, 5)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestDeleteInvoice_OtherUsersInvoiceHidden(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("FindByID", ctx, int64(5)).Return(model.Invoice{ID: 5, UserID: 2}, nil)

	err := uc.DeleteInvoice(ctx, 1, 5)
	assertHTTPStatus(t, err, http.StatusNotFound)
	invoices.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetDefaultInvoice_NoneIsNotFound(t *testing.T) {
	ctx := context.Background()
	invoices := new(InvInvoiceRepoMock)
	uc := usecase.NewInvoiceUsecase(invoices)

	invoices.On("FindDefaultByUserID", ctx, int64(1)).Return(model.Invoice{}, repo.ErrNotFound)

	_, err := uc.GetDefaultInvoice(ctx, 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
