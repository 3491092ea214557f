package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type InvoiceUsecase struct {
	invoiceRepo repo.InvoiceRepository
}

func NewInvoiceUsecase(invoiceRepo repo.InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoiceRepo: invoiceRepo}
}

type InvoiceInput struct {
	Type      model.InvoiceType
	Title     string
	TaxNumber *string
	Content   string
	Email     *string
	Phone     *string
	IsDefault bool
}

func (in InvoiceInput) validate() error {
	if !in.Type.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return NewHTTPError(http.StatusBadRequest, "content required")
	}
	//会社宛ては税番号が要る
	if in.Type == model.InvoiceTypeCompany && (in.TaxNumber == nil || strings.TrimSpace(*in.TaxNumber) == "") {
		return NewHTTPError(http.StatusBadRequest, "tax_number required")
	}
	return nil
}

func (u *InvoiceUsecase) ListInvoices(ctx context.Context, userID int64) ([]model.Invoice, error) {
	if userID <= 0 {
		return []model.Invoice{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.invoiceRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Invoice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *InvoiceUsecase) GetInvoice(ctx context.Context, userID int64, invoiceID int64) (model.Invoice, error) {
	if userID <= 0 {
		return model.Invoice{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if invoiceID <= 0 {
		return model.Invoice{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	inv, err := u.invoiceRepo.FindByID(ctx, invoiceID)
	if err == repo.ErrNotFound {
		return model.Invoice{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Invoice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の発票は「存在しない扱い」にする
	if inv.UserID != userID {
		return model.Invoice{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return inv, nil
}

// GetDefaultInvoice はデフォルトが無ければnot foundを返す。
func (u *InvoiceUsecase) GetDefaultInvoice(ctx context.Context, userID int64) (model.Invoice, error) {
	if userID <= 0 {
		return model.Invoice{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	inv, err := u.invoiceRepo.FindDefaultByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Invoice{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Invoice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return inv, nil
}

func (u *InvoiceUsecase) CreateInvoice(ctx context.Context, userID int64, in InvoiceInput) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return 0, err
	}

	//デフォルトに立てるなら既存のデフォルトを先に外す
	if in.IsDefault {
		if err := u.invoiceRepo.ClearDefaultByUserID(ctx, userID); err != nil {
			return 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	now := time.Now()
	id, err := u.invoiceRepo.Create(ctx, model.Invoice{
		UserID:    userID,
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		TaxNumber: in.TaxNumber,
		Content:   strings.TrimSpace(in.Content),
		Email:     in.Email,
		Phone:     in.Phone,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *InvoiceUsecase) UpdateInvoice(ctx context.Context, userID int64, invoiceID int64, in InvoiceInput) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if invoiceID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	inv, err := u.invoiceRepo.FindByID(ctx, invoiceID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if inv.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if in.IsDefault {
		if err := u.invoiceRepo.ClearDefaultByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	inv.Type = in.Type
	inv.Title = strings.TrimSpace(in.Title)
	inv.TaxNumber = in.TaxNumber
	inv.Content = strings.TrimSpace(in.Content)
	inv.Email = in.Email
	inv.Phone = in.Phone
	inv.IsDefault = in.IsDefault
	inv.UpdatedAt = time.Now()

	if err := u.invoiceRepo.Update(ctx, inv); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *InvoiceUsecase) DeleteInvoice(ctx context.Context, userID int64, invoiceID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if invoiceID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	inv, err := u.invoiceRepo.FindByID(ctx, invoiceID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if inv.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
