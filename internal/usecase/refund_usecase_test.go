package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefundUsecaseForTest() (*usecase.RefundUsecase, *memTxRepos) {
	repos := newMemTxRepos()
	uc := usecase.NewRefundUsecase(&memTxManager{repos: repos}, repos.refunds, zerolog.Nop())
	return uc, repos
}

func seedPaidPayment(repos *memTxRepos, amount string) (int64, int64) {
	orderID := seedOrder(repos, model.OrderStatusPaid)
	now := time.Now()
	paymentID, _ := repos.payments.Create(context.Background(), model.Payment{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodAlipay,
		TransactionID: "tx-refund",
		PayStatus:     model.PaymentStatusPaid,
		Amount:        decimal.RequireFromString(amount),
		PaidAt:        &now,
	})
	return paymentID, orderID
}

func TestRequestRefund_Success(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, _ := seedPaidPayment(repos, "100.00")

	reason := "damaged"
	id, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.RequireFromString("100.00"),
		Reason:    &reason,
	})
	require.NoError(t, err)

	ref, err := repos.refunds.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RefundStatusRequested, ref.Status)
	assert.False(t, ref.RequestedAt.IsZero())
	assert.Nil(t, ref.ProcessedAt)

	//申請だけでは決済は動かない
	p, _ := repos.payments.FindByID(ctx, paymentID)
	assert.Equal(t, model.PaymentStatusPaid, p.PayStatus)
}

func TestRequestRefund_UnpaidPaymentRejected(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	orderID := seedOrder(repos, model.OrderStatusPending)
	paymentID, _ := repos.payments.Create(ctx, model.Payment{
		OrderID:       orderID,
		TransactionID: "tx-pending",
		PayStatus:     model.PaymentStatusPending,
		Amount:        decimal.NewFromInt(50),
	})

	_, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.NewFromInt(50),
	})
	assertHTTPStatus(t, err, http.StatusConflict)
	assert.Empty(t, repos.refunds.refunds)
}

func TestRequestRefund_AmountExceedsPayment(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, _ := seedPaidPayment(repos, "100.00")

	_, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.RequireFromString("100.01"),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "amount exceeds payment")
}

func TestRequestRefund_PaymentNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newRefundUsecaseForTest()

	_, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: 42,
		Amount:    decimal.NewFromInt(10),
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProcessRefund_CompletedMarksPaymentRefunded(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, orderID := seedPaidPayment(repos, "100.00")

	id, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	out, err := uc.ProcessRefund(ctx, id, model.RefundStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.RefundStatusCompleted, out.Status)
	require.NotNil(t, out.ProcessedAt)

	//決済と親注文がRefundedへ揃う
	p, _ := repos.payments.FindByID(ctx, paymentID)
	assert.Equal(t, model.PaymentStatusRefunded, p.PayStatus)

	o, _ := repos.orders.FindByID(ctx, orderID)
	assert.Equal(t, model.PaymentStatusRefunded, o.PaymentStatus)
	require.NotNil(t, o.RefundedAt)
}

func TestProcessRefund_RejectedLeavesPaymentAlone(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, orderID := seedPaidPayment(repos, "100.00")

	id, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	out, err := uc.ProcessRefund(ctx, id, model.RefundStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, model.RefundStatusRejected, out.Status)

	p, _ := repos.payments.FindByID(ctx, paymentID)
	assert.Equal(t, model.PaymentStatusPaid, p.PayStatus)

	o, _ := repos.orders.FindByID(ctx, orderID)
	assert.Equal(t, model.PaymentStatusPending, o.PaymentStatus)
}

func TestProcessRefund_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, _ := seedPaidPayment(repos, "100.00")

	id, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	first, err := uc.ProcessRefund(ctx, id, model.RefundStatusCompleted)
	require.NoError(t, err)

	second, err := uc.ProcessRefund(ctx, id, model.RefundStatusCompleted)
	require.NoError(t, err)
	assert.True(t, first.ProcessedAt.Equal(*second.ProcessedAt))
}

func TestProcessRefund_AlreadyProcessedConflicts(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, _ := seedPaidPayment(repos, "100.00")

	id, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
		PaymentID: paymentID,
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = uc.ProcessRefund(ctx, id, model.RefundStatusRejected)
	require.NoError(t, err)

	//Rejected後にCompletedへは倒せない
	_, err = uc.ProcessRefund(ctx, id, model.RefundStatusCompleted)
	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestProcessRefund_RequestedIsInvalidTarget(t *testing.T) {
	ctx := context.Background()
	uc, _ := newRefundUsecaseForTest()

	_, err := uc.ProcessRefund(ctx, 1, model.RefundStatusRequested)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListRefundsByPayment(t *testing.T) {
	ctx := context.Background()
	uc, repos := newRefundUsecaseForTest()
	paymentID, _ := seedPaidPayment(repos, "100.00")

	for i := 0; i < 3; i++ {
		_, err := uc.RequestRefund(ctx, usecase.RequestRefundInput{
			PaymentID: paymentID,
			Amount:    decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	items, err := uc.ListRefundsByPayment(ctx, paymentID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestGetRefund_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newRefundUsecaseForTest()

	_, err := uc.GetRefund(ctx, 42)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
