package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/payment"
	"shop/internal/usecase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-callback-secret"

// 署名検証だけ本物（HMAC）を使うスタブプロバイダ
type stubProvider struct {
	name       string
	tradeErr   error
	lastTrade  payment.TradeRequest
	tradeCalls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) CreateTrade(ctx context.Context, req payment.TradeRequest) (payment.TradeResult, error) {
	p.tradeCalls++
	p.lastTrade = req
	if p.tradeErr != nil {
		return payment.TradeResult{}, p.tradeErr
	}
	return payment.TradeResult{Provider: p.name, Payload: json.RawMessage(`{"redirect_url":"https://gw.example/pay"}`)}, nil
}

func (p *stubProvider) VerifyCallback(n payment.Notification) error {
	if payment.SignNotify(testSecret, n) != n.Signature {
		return payment.ErrInvalidSignature
	}
	return nil
}

func newPaymentUsecaseForTest(provider payment.Provider) (*usecase.PaymentUsecase, *memTxRepos) {
	repos := newMemTxRepos()
	registry := payment.NewRegistry()
	registry.Register(model.PaymentMethodAlipay, provider)

	uc := usecase.NewPaymentUsecase(
		&memTxManager{repos: repos},
		repos.orders,
		repos.payments,
		registry,
		zerolog.Nop(),
	)
	return uc, repos
}

func signedNotification(orderID int64, status model.PaymentStatus) payment.Notification {
	return signedNotificationFor(orderID, status, "")
}

func signedNotificationFor(orderID int64, status model.PaymentStatus, transactionID string) payment.Notification {
	n := payment.Notification{
		OrderID:       orderID,
		PayStatus:     int(status),
		TransactionID: transactionID,
		Timestamp:     "2026-01-02T03:04:05Z",
		Nonce:         "nonce-1",
	}
	n.Signature = payment.SignNotify(testSecret, n)
	return n
}

// =====================
// CreatePayment
// =====================

func TestCreatePayment_Success(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{name: "alipay"}
	uc, repos := newPaymentUsecaseForTest(provider)
	orderID := seedOrder(repos, model.OrderStatusPending)

	out, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodAlipay,
		Amount:        decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	//コールバックまでPendingのまま
	assert.Equal(t, model.PaymentStatusPending, out.Payment.PayStatus)
	assert.Nil(t, out.Payment.PaidAt)
	assert.Equal(t, "alipay", out.Provider.Provider)

	//取引参照はUUID
	_, parseErr := uuid.Parse(out.Payment.TransactionID)
	assert.NoError(t, parseErr)
	assert.Equal(t, out.Payment.TransactionID, provider.lastTrade.TransactionID)

	//永続化されている
	stored, err := repos.payments.FindByTransactionID(ctx, out.Payment.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, orderID, stored.OrderID)
}

func TestCreatePayment_TransactionIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{name: "alipay"}
	uc, repos := newPaymentUsecaseForTest(provider)
	orderID := seedOrder(repos, model.OrderStatusPending)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		out, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID:       orderID,
			PaymentMethod: model.PaymentMethodAlipay,
			Amount:        decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.False(t, seen[out.Payment.TransactionID])
		seen[out.Payment.TransactionID] = true
	}
}

func TestCreatePayment_ProviderFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{name: "alipay", tradeErr: payment.ErrProvider}
	uc, repos := newPaymentUsecaseForTest(provider)
	orderID := seedOrder(repos, model.OrderStatusPending)

	_, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodAlipay,
		Amount:        decimal.NewFromInt(10),
	})
	assertHTTPStatus(t, err, http.StatusBadGateway)

	//ゲートウェイ失敗時はPayment行を残さない
	assert.Empty(t, repos.payments.payments)
}

func TestCreatePayment_UnsupportedMethod(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)

	_, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodBankTransfer,
		Amount:        decimal.NewFromInt(10),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "unsupported payment_method")
}

func TestCreatePayment_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})

	_, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		OrderID:       42,
		PaymentMethod: model.PaymentMethodAlipay,
		Amount:        decimal.NewFromInt(10),
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCreatePayment_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)

	_, err := uc.CreatePayment(ctx, usecase.CreatePaymentInput{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodAlipay,
		Amount:        decimal.Zero,
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// =====================
// HandleNotify
// =====================

func createTestPayment(t *testing.T, uc *usecase.PaymentUsecase, orderID int64) model.Payment {
	t.Helper()
	out, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		PaymentMethod: model.PaymentMethodAlipay,
		Amount:        decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	return out.Payment
}

func TestHandleNotify_PaidUpdatesPaymentAndOrder(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	p := createTestPayment(t, uc, orderID)

	err := uc.HandleNotify(ctx, signedNotification(orderID, model.PaymentStatusPaid))
	require.NoError(t, err)

	stored, err := repos.payments.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, stored.PayStatus)
	require.NotNil(t, stored.PaidAt)

	//親注文にも反映される
	o, err := repos.orders.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, o.PaymentStatus)
	require.NotNil(t, o.PaidAt)
}

func TestHandleNotify_DuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	p := createTestPayment(t, uc, orderID)

	n := signedNotification(orderID, model.PaymentStatusPaid)
	require.NoError(t, uc.HandleNotify(ctx, n))

	first, _ := repos.payments.FindByID(ctx, p.ID)

	//同じ通知の再送は成功のまま何も変えない
	require.NoError(t, uc.HandleNotify(ctx, n))
	second, _ := repos.payments.FindByID(ctx, p.ID)
	assert.True(t, first.PaidAt.Equal(*second.PaidAt))
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestHandleNotify_InvalidSignatureWritesNothing(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	p := createTestPayment(t, uc, orderID)

	n := signedNotification(orderID, model.PaymentStatusPaid)
	n.Signature = "deadbeef"

	err := uc.HandleNotify(ctx, n)
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	stored, _ := repos.payments.FindByID(ctx, p.ID)
	assert.Equal(t, model.PaymentStatusPending, stored.PayStatus)
	assert.Nil(t, stored.PaidAt)

	o, _ := repos.orders.FindByID(ctx, orderID)
	assert.Equal(t, model.PaymentStatusPending, o.PaymentStatus)
}

func TestHandleNotify_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	createTestPayment(t, uc, orderID)

	require.NoError(t, uc.HandleNotify(ctx, signedNotification(orderID, model.PaymentStatusPaid)))

	//Paid後にFailedへは戻れない
	err := uc.HandleNotify(ctx, signedNotification(orderID, model.PaymentStatusFailed))
	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestHandleNotify_PendingIsRejected(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	createTestPayment(t, uc, orderID)

	err := uc.HandleNotify(ctx, signedNotification(orderID, model.PaymentStatusPending))
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestHandleNotify_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})

	err := uc.HandleNotify(ctx, signedNotification(42, model.PaymentStatusPaid))
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestHandleNotify_VerifyTargetsLatestAttempt(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)

	first := createTestPayment(t, uc, orderID)
	second := createTestPayment(t, uc, orderID)

	require.NoError(t, uc.HandleNotify(ctx, signedNotification(orderID, model.PaymentStatusPaid)))

	//最新の試行だけが更新される
	p1, _ := repos.payments.FindByID(ctx, first.ID)
	p2, _ := repos.payments.FindByID(ctx, second.ID)
	assert.Equal(t, model.PaymentStatusPending, p1.PayStatus)
	assert.Equal(t, model.PaymentStatusPaid, p2.PayStatus)
}

func TestHandleNotify_TransactionIDTargetsSpecificAttempt(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)

	first := createTestPayment(t, uc, orderID)
	second := createTestPayment(t, uc, orderID)

	//transaction_id付きなら最新でなくその試行を更新する
	n := signedNotificationFor(orderID, model.PaymentStatusPaid, first.TransactionID)
	require.NoError(t, uc.HandleNotify(ctx, n))

	p1, _ := repos.payments.FindByID(ctx, first.ID)
	p2, _ := repos.payments.FindByID(ctx, second.ID)
	assert.Equal(t, model.PaymentStatusPaid, p1.PayStatus)
	assert.Equal(t, model.PaymentStatusPending, p2.PayStatus)
}

func TestHandleNotify_TransactionIDOrderMismatch(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderA := seedOrder(repos, model.OrderStatusPending)
	orderB := seedOrder(repos, model.OrderStatusPending)
	pa := createTestPayment(t, uc, orderA)

	//別注文のtransaction_idを名乗る通知は弾く
	n := signedNotificationFor(orderB, model.PaymentStatusPaid, pa.TransactionID)
	err := uc.HandleNotify(ctx, n)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	stored, _ := repos.payments.FindByID(ctx, pa.ID)
	assert.Equal(t, model.PaymentStatusPending, stored.PayStatus)
}

func TestHandleNotify_TransactionIDRetargetFailsSignature(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)

	first := createTestPayment(t, uc, orderID)
	second := createTestPayment(t, uc, orderID)

	//transaction_id込みで署名された通知のidだけを差し替えると署名が合わない
	n := signedNotificationFor(orderID, model.PaymentStatusPaid, second.TransactionID)
	n.TransactionID = first.TransactionID
	err := uc.HandleNotify(ctx, n)
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	p1, _ := repos.payments.FindByID(ctx, first.ID)
	p2, _ := repos.payments.FindByID(ctx, second.ID)
	assert.Equal(t, model.PaymentStatusPending, p1.PayStatus)
	assert.Equal(t, model.PaymentStatusPending, p2.PayStatus)
}

// =====================
// List / Get
// =====================

func TestListPayments_Pagination(t *testing.T) {
	ctx := context.Background()
	uc, repos := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})
	orderID := seedOrder(repos, model.OrderStatusPending)
	for i := 0; i < 7; i++ {
		createTestPayment(t, uc, orderID)
	}

	out, err := uc.ListPayments(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Total)
	assert.Equal(t, int64(2), out.TotalPages)
	assert.Len(t, out.Payments, 5)

	out2, err := uc.ListPayments(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, out2.Payments, 2)
}

func TestGetPayment_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPaymentUsecaseForTest(&stubProvider{name: "alipay"})

	_, err := uc.GetPayment(ctx, 42)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
