package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type idempotencyTestDeps struct {
	store  *IdempotencyStoreImpl
	cache  *mocks.MockIdempotencyCache
	txRepo *mocks.MockTransactionRepository
	ctrl   *gomock.Controller
}

func setupIdempotencyStore(t *testing.T) *idempotencyTestDeps {
	ctrl := gomock.NewController(t)
	d := &idempotencyTestDeps{
		cache:  mocks.NewMockIdempotencyCache(ctrl),
		txRepo: mocks.NewMockTransactionRepository(ctrl),
		ctrl:   ctrl,
	}
	d.store = NewIdempotencyStore(d.cache, d.txRepo, time.Hour, zerolog.Nop())
	return d
}

func storedResult(key string) *domain.PaymentResult {
	return &domain.PaymentResult{
		IdempotencyKey: key,
		Status:         domain.PaymentStatusSuccess,
		Amount:         decimal.RequireFromString("100.00"),
		CurrencyCode:   "USD",
		Timestamp:      time.Now().UTC().Truncate(time.Second),
	}
}

// ==================== GetCachedPayment Tests ====================

func TestIdempotencyStore_Get_HotTierHit(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	want := storedResult("k1")
	payload, err := domain.EncodeCachedResult(want)
	require.NoError(t, err)

	d.cache.EXPECT().Get(ctx, "k1").Return(payload, nil)

	got := d.store.GetCachedPayment(ctx, "k1")
	require.NotNil(t, got)
	assert.Equal(t, "k1", got.IdempotencyKey)
	assert.Equal(t, domain.PaymentStatusSuccess, got.Status)
}

func TestIdempotencyStore_Get_DurableFallbackRepopulatesHotTier(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	rec := domain.NewPaymentTransaction(
		&domain.PaymentRequest{IdempotencyKey: "k2", ProviderType: domain.ProviderTypeCard},
		storedResult("k2"),
	)

	d.cache.EXPECT().Get(ctx, "k2").Return(nil, nil)
	d.txRepo.EXPECT().GetByKey(ctx, "k2").Return(rec, nil)
	d.cache.EXPECT().Set(ctx, "k2", gomock.Any(), time.Hour).Return(nil)

	got := d.store.GetCachedPayment(ctx, "k2")
	require.NotNil(t, got)
	assert.Equal(t, "k2", got.IdempotencyKey)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("100.00")))
}

func TestIdempotencyStore_Get_CorruptedCacheFallsThrough(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.cache.EXPECT().Get(ctx, "k3").Return([]byte("{not json"), nil)
	d.txRepo.EXPECT().GetByKey(ctx, "k3").Return(nil, nil)

	assert.Nil(t, d.store.GetCachedPayment(ctx, "k3"))
}

func TestIdempotencyStore_Get_BothTiersFailOpen(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.cache.EXPECT().Get(ctx, "k4").Return(nil, errors.New("redis down"))
	d.txRepo.EXPECT().GetByKey(ctx, "k4").Return(nil, errors.New("db down"))

	// Tier failures degrade to a miss, never an error.
	assert.Nil(t, d.store.GetCachedPayment(ctx, "k4"))
}

// ==================== StorePayment Tests ====================

func TestIdempotencyStore_Store_WritesBothTiers(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := &domain.PaymentRequest{IdempotencyKey: "k5", ProviderType: domain.ProviderTypeCard}
	res := storedResult("k5")

	d.txRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
			assert.Equal(t, "k5", rec.IdempotencyKey)
			return rec, nil
		})
	d.cache.EXPECT().Set(ctx, "k5", gomock.Any(), time.Hour).Return(nil)

	got, err := d.store.StorePayment(ctx, req, res)
	require.NoError(t, err)
	assert.Equal(t, "k5", got.IdempotencyKey)
}

func TestIdempotencyStore_Store_ConvergesOnExistingRecord(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := &domain.PaymentRequest{IdempotencyKey: "k6", ProviderType: domain.ProviderTypeCard}
	mine := storedResult("k6")

	// Another thread already persisted a different outcome for the key.
	winner := domain.NewPaymentTransaction(req, &domain.PaymentResult{
		IdempotencyKey:        "k6",
		ProviderTransactionID: "first-writer",
		Status:                domain.PaymentStatusSuccess,
		Amount:                decimal.RequireFromString("100.00"),
		CurrencyCode:          "USD",
		Timestamp:             time.Now().UTC(),
	})

	d.txRepo.EXPECT().Create(ctx, gomock.Any()).Return(winner, nil)
	d.cache.EXPECT().Set(ctx, "k6", gomock.Any(), time.Hour).Return(nil)

	got, err := d.store.StorePayment(ctx, req, mine)
	require.NoError(t, err)
	assert.Equal(t, "first-writer", got.ProviderTransactionID)
}

func TestIdempotencyStore_Store_DurableFailureStillReturnsResult(t *testing.T) {
	d := setupIdempotencyStore(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := &domain.PaymentRequest{IdempotencyKey: "k7", ProviderType: domain.ProviderTypeCard}
	res := storedResult("k7")

	d.txRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("db down"))
	// The hot tier still protects the key within its TTL.
	d.cache.EXPECT().Set(ctx, "k7", gomock.Any(), time.Hour).Return(nil)

	got, err := d.store.StorePayment(ctx, req, res)
	require.Error(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "k7", got.IdempotencyKey)
}
