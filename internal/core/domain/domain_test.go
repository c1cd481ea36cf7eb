package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_Successful(t *testing.T) {
	tests := []struct {
		name   string
		status PaymentStatus
		want   bool
	}{
		{"success", PaymentStatusSuccess, true},
		{"captured", PaymentStatusCaptured, true},
		{"failed", PaymentStatusFailed, false},
		{"reversed", PaymentStatusReversed, false},
		{"pending", PaymentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Successful())
		})
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	tests := []struct {
		name   string
		status PaymentStatus
		want   bool
	}{
		{"pending", PaymentStatusPending, false},
		{"success", PaymentStatusSuccess, true},
		{"captured", PaymentStatusCaptured, true},
		{"failed", PaymentStatusFailed, true},
		{"reversed", PaymentStatusReversed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Terminal())
		})
	}
}

func TestProviderType_Valid(t *testing.T) {
	for _, pt := range []ProviderType{ProviderTypeCard, ProviderTypeWallet, ProviderTypeBNPL, ProviderTypeBankTransfer, ProviderTypeMock} {
		assert.True(t, pt.Valid(), string(pt))
	}
	assert.False(t, ProviderType("CRYPTO").Valid())
	assert.False(t, ProviderType("").Valid())
}

func TestPaymentResult_WellFormed(t *testing.T) {
	base := func() *PaymentResult {
		return &PaymentResult{
			IdempotencyKey: "k1",
			Status:         PaymentStatusSuccess,
			Amount:         decimal.NewFromInt(100),
			CurrencyCode:   "USD",
			Timestamp:      time.Now().UTC(),
		}
	}

	assert.True(t, base().WellFormed())

	missingKey := base()
	missingKey.IdempotencyKey = ""
	assert.False(t, missingKey.WellFormed())

	missingStatus := base()
	missingStatus.Status = ""
	assert.False(t, missingStatus.WellFormed())

	missingCurrency := base()
	missingCurrency.CurrencyCode = ""
	assert.False(t, missingCurrency.WellFormed())

	missingTimestamp := base()
	missingTimestamp.Timestamp = time.Time{}
	assert.False(t, missingTimestamp.WellFormed())

	var nilResult *PaymentResult
	assert.False(t, nilResult.WellFormed())
}

func TestPaymentResult_WithMeta_DoesNotMutateReceiver(t *testing.T) {
	orig := PaymentResult{Metadata: map[string]string{"a": "1"}}
	got := orig.WithMeta(MetaAdapterName, "stripe-card")

	assert.Equal(t, "stripe-card", got.Metadata[MetaAdapterName])
	assert.Equal(t, "1", got.Metadata["a"])
	_, ok := orig.Metadata[MetaAdapterName]
	assert.False(t, ok, "receiver metadata must stay untouched")
}

func TestPaymentRequest_TestAdapterName(t *testing.T) {
	req := &PaymentRequest{}
	assert.Empty(t, req.TestAdapterName())

	req.ProviderPayload = map[string]string{PayloadTestAdapterName: "mock-primary"}
	assert.Equal(t, "mock-primary", req.TestAdapterName())
}

func TestNewOutcomeEvent_Types(t *testing.T) {
	req := &PaymentRequest{
		IdempotencyKey:    "k1",
		ProviderType:      ProviderTypeCard,
		Amount:            decimal.NewFromInt(50),
		CurrencyCode:      "USD",
		MerchantReference: "m1",
		Email:             "Fraud@Example.com",
		ClientIP:          "10.0.0.9",
	}

	success := &PaymentResult{
		IdempotencyKey: "k1",
		Status:         PaymentStatusSuccess,
		Amount:         decimal.NewFromInt(50),
		CurrencyCode:   "USD",
		Timestamp:      time.Now().UTC(),
	}
	ev := NewOutcomeEvent(req, success)
	assert.Equal(t, EventTypePaymentCompleted, ev.EventType)
	assert.False(t, ev.Failed())
	assert.NotEmpty(t, ev.EventID)

	failed := &PaymentResult{
		IdempotencyKey: "k1",
		Status:         PaymentStatusFailed,
		FailureCode:    "card_declined",
		Amount:         decimal.NewFromInt(50),
		CurrencyCode:   "USD",
		Timestamp:      time.Now().UTC(),
	}
	ev = NewOutcomeEvent(req, failed)
	assert.Equal(t, EventTypePaymentFailed, ev.EventType)
	assert.True(t, ev.Failed())
	assert.Equal(t, "card_declined", ev.FailureCode)
}

func TestEntityRefs_AllDimensions(t *testing.T) {
	ev := &PaymentEvent{
		ProviderType:      ProviderTypeCard,
		MerchantReference: "m1",
		Email:             "Fraud@Example.com",
		ClientIP:          "10.0.0.9",
		CardFingerprint:   "fp-123",
	}

	refs := ev.EntityRefs()
	assert.Len(t, refs, 4)
	assert.Equal(t, EntityRef{Type: EntityTypeMerchant, ID: "m1"}, refs[0])
	assert.Equal(t, EntityRef{Type: EntityTypeCard, ID: "fp-123"}, refs[1])
	assert.Equal(t, EntityRef{Type: EntityTypeEmail, ID: "fraud@example.com"}, refs[2])
	assert.Equal(t, EntityRef{Type: EntityTypeIP, ID: "10.0.0.9"}, refs[3])
}

func TestEntityRefs_CardFallbackAndBNPL(t *testing.T) {
	fallback := &PaymentEvent{
		ProviderType:      ProviderTypeCard,
		MerchantReference: "m1",
		CardBin:           "411111",
		CardLast4:         "1111",
	}
	refs := fallback.EntityRefs()
	assert.Len(t, refs, 2)
	assert.Equal(t, "411111:1111:CARD", refs[1].ID)

	bnpl := &PaymentEvent{
		ProviderType:      ProviderTypeBNPL,
		MerchantReference: "m1",
		CardBin:           "411111",
		CardLast4:         "1111",
	}
	for _, ref := range bnpl.EntityRefs() {
		assert.NotEqual(t, EntityTypeCard, ref.Type, "BNPL events have no card dimension")
	}
}

func TestEntityRefs_SkipsMissingDimensions(t *testing.T) {
	ev := &PaymentEvent{ProviderType: ProviderTypeMock, MerchantReference: "m1"}
	refs := ev.EntityRefs()
	assert.Len(t, refs, 1)
	assert.Equal(t, EntityTypeMerchant, refs[0].Type)
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0.95, RiskLevelCritical},
		{0.8, RiskLevelCritical},
		{0.79, RiskLevelHigh},
		{0.6, RiskLevelHigh},
		{0.59, RiskLevelMedium},
		{0.4, RiskLevelMedium},
		{0.39, RiskLevelLow},
		{0.0, RiskLevelLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %v", tt.score)
	}
}

func TestRiskAlert_HasSignal(t *testing.T) {
	alert := &RiskAlert{SignalTypes: []SignalType{SignalHighFailureRate, SignalUnusualAmount}}
	assert.True(t, alert.HasSignal(SignalHighFailureRate))
	assert.False(t, alert.HasSignal(SignalHighVelocity))
}

func TestFailedRefund(t *testing.T) {
	req := &RefundRequest{
		IdempotencyKey:        "r1",
		PaymentIdempotencyKey: "k1",
	}
	res := FailedRefund(req, decimal.NewFromInt(30), "USD", RefundFailureLimitExceeded, "over limit")

	assert.Equal(t, RefundStatusFailed, res.Status)
	assert.Equal(t, "r1", res.IdempotencyKey)
	assert.Equal(t, "k1", res.PaymentIdempotencyKey)
	assert.Equal(t, RefundFailureLimitExceeded, res.FailureCode)
	assert.True(t, res.WellFormed())
}

func TestPaymentTransaction_RoundTrip(t *testing.T) {
	req := &PaymentRequest{
		IdempotencyKey:    "k1",
		ProviderType:      ProviderTypeCard,
		Amount:            decimal.RequireFromString("100.00"),
		CurrencyCode:      "USD",
		MerchantReference: "m1",
		CustomerID:        "c1",
		CorrelationID:     "corr-1",
	}
	res := &PaymentResult{
		IdempotencyKey:        "k1",
		ProviderTransactionID: "psp-42",
		Status:                PaymentStatusSuccess,
		Amount:                decimal.RequireFromString("100.00"),
		CurrencyCode:          "USD",
		Timestamp:             time.Now().UTC(),
		Metadata: map[string]string{
			MetaAdapterName:  "stripe-card",
			MetaProviderType: "CARD",
		},
	}

	record := NewPaymentTransaction(req, res)
	assert.Equal(t, "k1", record.IdempotencyKey)
	assert.Equal(t, "stripe-card", record.AdapterName)
	assert.NotEqual(t, record.TransactionID.String(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, record.Refundable())

	replay := record.Result()
	assert.Equal(t, res.Status, replay.Status)
	assert.Equal(t, res.ProviderTransactionID, replay.ProviderTransactionID)
	assert.True(t, res.Amount.Equal(replay.Amount))
	assert.Equal(t, "stripe-card", replay.AdapterName())
	assert.Equal(t, "CARD", replay.Metadata[MetaProviderType])
	assert.True(t, replay.WellFormed())
}

func TestRefundRecord_RoundTrip(t *testing.T) {
	req := &RefundRequest{
		IdempotencyKey:        "r1",
		PaymentIdempotencyKey: "k1",
		Reason:                "customer request",
		MerchantReference:     "m1",
		CorrelationID:         "corr-2",
	}
	res := &RefundResult{
		IdempotencyKey:        "r1",
		PaymentIdempotencyKey: "k1",
		ProviderRefundID:      "rf-9",
		Status:                RefundStatusSuccess,
		Amount:                decimal.RequireFromString("30.00"),
		CurrencyCode:          "USD",
		Timestamp:             time.Now().UTC(),
	}

	record := NewRefundRecord(req, res)
	assert.Equal(t, "r1", record.RefundIdempotencyKey)
	assert.Equal(t, "customer request", record.Reason)

	replay := record.Result()
	assert.Equal(t, RefundStatusSuccess, replay.Status)
	assert.Equal(t, "rf-9", replay.ProviderRefundID)
	assert.True(t, res.Amount.Equal(replay.Amount))
}

func TestCachedResult_RoundTrip(t *testing.T) {
	res := &PaymentResult{
		IdempotencyKey: "k1",
		Status:         PaymentStatusSuccess,
		Amount:         decimal.RequireFromString("100.00"),
		CurrencyCode:   "USD",
		Timestamp:      time.Now().UTC().Truncate(time.Second),
	}

	raw, err := EncodeCachedResult(res)
	assert.NoError(t, err)

	decoded, err := DecodeCachedResult(raw)
	assert.NoError(t, err)
	assert.Equal(t, res.IdempotencyKey, decoded.IdempotencyKey)
	assert.True(t, res.Amount.Equal(decoded.Amount))
}

func TestDecodeCachedResult_Rejects(t *testing.T) {
	_, err := DecodeCachedResult([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeCachedResult([]byte(`{"v":99,"result":{}}`))
	assert.Error(t, err, "unknown version is a miss")

	_, err = DecodeCachedResult([]byte(`{"v":1,"result":{"idempotencyKey":"k1"}}`))
	assert.Error(t, err, "result missing required fields is a miss")
}

func TestRedaction(t *testing.T) {
	assert.Equal(t, "j***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***", RedactEmail("not-an-email"))
	assert.Empty(t, RedactEmail(""))

	assert.Equal(t, "192.168.x.x", RedactIP("192.168.1.44"))
	assert.Equal(t, "2001:d***", RedactIP("2001:db8::1"))
	assert.Empty(t, RedactIP(""))

	assert.Equal(t, "411111******1111", RedactCard("411111", "1111"))
	assert.Empty(t, RedactCard("", ""))
}
