package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntityType is an axis over which risk features are aggregated.
type EntityType string

const (
	EntityTypeMerchant EntityType = "MERCHANT"
	EntityTypeCard     EntityType = "CARD"
	EntityTypeEmail    EntityType = "EMAIL"
	EntityTypeIP       EntityType = "IP"
)

// EntityRef identifies one aggregation entity of an event.
type EntityRef struct {
	Type EntityType
	ID   string
}

// EntityRefs derives the aggregation entities of an event, in dimension
// order MERCHANT, CARD, EMAIL, IP. Dimensions without an identity on the
// event are omitted. The CARD identity prefers the adapter-supplied
// fingerprint; the bin+last4+providerType fallback is colored by routing
// and is only a best effort toward cross-provider card identity. BNPL
// events never yield a CARD dimension.
func (e *PaymentEvent) EntityRefs() []EntityRef {
	refs := make([]EntityRef, 0, 4)
	if e.MerchantReference != "" {
		refs = append(refs, EntityRef{Type: EntityTypeMerchant, ID: e.MerchantReference})
	}
	if key := e.cardEntityKey(); key != "" {
		refs = append(refs, EntityRef{Type: EntityTypeCard, ID: key})
	}
	if e.Email != "" {
		refs = append(refs, EntityRef{Type: EntityTypeEmail, ID: strings.ToLower(e.Email)})
	}
	if e.ClientIP != "" {
		refs = append(refs, EntityRef{Type: EntityTypeIP, ID: e.ClientIP})
	}
	return refs
}

func (e *PaymentEvent) cardEntityKey() string {
	if e.ProviderType == ProviderTypeBNPL {
		return ""
	}
	if e.CardFingerprint != "" {
		return e.CardFingerprint
	}
	if e.CardBin != "" && e.CardLast4 != "" {
		return e.CardBin + ":" + e.CardLast4 + ":" + string(e.ProviderType)
	}
	return ""
}

// WindowFeatures is the point-in-time feature vector of one entity window,
// computed per evaluation over the 5-minute horizon.
type WindowFeatures struct {
	EntityID    string     `json:"entityId"`
	EntityType  EntityType `json:"entityType"`
	WindowStart time.Time  `json:"windowStart"`
	WindowEnd   time.Time  `json:"windowEnd"`

	TotalCount   int     `json:"totalCount"`
	FailureCount int     `json:"failureCount"`
	FailureRate  float64 `json:"failureRate"`

	CountLast1Min int `json:"countLast1Min"`
	CountLast5Min int `json:"countLast5Min"`

	AvgAmount      float64 `json:"avgAmount"`
	MinAmount      float64 `json:"minAmount"`
	MaxAmount      float64 `json:"maxAmount"`
	AmountVariance float64 `json:"amountVariance"`

	AmountTrend           int `json:"amountTrend"`
	IncreasingAmountCount int `json:"increasingAmountCount"`
	DecreasingAmountCount int `json:"decreasingAmountCount"`

	AvgTimeGapSeconds           float64 `json:"avgTimeGapSeconds"`
	SecondsSinceLastTransaction float64 `json:"secondsSinceLastTransaction"`

	HourOfDay int `json:"hourOfDay"`
	DayOfWeek int `json:"dayOfWeek"`
}

// SignalType is an atomic predicate that fired on a window's features.
type SignalType string

const (
	SignalHighFailureRate      SignalType = "HIGH_FAILURE_RATE"
	SignalHighEmailFailureRate SignalType = "HIGH_EMAIL_FAILURE_RATE"
	SignalHighIPFailureRate    SignalType = "HIGH_IP_FAILURE_RATE"
	SignalRepeatedFailures     SignalType = "REPEATED_FAILURES"
	SignalHighVelocity         SignalType = "HIGH_VELOCITY"
	SignalHighEmailVelocity    SignalType = "HIGH_EMAIL_VELOCITY"
	SignalHighIPVelocity       SignalType = "HIGH_IP_VELOCITY"
	SignalUnusualAmount        SignalType = "UNUSUAL_AMOUNT"
	SignalComplianceAnomaly    SignalType = "COMPLIANCE_ANOMALY"
	SignalSystemicRisk         SignalType = "SYSTEMIC_RISK" // reserved
)

// RiskLevel is the severity bucket of an alert.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// LevelForScore maps a score in [0,1] to a severity bucket.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 0.8:
		return RiskLevelCritical
	case score >= 0.6:
		return RiskLevelHigh
	case score >= 0.4:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// AlertStatus is the operational lifecycle of a persisted alert. The core
// only ever writes the initial NEW.
type AlertStatus string

const (
	AlertStatusNew           AlertStatus = "NEW"
	AlertStatusAcknowledged  AlertStatus = "ACK"
	AlertStatusInvestigating AlertStatus = "INVESTIGATING"
	AlertStatusResolved      AlertStatus = "RESOLVED"
	AlertStatusFalsePositive AlertStatus = "FALSE_POSITIVE"
	AlertStatusEscalated     AlertStatus = "ESCALATED"
)

// RiskAlert is the published artifact of a non-empty signal set whose score
// exceeded the alert threshold.
type RiskAlert struct {
	AlertID             string          `json:"alertId"`
	Timestamp           time.Time       `json:"timestamp"`
	Level               RiskLevel       `json:"level"`
	SignalTypes         []SignalType    `json:"signalTypes"`
	RiskScore           float64         `json:"riskScore"`
	EntityID            string          `json:"entityId"`
	EntityType          EntityType      `json:"entityType"`
	RelatedEventIDs     []string        `json:"relatedEventIds"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	Summary             string          `json:"summary"`
	DetailedExplanation string          `json:"detailedExplanation,omitempty"`
}

// HasSignal reports whether the alert carries the given signal.
func (a *RiskAlert) HasSignal(s SignalType) bool {
	for _, st := range a.SignalTypes {
		if st == s {
			return true
		}
	}
	return false
}

// WebhookSubscription routes alerts for one entity to one callback URL.
// A non-empty Secret makes deliveries carry an HMAC-SHA256 signature of
// the payload; the secret itself never appears in API responses.
type WebhookSubscription struct {
	EntityID   string    `json:"entityId"`
	WebhookURL string    `json:"webhookUrl"`
	Secret     string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
