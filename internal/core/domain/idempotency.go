package domain

import (
	"encoding/json"
	"fmt"
)

// CachedResultVersion is the hot-cache envelope schema version.
const CachedResultVersion = 1

// cachedResult is the versioned envelope stored in the hot idempotency
// tier. The explicit version lets the schema grow without poisoning old
// entries; unknown versions decode as a miss.
type cachedResult struct {
	V      int            `json:"v"`
	Result *PaymentResult `json:"result"`
}

// EncodeCachedResult serializes a result into the hot-cache envelope.
func EncodeCachedResult(res *PaymentResult) ([]byte, error) {
	raw, err := json.Marshal(cachedResult{V: CachedResultVersion, Result: res})
	if err != nil {
		return nil, fmt.Errorf("encode cached result: %w", err)
	}
	return raw, nil
}

// DecodeCachedResult parses a hot-cache envelope. A version mismatch or a
// result failing WellFormed is a decode error; callers treat it as a miss,
// distinct from cache connectivity failures.
func DecodeCachedResult(raw []byte) (*PaymentResult, error) {
	var env cachedResult
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	if env.V != CachedResultVersion {
		return nil, fmt.Errorf("decode cached result: unsupported version %d", env.V)
	}
	if !env.Result.WellFormed() {
		return nil, fmt.Errorf("decode cached result: missing required fields")
	}
	return env.Result, nil
}
