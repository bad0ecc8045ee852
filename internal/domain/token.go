package domain

import "time"

// Token is a usage token issued for a verified payment. One token gates one API call.
type Token struct {
	ID        string     `json:"id" db:"id"`
	PaymentID string     `json:"paymentId" db:"payment_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	IsUsed    bool       `json:"isUsed" db:"is_used"`
	UsedAt    *time.Time `json:"usedAt" db:"used_at"`
	ExpiresAt time.Time  `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// TokenState is the lifecycle bucket a token falls into at a given instant
type TokenState string

const (
	TokenActive  TokenState = "active"
	TokenUsed    TokenState = "used"
	TokenExpired TokenState = "expired"
)

// State reports the token's state at now. Used wins over expiry.
func (t Token) State(now time.Time) TokenState {
	switch {
	case t.IsUsed:
		return TokenUsed
	case t.ExpiresAt.After(now):
		return TokenActive
	default:
		return TokenExpired
	}
}

// TokenClassification partitions a payment's tokens by state
type TokenClassification struct {
	Active  []Token
	Used    []Token
	Expired []Token
}

// ClassifyTokens splits tokens into active, used and expired buckets.
// Every token lands in exactly one bucket.
func ClassifyTokens(tokens []Token, now time.Time) TokenClassification {
	var c TokenClassification
	for _, t := range tokens {
		switch t.State(now) {
		case TokenActive:
			c.Active = append(c.Active, t)
		case TokenUsed:
			c.Used = append(c.Used, t)
		default:
			c.Expired = append(c.Expired, t)
		}
	}
	return c
}

func (c TokenClassification) Total() int {
	return len(c.Active) + len(c.Used) + len(c.Expired)
}

// Status is active while at least one token is still spendable
func (c TokenClassification) Status() PurchaseStatus {
	if len(c.Active) > 0 {
		return PurchaseActive
	}
	return PurchaseExpired
}

// LatestExpiry returns the furthest expiry among active tokens, or nil when none are active
func (c TokenClassification) LatestExpiry() *time.Time {
	if len(c.Active) == 0 {
		return nil
	}
	latest := c.Active[0].ExpiresAt
	for _, t := range c.Active[1:] {
		if t.ExpiresAt.After(latest) {
			latest = t.ExpiresAt
		}
	}
	return &latest
}
