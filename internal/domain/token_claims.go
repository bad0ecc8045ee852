package domain

import "time"

// ProviderClaims identifies the wallet behind a provider-management request
type ProviderClaims struct {
	WalletAddress string `json:"walletAddress"`
	Exp           int64  `json:"exp"`
	Iat           int64  `json:"iat"`
}

func (pc ProviderClaims) IsExpired(now time.Time) bool {
	return now.Unix() > pc.Exp
}
