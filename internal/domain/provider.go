package domain

import "time"

// Provider is a seller of APIs, paid to WalletAddress
type Provider struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	WalletAddress string    `json:"walletAddress" db:"wallet_address"`
	Description   *string   `json:"description" db:"description"`
	Website       *string   `json:"website" db:"website"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
