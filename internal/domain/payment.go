package domain

import "time"

// PaymentStatus tracks on-chain confirmation of a payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

// Payment is a developer's on-chain payment for access to one API.
// API is nil when the referenced API row no longer exists.
type Payment struct {
	ID               string        `json:"id" db:"id"`
	DeveloperAddress string        `json:"developerAddress" db:"developer_address"`
	APIID            string        `json:"apiId" db:"api_id"`
	TransactionHash  string        `json:"transactionHash" db:"transaction_hash"`
	Amount           string        `json:"amount" db:"amount"`
	Currency         string        `json:"currency" db:"currency"`
	NumberOfTokens   int           `json:"numberOfTokens" db:"number_of_tokens"`
	TokensIssued     bool          `json:"tokensIssued" db:"tokens_issued"`
	IsVerified       bool          `json:"isVerified" db:"is_verified"`
	Status           PaymentStatus `json:"status" db:"status"`
	BlockNumber      *int64        `json:"blockNumber" db:"block_number"`
	BlockTimestamp   *time.Time    `json:"blockTimestamp" db:"block_timestamp"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`

	API    *API    `json:"-"`
	Tokens []Token `json:"-"`
}

// PurchaseStatus is the derived availability of a purchase
type PurchaseStatus string

const (
	PurchaseActive  PurchaseStatus = "active"
	PurchaseExpired PurchaseStatus = "expired"
)
