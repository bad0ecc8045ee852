package service

import (
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/shopspring/decimal"
)

// PurchasedAPI describes the API a purchase grants access to
type PurchasedAPI struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
}

// PurchaseProvider is the seller of a purchased API
type PurchaseProvider struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}

// TokenCounts is the per-state breakdown of a purchase's tokens
type TokenCounts struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Used    int `json:"used"`
	Expired int `json:"expired"`
}

// Purchase is one verified payment as seen by the buyer
type Purchase struct {
	PaymentID       string                `json:"paymentId"`
	TransactionHash string                `json:"transactionHash"`
	API             PurchasedAPI          `json:"api"`
	Provider        *PurchaseProvider     `json:"provider"`
	Amount          string                `json:"amount"`
	Currency        string                `json:"currency"`
	NumberOfTokens  int                   `json:"numberOfTokens"`
	TokensIssued    bool                  `json:"tokensIssued"`
	BlockNumber     *int64                `json:"blockNumber"`
	BlockTimestamp  *time.Time            `json:"blockTimestamp"`
	PurchasedAt     time.Time             `json:"purchasedAt"`
	Tokens          TokenCounts           `json:"tokens"`
	Status          domain.PurchaseStatus `json:"status"`
	ExpiresAt       *time.Time            `json:"expiresAt"`
}

// PurchaseSummary totals a list of purchases
type PurchaseSummary struct {
	TotalAPIsPurchased   int     `json:"totalAPIsPurchased"`
	TotalTokensPurchased int     `json:"totalTokensPurchased"`
	ActiveTokens         int     `json:"activeTokens"`
	UsedTokens           int     `json:"usedTokens"`
	ExpiredTokens        int     `json:"expiredTokens"`
	TotalSpent           float64 `json:"totalSpent"`
	ActivePurchases      int     `json:"activePurchases"`
}

// BuildPurchase derives the purchase view of a payment at now.
// It reports false for orphaned payments whose API no longer exists.
func BuildPurchase(p *domain.Payment, now time.Time) (Purchase, bool) {
	if p == nil || p.API == nil {
		return Purchase{}, false
	}

	tokens := domain.ClassifyTokens(p.Tokens, now)

	// unparsable amounts are shown raw
	displayAmount := p.Amount
	if amount, err := decimal.NewFromString(p.Amount); err == nil {
		displayAmount = amount.String()
	}

	purchase := Purchase{
		PaymentID:       p.ID,
		TransactionHash: p.TransactionHash,
		API: PurchasedAPI{
			ID:          p.API.ID,
			Name:        p.API.Name,
			Description: p.API.Description,
			Category:    p.API.Category,
			IsActive:    p.API.IsActive,
		},
		Amount:         displayAmount,
		Currency:       p.Currency,
		NumberOfTokens: p.NumberOfTokens,
		TokensIssued:   p.TokensIssued,
		BlockNumber:    p.BlockNumber,
		BlockTimestamp: p.BlockTimestamp,
		PurchasedAt:    p.CreatedAt,
		Tokens: TokenCounts{
			Total:   tokens.Total(),
			Active:  len(tokens.Active),
			Used:    len(tokens.Used),
			Expired: len(tokens.Expired),
		},
		Status:    tokens.Status(),
		ExpiresAt: tokens.LatestExpiry(),
	}

	if prov := p.API.Provider; prov != nil {
		purchase.Provider = &PurchaseProvider{
			ID:            prov.ID,
			Name:          prov.Name,
			WalletAddress: prov.WalletAddress,
		}
	}

	return purchase, true
}

// BuildPurchases maps payments to purchases, returning the IDs of the orphaned payments it skipped
func BuildPurchases(payments []*domain.Payment, now time.Time) ([]Purchase, []string) {
	purchases := make([]Purchase, 0, len(payments))
	var skipped []string

	for _, p := range payments {
		purchase, ok := BuildPurchase(p, now)
		if !ok {
			if p != nil {
				skipped = append(skipped, p.ID)
			}
			continue
		}
		purchases = append(purchases, purchase)
	}

	return purchases, skipped
}

// spentAmount parses a purchase amount; unparsable amounts count as zero
func spentAmount(amount string) decimal.Decimal {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Summarize totals the given purchases
func Summarize(purchases []Purchase) PurchaseSummary {
	var (
		summary PurchaseSummary
		spent   decimal.Decimal
	)

	for _, p := range purchases {
		summary.TotalAPIsPurchased++
		summary.TotalTokensPurchased += p.Tokens.Total
		summary.ActiveTokens += p.Tokens.Active
		summary.UsedTokens += p.Tokens.Used
		summary.ExpiredTokens += p.Tokens.Expired
		spent = spent.Add(spentAmount(p.Amount))
		if p.Status == domain.PurchaseActive {
			summary.ActivePurchases++
		}
	}

	summary.TotalSpent = spent.InexactFloat64()
	return summary
}
