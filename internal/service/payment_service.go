package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/internal/repository"
	"github.com/shopspring/decimal"
)

// TransactionAPI names the API a payment was made for
type TransactionAPI struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction is one entry of a developer's payment history
type Transaction struct {
	ID              string               `json:"id"`
	TransactionHash string               `json:"transactionHash"`
	API             *TransactionAPI      `json:"api"`
	ProviderName    *string              `json:"providerName"`
	Amount          string               `json:"amount"`
	Currency        string               `json:"currency"`
	NumberOfTokens  int                  `json:"numberOfTokens"`
	TokensIssued    bool                 `json:"tokensIssued"`
	IsVerified      bool                 `json:"isVerified"`
	Status          domain.PaymentStatus `json:"status"`
	BlockNumber     *int64               `json:"blockNumber"`
	BlockTimestamp  *time.Time           `json:"blockTimestamp"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// PaymentHistory is one page of transactions
type PaymentHistory struct {
	Transactions []Transaction
	Total        int
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment history service
func NewPaymentService(paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo}
}

// History lists every payment of the developer, newest first
func (s *paymentService) History(ctx context.Context, developerAddress string, filter domain.PaymentFilter, page PageRequest) (*PaymentHistory, error) {
	if !slices.Contains(domain.HistoryFilters, filter) {
		return nil, fmt.Errorf("%w: status %s is not valid for payment history", ErrValidation, filter)
	}

	payments, total, err := listPaymentPage(ctx, s.paymentRepo, repository.PaymentQuery{
		DeveloperAddress: developerAddress,
		Filter:           filter,
		Now:              time.Now(),
		Offset:           page.Offset(),
		Limit:            page.Limit,
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(payments))
	for _, p := range payments {
		transactions = append(transactions, newTransaction(p))
	}

	return &PaymentHistory{Transactions: transactions, Total: total}, nil
}

// newTransaction keeps payments whose API was removed, with a null api
func newTransaction(p *domain.Payment) Transaction {
	tx := Transaction{
		ID:              p.ID,
		TransactionHash: p.TransactionHash,
		Amount:          p.Amount,
		Currency:        p.Currency,
		NumberOfTokens:  p.NumberOfTokens,
		TokensIssued:    p.TokensIssued,
		IsVerified:      p.IsVerified,
		Status:          p.Status,
		BlockNumber:     p.BlockNumber,
		BlockTimestamp:  p.BlockTimestamp,
		CreatedAt:       p.CreatedAt,
	}
	if amount, err := decimal.NewFromString(p.Amount); err == nil {
		tx.Amount = amount.String()
	}
	if p.API != nil {
		tx.API = &TransactionAPI{ID: p.API.ID, Name: p.API.Name}
		if p.API.Provider != nil {
			name := p.API.Provider.Name
			tx.ProviderName = &name
		}
	}
	return tx
}
