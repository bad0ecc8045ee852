package repository

import (
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Payment  PaymentRepository
	Token    TokenRepository
	Provider ProviderRepository
	API      APIRepository
	Review   ReviewRepository
	Favorite FavoriteRepository
	UsageLog UsageLogRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Payment:  NewPaymentRepository(db),
		Token:    NewTokenRepository(db),
		Provider: NewProviderRepository(db),
		API:      NewAPIRepository(db),
		Review:   NewReviewRepository(db),
		Favorite: NewFavoriteRepository(db),
		UsageLog: NewUsageLogRepository(db),
	}
}
