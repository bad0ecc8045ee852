package domain

import "time"

// API is a third-party API listed by a provider. Provider is nil when not loaded or missing.
type API struct {
	ID            string    `json:"id" db:"id"`
	ProviderID    string    `json:"providerId" db:"provider_id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Category      string    `json:"category" db:"category"`
	BaseURL       string    `json:"baseUrl" db:"base_url"`
	PricePerToken string    `json:"pricePerToken" db:"price_per_token"`
	Currency      string    `json:"currency" db:"currency"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Provider *Provider `json:"provider,omitempty"`
}

// APIListing is an API as shown in the catalog, with its rating aggregate
type APIListing struct {
	API
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// Available reports whether the API and, when loaded, its provider are both active
func (a *API) Available() bool {
	if !a.IsActive {
		return false
	}
	return a.Provider == nil || a.Provider.IsActive
}
