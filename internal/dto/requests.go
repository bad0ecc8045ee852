package dto

// RegisterProviderRequest registers the caller's wallet as a provider
type RegisterProviderRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Website     *string `json:"website" binding:"omitempty,url"`
}

// CreateAPIRequest lists a new API under the caller's provider
type CreateAPIRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Description   string `json:"description"`
	Category      string `json:"category" binding:"required,max=100"`
	BaseURL       string `json:"baseUrl" binding:"required,url"`
	PricePerToken string `json:"pricePerToken" binding:"required"`
	Currency      string `json:"currency" binding:"required,max=16"`
}

// SetAPIStatusRequest activates or deactivates an API
type SetAPIStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	DeveloperAddress string  `json:"developerAddress" binding:"required"`
	Rating           int     `json:"rating" binding:"required"`
	Comment          *string `json:"comment" binding:"omitempty,max=2000"`
}

// AddFavoriteRequest bookmarks an API for a developer
type AddFavoriteRequest struct {
	DeveloperAddress string `json:"developerAddress" binding:"required"`
	APIID            string `json:"apiId" binding:"required"`
}

// ConsumeTokenRequest is sent by a provider gateway for each metered call
type ConsumeTokenRequest struct {
	Token          string `json:"token" binding:"required"`
	Endpoint       string `json:"endpoint" binding:"required"`
	StatusCode     int    `json:"statusCode"`
	ResponseTimeMs int    `json:"responseTimeMs" binding:"gte=0"`
}
