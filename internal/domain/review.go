package domain

import "time"

type Review struct {
	ID               string    `json:"id" db:"id"`
	APIID            string    `json:"apiId" db:"api_id"`
	DeveloperAddress string    `json:"developerAddress" db:"developer_address"`
	Rating           int       `json:"rating" db:"rating"`
	Comment          *string   `json:"comment" db:"comment"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// RatingSummary aggregates the reviews of one API
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

const (
	MinRating = 1
	MaxRating = 5
)
