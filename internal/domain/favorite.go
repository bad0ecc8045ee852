package domain

import "time"

// Favorite is a developer's bookmark of an API
type Favorite struct {
	ID               string    `json:"id" db:"id"`
	APIID            string    `json:"apiId" db:"api_id"`
	DeveloperAddress string    `json:"developerAddress" db:"developer_address"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	API *API `json:"api,omitempty"`
}
