package domain

import "time"

// UsageLog records one API call paid for with a usage token
type UsageLog struct {
	ID               string    `json:"id" db:"id"`
	TokenID          string    `json:"tokenId" db:"token_id"`
	APIID            string    `json:"apiId" db:"api_id"`
	DeveloperAddress string    `json:"developerAddress" db:"developer_address"`
	Endpoint         string    `json:"endpoint" db:"endpoint"`
	StatusCode       int       `json:"statusCode" db:"status_code"`
	ResponseTimeMs   int       `json:"responseTimeMs" db:"response_time_ms"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Succeeded treats any non-error HTTP status as a successful call
func (u UsageLog) Succeeded() bool {
	return u.StatusCode > 0 && u.StatusCode < 400
}

// UsageTotals is an aggregate over a set of usage logs
type UsageTotals struct {
	Calls             int        `json:"calls"`
	AvgResponseTimeMs float64    `json:"avgResponseTimeMs"`
	LastCallAt        *time.Time `json:"lastCallAt"`
}

// UsageFilter narrows usage aggregates. Zero values mean "any".
type UsageFilter struct {
	DeveloperAddress string
	APIID            string
	Since            time.Time
	Success          *bool
}
