package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

// usageLogRepository implements UsageLogRepository interface
type usageLogRepository struct {
	db *database.Postgres
}

// NewUsageLogRepository creates a new usage log repository
func NewUsageLogRepository(db *database.Postgres) UsageLogRepository {
	return &usageLogRepository{db: db}
}

func buildUsageAggregateQuery(filter domain.UsageFilter) (string, []interface{}) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)", "COALESCE(AVG(response_time_ms)::float8, 0)", "MAX(created_at)")
	sb.From("usage_logs")

	var conds []string
	if filter.DeveloperAddress != "" {
		conds = append(conds, sb.Equal("developer_address", filter.DeveloperAddress))
	}
	if filter.APIID != "" {
		conds = append(conds, sb.Equal("api_id", filter.APIID))
	}
	if !filter.Since.IsZero() {
		conds = append(conds, sb.GreaterEqualThan("created_at", filter.Since))
	}
	if filter.Success != nil {
		if *filter.Success {
			conds = append(conds, sb.Between("status_code", 1, 399))
		} else {
			conds = append(conds, sb.Or(
				sb.GreaterEqualThan("status_code", 400),
				sb.LessEqualThan("status_code", 0),
			))
		}
	}
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	return sb.Build()
}

// Aggregate counts calls and averages response times over the filtered logs
func (r *usageLogRepository) Aggregate(ctx context.Context, filter domain.UsageFilter) (domain.UsageTotals, error) {
	query, args := buildUsageAggregateQuery(filter)

	var (
		totals   domain.UsageTotals
		lastCall sql.NullTime
	)
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&totals.Calls, &totals.AvgResponseTimeMs, &lastCall); err != nil {
		return domain.UsageTotals{}, fmt.Errorf("failed to aggregate usage logs: %w", err)
	}

	if lastCall.Valid {
		totals.LastCallAt = &lastCall.Time
	}

	return totals, nil
}
