package repository

import (
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/prperemyshlev/api-marketplace/internal/domain"
)

// PaymentQuery selects one page of a developer's payments
type PaymentQuery struct {
	DeveloperAddress string
	VerifiedOnly     bool
	Filter           domain.PaymentFilter
	Now              time.Time
	Offset           int
	Limit            int
}

var paymentColumns = []string{
	"p.id", "p.developer_address", "p.api_id", "p.transaction_hash", "p.amount::text", "p.currency",
	"p.number_of_tokens", "p.tokens_issued", "p.is_verified", "p.status",
	"p.block_number", "p.block_timestamp", "p.created_at",
	"a.id", "a.provider_id", "a.name", "a.description", "a.category", "a.is_active",
	"pv.id", "pv.name", "pv.wallet_address", "pv.is_active",
}

const activeTokenSubquery = "SELECT 1 FROM tokens t WHERE t.payment_id = p.id AND t.is_used = FALSE AND t.expires_at > "

func newPaymentSelect(columns ...string) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("payments p")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "apis a", "a.id = p.api_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "providers pv", "pv.id = a.provider_id")
	return sb
}

// buildPaymentConditions turns the query into WHERE predicates
func buildPaymentConditions(sb *sqlbuilder.SelectBuilder, q PaymentQuery) ([]string, error) {
	conds := []string{sb.Equal("p.developer_address", q.DeveloperAddress)}

	if q.VerifiedOnly {
		conds = append(conds, sb.Equal("p.is_verified", true))
	}

	switch q.Filter {
	case domain.FilterAll:
	case domain.FilterActiveOnly:
		conds = append(conds, "EXISTS ("+activeTokenSubquery+sb.Args.Add(q.Now)+")")
	case domain.FilterExpiredOnly:
		// exact complement of FilterActiveOnly, so payments without tokens count as expired
		conds = append(conds, "NOT EXISTS ("+activeTokenSubquery+sb.Args.Add(q.Now)+")")
	case domain.FilterVerifiedOnly:
		conds = append(conds, sb.Equal("p.is_verified", true))
	case domain.FilterPendingOnly:
		conds = append(conds,
			sb.Equal("p.is_verified", false),
			sb.Equal("p.status", string(domain.PaymentPending)),
		)
	case domain.FilterFailedOnly:
		conds = append(conds, sb.Equal("p.status", string(domain.PaymentFailed)))
	default:
		return nil, fmt.Errorf("unsupported payment filter %s", q.Filter)
	}

	return conds, nil
}

func buildPaymentListQuery(q PaymentQuery) (string, []interface{}, error) {
	sb := newPaymentSelect(paymentColumns...)

	conds, err := buildPaymentConditions(sb, q)
	if err != nil {
		return "", nil, err
	}
	sb.Where(conds...)
	sb.OrderBy("p.created_at DESC", "p.id")
	sb.Offset(q.Offset)
	sb.Limit(q.Limit)

	query, args := sb.Build()
	return query, args, nil
}

func buildPaymentCountQuery(q PaymentQuery) (string, []interface{}, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("payments p")

	conds, err := buildPaymentConditions(sb, q)
	if err != nil {
		return "", nil, err
	}
	sb.Where(conds...)

	query, args := sb.Build()
	return query, args, nil
}
