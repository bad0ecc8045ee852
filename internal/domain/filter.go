package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PaymentFilter is the closed set of status filters accepted by the purchase
// and payment-history listings
type PaymentFilter int

const (
	FilterAll PaymentFilter = iota
	FilterActiveOnly
	FilterExpiredOnly
	FilterVerifiedOnly
	FilterPendingOnly
	FilterFailedOnly
)

var ErrUnknownFilter = errors.New("unknown status filter")

var filterNames = map[PaymentFilter]string{
	FilterAll:          "",
	FilterActiveOnly:   "active",
	FilterExpiredOnly:  "expired",
	FilterVerifiedOnly: "verified",
	FilterPendingOnly:  "pending",
	FilterFailedOnly:   "failed",
}

// PurchaseFilters are the filters valid for purchased APIs
var PurchaseFilters = []PaymentFilter{FilterAll, FilterActiveOnly, FilterExpiredOnly}

// HistoryFilters are the filters valid for payment history
var HistoryFilters = []PaymentFilter{FilterAll, FilterVerifiedOnly, FilterPendingOnly, FilterFailedOnly}

func (f PaymentFilter) String() string {
	if name, ok := filterNames[f]; ok {
		if name == "" {
			return "all"
		}
		return name
	}
	return fmt.Sprintf("PaymentFilter(%d)", int(f))
}

// ParsePaymentFilter resolves a query value against the allowed filters.
// An empty value means FilterAll.
func ParsePaymentFilter(raw string, allowed []PaymentFilter) (PaymentFilter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, f := range allowed {
		if filterNames[f] == raw {
			return f, nil
		}
	}

	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		if f != FilterAll {
			names = append(names, filterNames[f])
		}
	}
	return FilterAll, fmt.Errorf("%w %q, expected one of %s", ErrUnknownFilter, raw, strings.Join(names, ", "))
}
