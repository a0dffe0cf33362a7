package models

// Period selects the reporting window for payment statistics
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodAll     Period = "all"
)

// Valid reports whether p is one of the known reporting periods
func (p Period) Valid() bool {
	switch p {
	case PeriodMonth, PeriodQuarter, PeriodYear, PeriodAll:
		return true
	}
	return false
}

// PaymentStats is a read model computed on demand from a payment set;
// it is never stored.
type PaymentStats struct {
	TotalReceived  float64 `json:"total_received"`
	TotalPending   float64 `json:"total_pending"`
	TotalOverdue   float64 `json:"total_overdue"`
	CollectionRate float64 `json:"collection_rate"` // percent, 2 decimals
	AverageDelay   float64 `json:"average_delay"`   // whole days, paid payments only
	PaymentCount   int     `json:"payment_count"`
}
