package assistant

import "github.com/shopspring/decimal"

// CaptionTemplate is one suggested social media post for a business
type CaptionTemplate struct {
	Platform string `json:"platform"`
	Caption  string `json:"caption"`
}

// MonthlyReport is a single month of business figures fed into the
// performance analysis
type MonthlyReport struct {
	Month        string          `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	SalesCount   int             `json:"sales_count"`
	NewCustomers int             `json:"new_customers"`
	Notes        string          `json:"notes,omitempty"`
}

// AnalysisResponse wraps the generated performance summary
type AnalysisResponse struct {
	Summary string `json:"summary"`
}
