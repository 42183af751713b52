package reshadx

import (
	"context"

	"github.com/reshadx/reshadx-go/internal/api"
)

// Analytics grouping defaults.
const (
	DefaultSpendingGroupBy = "category"
	DefaultCashflowGroupBy = "month"
)

// TransactionLocation is where a transaction took place.
type TransactionLocation struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Transaction is a posted or pending account transaction. Amounts are in
// minor currency units.
type Transaction struct {
	TransactionID    string               `json:"transactionId"`
	AccountID        string               `json:"accountId"`
	Amount           int64                `json:"amount"`
	Currency         string               `json:"currency"`
	Type             string               `json:"type"`
	Category         string               `json:"category"`
	Subcategory      string               `json:"subcategory,omitempty"`
	Description      string               `json:"description"`
	MerchantName     string               `json:"merchantName,omitempty"`
	MerchantCategory string               `json:"merchantCategory,omitempty"`
	Date             string               `json:"date"`
	PostingDate      string               `json:"postingDate,omitempty"`
	Pending          bool                 `json:"pending"`
	Reference        string               `json:"reference,omitempty"`
	Balance          *int64               `json:"balance,omitempty"`
	Location         *TransactionLocation `json:"location,omitempty"`
}

// TransactionList is one page of transactions.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// TransactionSync reports the outcome of TransactionsService.Sync.
type TransactionSync struct {
	Added    int    `json:"added"`
	Modified int    `json:"modified"`
	Removed  int    `json:"removed"`
	SyncedAt string `json:"syncedAt"`
}

// TransactionListParams filters TransactionsService.List. Dates use the
// YYYY-MM-DD format. Page defaults to 1 and Limit to 50.
type TransactionListParams struct {
	ItemID     string   `json:"itemId"`
	AccountID  string   `json:"accountId"`
	StartDate  string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Categories []string `json:"categories"`
	MinAmount  *int64   `json:"minAmount"`
	MaxAmount  *int64   `json:"maxAmount"`
	Page       int      `json:"page" validate:"gte=0"`
	Limit      int      `json:"limit" validate:"gte=0,max=500"`
}

// TransactionSyncParams are the inputs to TransactionsService.Sync.
type TransactionSyncParams struct {
	ItemID    string `json:"itemId" validate:"required"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AnalyticsParams selects the period and grouping of an analytics report.
type AnalyticsParams struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	// GroupBy defaults per report: category for spending, month otherwise.
	GroupBy string `json:"groupBy"`
}

// SpendingAnalyticsParams are the inputs to TransactionsService.SpendingAnalytics.
type SpendingAnalyticsParams struct {
	AnalyticsParams
	AccountIDs []string `json:"accountIds"`
}

// SpendingDataItem is one group of a spending report.
type SpendingDataItem struct {
	Key                string `json:"key"`
	TotalSpending      int64  `json:"totalSpending"`
	TotalIncome        int64  `json:"totalIncome"`
	NetCashFlow        int64  `json:"netCashFlow"`
	TransactionCount   int    `json:"transactionCount"`
	AverageTransaction int64  `json:"averageTransaction"`
}

// TopCategory is a category ranked by spend.
type TopCategory struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// SpendingSummary totals a spending report.
type SpendingSummary struct {
	TotalSpending int64         `json:"totalSpending"`
	TotalIncome   int64         `json:"totalIncome"`
	NetCashFlow   int64         `json:"netCashFlow"`
	TopCategories []TopCategory `json:"topCategories"`
}

// AnalyticsPeriod is the date range an analytics report covers.
type AnalyticsPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SpendingAnalytics is a spending report.
type SpendingAnalytics struct {
	Period  AnalyticsPeriod    `json:"period"`
	GroupBy string             `json:"groupBy"`
	Data    []SpendingDataItem `json:"data"`
	Summary SpendingSummary    `json:"summary"`
}

// CategorizeParams sets the category of a transaction.
type CategorizeParams struct {
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory,omitempty"`
}

// TransactionSearchParams are the inputs to TransactionsService.Search.
type TransactionSearchParams struct {
	SearchTerm string `json:"searchTerm" validate:"required"`
	StartDate  string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Page       int    `json:"page" validate:"gte=0"`
	Limit      int    `json:"limit" validate:"gte=0,max=500"`
}

// TransactionsService reads, syncs and analyzes transactions.
type TransactionsService struct{ service }

// List returns one page of transactions matching params.
func (s *TransactionsService) List(ctx context.Context, params TransactionListParams) (*TransactionList, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	q := pageQuery(api.Query{}, params.Page, params.Limit, defaultLimit)
	setIf(q, "itemId", params.ItemID)
	setIf(q, "accountId", params.AccountID)
	setIf(q, "startDate", params.StartDate)
	setIf(q, "endDate", params.EndDate)
	if len(params.Categories) > 0 {
		q["categories"] = params.Categories
	}
	if params.MinAmount != nil {
		q["minAmount"] = *params.MinAmount
	}
	if params.MaxAmount != nil {
		q["maxAmount"] = *params.MaxAmount
	}

	return s.list(ctx, "/transactions", q)
}

// Get returns a single transaction.
func (s *TransactionsService) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	if err := requireID("transactionId", transactionID); err != nil {
		return nil, err
	}

	var txn Transaction
	req := &api.Request{Method: "GET", Path: resourcePath("/transactions", transactionID)}
	if err := s.do(ctx, req, &txn, ResourceTransaction); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Sync pulls new transactions for an item from its institution.
func (s *TransactionsService) Sync(ctx context.Context, params TransactionSyncParams) (*TransactionSync, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var out TransactionSync
	if err := s.do(ctx, &api.Request{Method: "POST", Path: "/transactions/sync", Body: params}, &out, ResourceItem); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpendingAnalytics reports spending over a period, grouped by category
// unless params say otherwise.
func (s *TransactionsService) SpendingAnalytics(ctx context.Context, params SpendingAnalyticsParams) (*SpendingAnalytics, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	q := analyticsQuery(params.AnalyticsParams, DefaultSpendingGroupBy)
	if len(params.AccountIDs) > 0 {
		q["accountIds"] = params.AccountIDs
	}

	var out SpendingAnalytics
	if err := s.do(ctx, &api.Request{Method: "GET", Path: "/transactions/analytics/spending", Query: q}, &out, ResourceUnknown); err != nil {
		return nil, err
	}
	return &out, nil
}

// IncomeAnalytics reports income over a period, grouped by month by default.
func (s *TransactionsService) IncomeAnalytics(ctx context.Context, params AnalyticsParams) (map[string]any, error) {
	return s.analytics(ctx, "/transactions/analytics/income", params)
}

// CashflowAnalytics reports net cash flow over a period, grouped by month by
// default.
func (s *TransactionsService) CashflowAnalytics(ctx context.Context, params AnalyticsParams) (map[string]any, error) {
	return s.analytics(ctx, "/transactions/analytics/cashflow", params)
}

// Categorize overrides the category of a transaction.
func (s *TransactionsService) Categorize(ctx context.Context, transactionID string, params CategorizeParams) (*Transaction, error) {
	if err := requireID("transactionId", transactionID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var txn Transaction
	req := &api.Request{
		Method: "PATCH",
		Path:   resourcePath("/transactions", transactionID, "categorize"),
		Body:   params,
	}
	if err := s.do(ctx, req, &txn, ResourceTransaction); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Search returns transactions matching a free-text term.
func (s *TransactionsService) Search(ctx context.Context, params TransactionSearchParams) (*TransactionList, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	q := pageQuery(api.Query{"searchTerm": params.SearchTerm}, params.Page, params.Limit, defaultLimit)
	setIf(q, "startDate", params.StartDate)
	setIf(q, "endDate", params.EndDate)

	return s.list(ctx, "/transactions/search", q)
}

func (s *TransactionsService) list(ctx context.Context, path string, q api.Query) (*TransactionList, error) {
	var list TransactionList
	if err := s.do(ctx, &api.Request{Method: "GET", Path: path, Query: q}, &list, ResourceUnknown); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *TransactionsService) analytics(ctx context.Context, path string, params AnalyticsParams) (map[string]any, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	req := &api.Request{Method: "GET", Path: path, Query: analyticsQuery(params, DefaultCashflowGroupBy)}
	return s.object(ctx, req, ResourceUnknown)
}

func analyticsQuery(p AnalyticsParams, defaultGroupBy string) api.Query {
	groupBy := p.GroupBy
	if groupBy == "" {
		groupBy = defaultGroupBy
	}
	return api.Query{
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
		"groupBy":   groupBy,
	}
}
