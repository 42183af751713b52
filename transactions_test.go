package reshadx

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactions_List(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, ok(`{
		"transactions": [{"transactionId":"txn_1","amount":-2500,"currency":"GHS","category":"FOOD","date":"2024-03-02"}],
		"pagination": {"total": 1, "page": 1, "limit": 50, "hasMore": false}
	}`))
	c := api.client()

	t.Run("defaults", func(t *testing.T) {
		list, err := c.Transactions.List(context.Background(), TransactionListParams{})
		require.NoError(t, err)

		assert.Equal(t, "/v1/transactions", api.last().Path)
		assert.Equal(t, url.Values{"page": {"1"}, "limit": {"50"}}, api.last().Query)
		require.Len(t, list.Transactions, 1)
		assert.Equal(t, int64(-2500), list.Transactions[0].Amount)
		assert.Equal(t, 1, list.Pagination.Total)
	})

	t.Run("filters", func(t *testing.T) {
		minAmount, maxAmount := int64(100), int64(0)
		_, err := c.Transactions.List(context.Background(), TransactionListParams{
			AccountID:  "acc_1",
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-31",
			Categories: []string{"FOOD", "TRANSPORT"},
			MinAmount:  &minAmount,
			MaxAmount:  &maxAmount,
			Page:       3,
			Limit:      10,
		})
		require.NoError(t, err)

		q := api.last().Query
		assert.Equal(t, "acc_1", q.Get("accountId"))
		assert.Equal(t, "2024-01-01", q.Get("startDate"))
		assert.Equal(t, "2024-01-31", q.Get("endDate"))
		assert.Equal(t, []string{"FOOD", "TRANSPORT"}, q["categories"])
		assert.Equal(t, "100", q.Get("minAmount"))
		assert.Equal(t, "0", q.Get("maxAmount"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.False(t, q.Has("itemId"))
	})
}

func TestTransactions_Validation(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, ok(`{}`))
	c := api.client()
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"bad start date", func() error {
			_, err := c.Transactions.List(ctx, TransactionListParams{StartDate: "01/02/2024"})
			return err
		}, "startDate"},
		{"limit too large", func() error {
			_, err := c.Transactions.List(ctx, TransactionListParams{Limit: 1000})
			return err
		}, "limit"},
		{"sync item", func() error {
			_, err := c.Transactions.Sync(ctx, TransactionSyncParams{})
			return err
		}, "itemId"},
		{"analytics dates", func() error {
			_, err := c.Transactions.IncomeAnalytics(ctx, AnalyticsParams{StartDate: "2024-01-01"})
			return err
		}, "endDate"},
		{"spending dates", func() error {
			_, err := c.Transactions.SpendingAnalytics(ctx, SpendingAnalyticsParams{})
			return err
		}, "startDate"},
		{"categorize id", func() error {
			_, err := c.Transactions.Categorize(ctx, "", CategorizeParams{Category: "FOOD"})
			return err
		}, "transactionId"},
		{"categorize category", func() error {
			_, err := c.Transactions.Categorize(ctx, "txn_1", CategorizeParams{})
			return err
		}, "category"},
		{"search term", func() error {
			_, err := c.Transactions.Search(ctx, TransactionSearchParams{})
			return err
		}, "searchTerm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *Error
			require.ErrorAs(t, tt.call(), &apiErr)
			assert.Equal(t, CodeValidation, apiErr.Code)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}
	assert.Zero(t, api.count())
}

func TestTransactions_Sync(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, ok(`{"added":12,"modified":1,"removed":0,"syncedAt":"2024-03-02T00:00:00Z"}`))

	out, err := api.client().Transactions.Sync(context.Background(), TransactionSyncParams{ItemID: "item_1", StartDate: "2024-01-01"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, api.last().Method)
	assert.Equal(t, "/v1/transactions/sync", api.last().Path)
	assert.Equal(t, map[string]any{"itemId": "item_1", "startDate": "2024-01-01"}, api.last().Body)
	assert.Equal(t, 12, out.Added)
}

func TestTransactions_Analytics(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, ok(`{
		"period": {"startDate": "2024-01-01", "endDate": "2024-01-31"},
		"groupBy": "category",
		"data": [{"key": "FOOD", "totalSpending": 4200, "transactionCount": 7}],
		"summary": {"totalSpending": 4200, "topCategories": [{"category": "FOOD", "amount": 4200, "percentage": 100}]}
	}`))
	c := api.client()
	ctx := context.Background()
	period := AnalyticsParams{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	report, err := c.Transactions.SpendingAnalytics(ctx, SpendingAnalyticsParams{
		AnalyticsParams: period,
		AccountIDs:      []string{"acc_1", "acc_2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/v1/transactions/analytics/spending", api.last().Path)
	assert.Equal(t, "category", api.last().Query.Get("groupBy"))
	assert.Equal(t, []string{"acc_1", "acc_2"}, api.last().Query["accountIds"])
	require.Len(t, report.Data, 1)
	assert.Equal(t, int64(4200), report.Summary.TotalSpending)

	_, err = c.Transactions.IncomeAnalytics(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, "/v1/transactions/analytics/income", api.last().Path)
	assert.Equal(t, "month", api.last().Query.Get("groupBy"))

	weekly := period
	weekly.GroupBy = "week"
	_, err = c.Transactions.CashflowAnalytics(ctx, weekly)
	require.NoError(t, err)
	assert.Equal(t, "/v1/transactions/analytics/cashflow", api.last().Path)
	assert.Equal(t, "week", api.last().Query.Get("groupBy"))
}

func TestTransactions_CategorizeAndSearch(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, ok(`{"transactionId":"txn_1","category":"TRANSPORT","subcategory":"RIDE_HAILING"}`))
	c := api.client()
	ctx := context.Background()

	txn, err := c.Transactions.Categorize(ctx, "txn_1", CategorizeParams{Category: "TRANSPORT", Subcategory: "RIDE_HAILING"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, api.last().Method)
	assert.Equal(t, "/v1/transactions/txn_1/categorize", api.last().Path)
	assert.Equal(t, map[string]any{"category": "TRANSPORT", "subcategory": "RIDE_HAILING"}, api.last().Body)
	assert.Equal(t, "RIDE_HAILING", txn.Subcategory)

	_, err = c.Transactions.Search(ctx, TransactionSearchParams{SearchTerm: "uber", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "/v1/transactions/search", api.last().Path)
	assert.Equal(t, url.Values{"searchTerm": {"uber"}, "page": {"1"}, "limit": {"5"}}, api.last().Query)
}

func TestTransactions_CategorizeNotRetried(t *testing.T) {
	api := newFakeAPI(t, http.StatusServiceUnavailable, `{}`)

	_, err := api.client().Transactions.Categorize(context.Background(), "txn_1", CategorizeParams{Category: "FOOD"})
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, 1, api.count())
}
