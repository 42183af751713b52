package reshadx

import (
	"context"
	"time"

	"github.com/reshadx/reshadx-go/internal/api"
)

// Account is a linked bank or mobile money account. Amounts are in minor
// currency units.
type Account struct {
	AccountID        string    `json:"accountId"`
	ItemID           string    `json:"itemId"`
	InstitutionID    string    `json:"institutionId"`
	AccountNumber    string    `json:"accountNumber"`
	AccountName      string    `json:"accountName"`
	AccountType      string    `json:"accountType"`
	Currency         string    `json:"currency"`
	Balance          int64     `json:"balance"`
	AvailableBalance int64     `json:"availableBalance"`
	Status           string    `json:"status"`
	OpenedDate       string    `json:"openedDate,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ItemInfo summarizes the institution connection accounts belong to.
type ItemInfo struct {
	ItemID          string `json:"itemId"`
	InstitutionID   string `json:"institutionId"`
	InstitutionName string `json:"institutionName"`
	LastSyncedAt    string `json:"lastSyncedAt"`
}

// AccountList is returned by AccountsService.List.
type AccountList struct {
	Accounts []Account `json:"accounts"`
	Item     *ItemInfo `json:"item,omitempty"`
}

// Balance is the current balance of an account.
type Balance struct {
	AccountID        string `json:"accountId"`
	Balance          int64  `json:"balance"`
	AvailableBalance int64  `json:"availableBalance"`
	Currency         string `json:"currency"`
	LastUpdated      string `json:"lastUpdated"`
}

// AccountsService reads linked accounts.
type AccountsService struct{ service }

// List returns the user's accounts, optionally limited to one item.
func (s *AccountsService) List(ctx context.Context, itemID string) (*AccountList, error) {
	q := api.Query{}
	setIf(q, "itemId", itemID)

	var list AccountList
	if err := s.do(ctx, &api.Request{Method: "GET", Path: "/accounts", Query: q}, &list, ResourceUnknown); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single account.
func (s *AccountsService) Get(ctx context.Context, accountID string) (*Account, error) {
	return s.account(ctx, "GET", accountID)
}

// Balance returns the current balance of an account.
func (s *AccountsService) Balance(ctx context.Context, accountID string) (*Balance, error) {
	if err := requireID("accountId", accountID); err != nil {
		return nil, err
	}

	var bal Balance
	req := &api.Request{Method: "GET", Path: resourcePath("/accounts", accountID, "balance")}
	if err := s.do(ctx, req, &bal, ResourceAccount); err != nil {
		return nil, err
	}
	return &bal, nil
}

// Refresh asks the institution for fresh account data.
func (s *AccountsService) Refresh(ctx context.Context, accountID string) (*Account, error) {
	return s.account(ctx, "POST", accountID, "refresh")
}

func (s *AccountsService) account(ctx context.Context, method, accountID string, suffix ...string) (*Account, error) {
	if err := requireID("accountId", accountID); err != nil {
		return nil, err
	}

	var acct Account
	req := &api.Request{Method: method, Path: resourcePath("/accounts", append([]string{accountID}, suffix...)...)}
	if err := s.do(ctx, req, &acct, ResourceAccount); err != nil {
		return nil, err
	}
	return &acct, nil
}
