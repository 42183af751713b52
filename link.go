package reshadx

import (
	"context"
)

// Link defaults.
const (
	DefaultLinkLanguage    = "en"
	DefaultLinkCountryCode = "GH"
)

// LinkTokenParams are the inputs to LinkService.CreateLinkToken.
type LinkTokenParams struct {
	UserID        string   `json:"userId" validate:"required"`
	Products      []string `json:"products" validate:"required,min=1,dive,required"`
	RedirectURI   string   `json:"redirectUri" validate:"required,url"`
	InstitutionID string   `json:"institutionId,omitempty"`
	// Language defaults to DefaultLinkLanguage.
	Language string `json:"language"`
	// CountryCode defaults to DefaultLinkCountryCode.
	CountryCode string `json:"countryCode" validate:"omitempty,len=2"`
	Webhook     string `json:"webhook,omitempty" validate:"omitempty,url"`
}

// LinkService creates the tokens used by the account linking flow.
type LinkService struct{ service }

// CreateLinkToken creates a link token for connecting a financial account.
func (s *LinkService) CreateLinkToken(ctx context.Context, params LinkTokenParams) (map[string]any, error) {
	if params.Language == "" {
		params.Language = DefaultLinkLanguage
	}
	if params.CountryCode == "" {
		params.CountryCode = DefaultLinkCountryCode
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return s.post(ctx, "/link/token/create", params)
}

// ExchangePublicToken exchanges the public token returned by the link flow
// for an item access token.
func (s *LinkService) ExchangePublicToken(ctx context.Context, publicToken string) (map[string]any, error) {
	if err := requireID("publicToken", publicToken); err != nil {
		return nil, err
	}
	return s.post(ctx, "/link/token/exchange", map[string]string{"publicToken": publicToken})
}

// UpdateLinkToken creates a link token that re-authenticates an existing item.
func (s *LinkService) UpdateLinkToken(ctx context.Context, itemID string) (map[string]any, error) {
	if err := requireID("itemId", itemID); err != nil {
		return nil, err
	}
	return s.post(ctx, "/link/token/update", map[string]string{"itemId": itemID})
}
