package reshadx

import (
	"context"

	"github.com/reshadx/reshadx-go/internal/api"
)

// DefaultCreditHistoryLimit is the number of history entries returned when
// no limit is given.
const DefaultCreditHistoryLimit = 10

// CreditScore is a computed credit score.
type CreditScore struct {
	Score              int     `json:"score"`
	ScoreBand          string  `json:"scoreBand"`
	DefaultProbability float64 `json:"defaultProbability"`
	CalculatedAt       string  `json:"calculatedAt"`
	ValidUntil         string  `json:"validUntil"`
}

// CreditScoreFactor is one input to a credit score and its effect.
type CreditScoreFactor struct {
	Factor      string  `json:"factor"`
	Impact      string  `json:"impact"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// CreditScoreCalculation is returned by CreditScoreService.Calculate.
type CreditScoreCalculation struct {
	Score   CreditScore         `json:"score"`
	Factors []CreditScoreFactor `json:"factors"`
}

// CreditRecommendation is an action that may improve a credit score.
type CreditRecommendation struct {
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PotentialImpact int    `json:"potentialImpact"`
	Actionable      bool   `json:"actionable"`
}

// CreditHistoryParams filters CreditScoreService.History.
type CreditHistoryParams struct {
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	// Limit defaults to DefaultCreditHistoryLimit.
	Limit int `json:"limit" validate:"gte=0"`
}

// CreditSimulation describes a what-if scenario. Nil fields are not part of
// the scenario.
type CreditSimulation struct {
	PayOffDebt        *int64 `json:"payOffDebt,omitempty"`
	IncreaseIncome    *int64 `json:"increaseIncome,omitempty"`
	ReduceUtilization *int64 `json:"reduceUtilization,omitempty"`
}

// CreditScoreService computes and explains credit scores.
type CreditScoreService struct{ service }

// Calculate computes a fresh credit score, optionally using alternative data
// such as mobile money history.
func (s *CreditScoreService) Calculate(ctx context.Context, includeAlternativeData bool) (*CreditScoreCalculation, error) {
	var out CreditScoreCalculation
	req := &api.Request{
		Method: "POST",
		Path:   "/credit-score/calculate",
		Body:   map[string]bool{"includeAlternativeData": includeAlternativeData},
	}
	if err := s.do(ctx, req, &out, ResourceUnknown); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the current credit score.
func (s *CreditScoreService) Get(ctx context.Context) (*CreditScore, error) {
	var score CreditScore
	if err := s.do(ctx, &api.Request{Method: "GET", Path: "/credit-score"}, &score, ResourceUnknown); err != nil {
		return nil, err
	}
	return &score, nil
}

// History returns past credit scores.
func (s *CreditScoreService) History(ctx context.Context, params CreditHistoryParams) (map[string]any, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultCreditHistoryLimit
	}
	q := api.Query{"limit": limit}
	setIf(q, "startDate", params.StartDate)
	setIf(q, "endDate", params.EndDate)

	return s.object(ctx, &api.Request{Method: "GET", Path: "/credit-score/history", Query: q}, ResourceUnknown)
}

// Factors returns the factors behind the current score.
func (s *CreditScoreService) Factors(ctx context.Context) (map[string]any, error) {
	return s.object(ctx, &api.Request{Method: "GET", Path: "/credit-score/factors"}, ResourceUnknown)
}

// Recommendations returns actions that may improve the score.
func (s *CreditScoreService) Recommendations(ctx context.Context) ([]CreditRecommendation, error) {
	var recs []CreditRecommendation
	req := &api.Request{Method: "GET", Path: "/credit-score/recommendations"}
	if err := s.member(ctx, req, "recommendations", &recs, ResourceUnknown); err != nil {
		return nil, err
	}
	return recs, nil
}

// Simulate estimates the score under a hypothetical scenario.
func (s *CreditScoreService) Simulate(ctx context.Context, scenario CreditSimulation) (map[string]any, error) {
	return s.post(ctx, "/credit-score/simulate", scenario)
}
