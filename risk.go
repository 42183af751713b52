package reshadx

import (
	"context"

	"github.com/reshadx/reshadx-go/internal/api"
)

// RiskFactor is one signal contributing to a risk assessment.
type RiskFactor struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// RiskAssessment is the fraud risk verdict for a transaction.
type RiskAssessment struct {
	RiskScore       float64      `json:"riskScore"`
	RiskLevel       string       `json:"riskLevel"`
	Decision        string       `json:"decision"`
	Flags           []string     `json:"flags"`
	Factors         []RiskFactor `json:"factors"`
	Recommendations []string     `json:"recommendations"`
}

// SimSwapCheck reports recent SIM swap activity for a device.
type SimSwapCheck struct {
	SimSwapDetected bool     `json:"simSwapDetected"`
	SimSwapRisk     string   `json:"simSwapRisk"`
	LastSimSwapDate string   `json:"lastSimSwapDate,omitempty"`
	DeviceChanges   int      `json:"deviceChanges"`
	Recommendations []string `json:"recommendations"`
}

// RiskAssessmentParams are the inputs to RiskService.Assess.
type RiskAssessmentParams struct {
	Amount            int64             `json:"amount" validate:"gt=0"`
	AccountID         string            `json:"accountId" validate:"required"`
	DeviceFingerprint DeviceFingerprint `json:"deviceFingerprint"`
}

// AlertListParams filters RiskService.Alerts. Page defaults to 1 and Limit
// to 50.
type AlertListParams struct {
	Status    string `json:"status"`
	RiskLevel string `json:"riskLevel"`
	Page      int    `json:"page" validate:"gte=0"`
	Limit     int    `json:"limit" validate:"gte=0"`
}

// FraudReport reports a transaction as fraudulent.
type FraudReport struct {
	TransactionID string `json:"transactionId" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
	Details       string `json:"details,omitempty"`
}

// RiskService exposes fraud and device risk signals.
type RiskService struct{ service }

// Assess scores the fraud risk of a prospective transaction.
func (s *RiskService) Assess(ctx context.Context, params RiskAssessmentParams) (*RiskAssessment, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var out RiskAssessment
	req := &api.Request{Method: "POST", Path: "/risk/assess", Body: params}
	if err := s.member(ctx, req, "assessment", &out, ResourceAccount); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckSimSwap checks a device for SIM swap fraud.
func (s *RiskService) CheckSimSwap(ctx context.Context, fp DeviceFingerprint) (*SimSwapCheck, error) {
	if err := validateParams(fp); err != nil {
		return nil, err
	}

	var out SimSwapCheck
	req := &api.Request{
		Method: "POST",
		Path:   "/risk/sim-swap/check",
		Body:   map[string]DeviceFingerprint{"deviceFingerprint": fp},
	}
	if err := s.do(ctx, req, &out, ResourceUnknown); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts returns fraud alerts for the current user.
func (s *RiskService) Alerts(ctx context.Context, params AlertListParams) (map[string]any, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	q := pageQuery(api.Query{}, params.Page, params.Limit, defaultLimit)
	setIf(q, "status", params.Status)
	setIf(q, "riskLevel", params.RiskLevel)

	return s.object(ctx, &api.Request{Method: "GET", Path: "/risk/alerts", Query: q}, ResourceUnknown)
}

// ReportFraud reports a transaction as fraudulent.
func (s *RiskService) ReportFraud(ctx context.Context, report FraudReport) (map[string]any, error) {
	if err := validateParams(report); err != nil {
		return nil, err
	}
	req := &api.Request{Method: "POST", Path: "/risk/fraud/report", Body: report}
	return s.object(ctx, req, ResourceTransaction)
}

// DeviceTrustScore returns how trusted a device is.
func (s *RiskService) DeviceTrustScore(ctx context.Context, fp DeviceFingerprint) (map[string]any, error) {
	if err := validateParams(fp); err != nil {
		return nil, err
	}
	return s.post(ctx, "/risk/device/trust-score", map[string]DeviceFingerprint{"deviceFingerprint": fp})
}

// VelocityChecks returns transaction frequency analysis for the user.
func (s *RiskService) VelocityChecks(ctx context.Context) (map[string]any, error) {
	return s.object(ctx, &api.Request{Method: "GET", Path: "/risk/velocity-checks"}, ResourceUnknown)
}

// WhitelistDevice marks a device as trusted. deviceName is optional.
func (s *RiskService) WhitelistDevice(ctx context.Context, deviceID, deviceName string) (map[string]any, error) {
	if err := requireID("deviceId", deviceID); err != nil {
		return nil, err
	}
	body := map[string]string{"deviceId": deviceID}
	if deviceName != "" {
		body["deviceName"] = deviceName
	}
	return s.post(ctx, "/risk/device/whitelist", body)
}

// RemoveDeviceWhitelist revokes trust in a device.
func (s *RiskService) RemoveDeviceWhitelist(ctx context.Context, deviceID string) error {
	if err := requireID("deviceId", deviceID); err != nil {
		return err
	}
	req := &api.Request{Method: "DELETE", Path: resourcePath("/risk/device/whitelist", deviceID)}
	return s.do(ctx, req, nil, ResourceUnknown)
}
