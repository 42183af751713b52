package api

import "encoding/json"

// Envelope is the success wrapper around every API response.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// ErrorEnvelope is the wrapper around API error responses.
type ErrorEnvelope struct {
	Success   bool       `json:"success"`
	Error     *ErrorBody `json:"error"`
	RequestID string     `json:"requestId,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// ErrorBody is the error object inside an ErrorEnvelope.
type ErrorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
	Field   string          `json:"field,omitempty"`
}

// DetailsMap returns the error details as an object. Details that are not an
// object are kept under the "value" key.
func (b *ErrorBody) DetailsMap() map[string]any {
	if len(b.Details) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(b.Details, &obj); err == nil {
		return obj
	}
	var v any
	if err := json.Unmarshal(b.Details, &v); err != nil || v == nil {
		return nil
	}
	return map[string]any{"value": v}
}
