package reshadx

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/reshadx/reshadx-go/internal/api"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// Pagination describes one page of a list result.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// pageQuery adds page and limit, substituting defaults for zero values.
func pageQuery(q api.Query, page, limit, fallbackLimit int) api.Query {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = fallbackLimit
	}
	q["page"] = page
	q["limit"] = limit
	return q
}

// setIf adds key to q when value is non-empty.
func setIf(q api.Query, key, value string) {
	if value != "" {
		q[key] = value
	}
}

func decodeInto(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Code:    CodeServer,
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}
	return nil
}

// resourcePath joins escaped segments onto a resource root.
func resourcePath(root string, segments ...string) string {
	p := root
	for _, seg := range segments {
		p += "/" + url.PathEscape(seg)
	}
	return p
}
