package reshadx

import (
	"context"
	"fmt"

	"github.com/reshadx/reshadx-go/internal/api"
	"github.com/reshadx/reshadx-go/internal/poll"
)

// Terminal item sync states.
const (
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// ItemSync is the state of an item sync job as returned by the API.
type ItemSync map[string]any

// ID returns the sync job ID.
func (s ItemSync) ID() string {
	return s.str("syncId")
}

// Status returns the job status, e.g. "pending", "completed" or "failed".
func (s ItemSync) Status() string {
	if st := s.str("status"); st != "" {
		return st
	}
	if nested, ok := s["sync"].(map[string]any); ok {
		return ItemSync(nested).Status()
	}
	return ""
}

// Done reports whether the job reached a terminal state.
func (s ItemSync) Done() bool {
	switch s.Status() {
	case SyncStatusCompleted, SyncStatusFailed:
		return true
	}
	return false
}

func (s ItemSync) str(key string) string {
	v, _ := s[key].(string)
	return v
}

// ItemsService manages items, the connections to financial institutions.
type ItemsService struct{ service }

// List returns all items of the current user.
func (s *ItemsService) List(ctx context.Context) (map[string]any, error) {
	return s.object(ctx, &api.Request{Method: "GET", Path: "/items"}, ResourceUnknown)
}

// Get returns an item by ID.
func (s *ItemsService) Get(ctx context.Context, itemID string) (map[string]any, error) {
	if err := requireID("itemId", itemID); err != nil {
		return nil, err
	}
	return s.object(ctx, &api.Request{Method: "GET", Path: resourcePath("/items", itemID)}, ResourceItem)
}

// Delete removes an item and disconnects the institution.
func (s *ItemsService) Delete(ctx context.Context, itemID string) error {
	if err := requireID("itemId", itemID); err != nil {
		return err
	}
	return s.do(ctx, &api.Request{Method: "DELETE", Path: resourcePath("/items", itemID)}, nil, ResourceItem)
}

// Sync starts a sync job for an item. Use SyncStatus or WaitForSync to follow
// it.
func (s *ItemsService) Sync(ctx context.Context, itemID string) (ItemSync, error) {
	if err := requireID("itemId", itemID); err != nil {
		return nil, err
	}
	var out ItemSync
	req := &api.Request{Method: "POST", Path: resourcePath("/items", itemID, "sync")}
	if err := s.do(ctx, req, &out, ResourceItem); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncStatus returns the state of a sync job.
func (s *ItemsService) SyncStatus(ctx context.Context, itemID, syncID string) (ItemSync, error) {
	if err := requireID("itemId", itemID); err != nil {
		return nil, err
	}
	if err := requireID("syncId", syncID); err != nil {
		return nil, err
	}
	var out ItemSync
	req := &api.Request{Method: "GET", Path: resourcePath("/items", itemID, "sync", syncID)}
	if err := s.do(ctx, req, &out, ResourceItem); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateWebhook sets the URL that receives events for an item.
func (s *ItemsService) UpdateWebhook(ctx context.Context, itemID, webhookURL string) (map[string]any, error) {
	if err := requireID("itemId", itemID); err != nil {
		return nil, err
	}
	if err := validate.Var(webhookURL, "required,http_url"); err != nil {
		return nil, &Error{Code: CodeValidation, Message: "webhookUrl must be a valid URL", Field: "webhookUrl", Err: err}
	}
	req := &api.Request{
		Method: "PATCH",
		Path:   resourcePath("/items", itemID),
		Body:   map[string]string{"webhookUrl": webhookURL},
	}
	return s.object(ctx, req, ResourceItem)
}

// WaitForSync polls a sync job until it completes or fails. A failed job
// returns its last state with an error matching ErrSyncFailed; on any other
// error the last state seen is returned. Without a timeout option, the wait
// is bounded only by ctx.
func (s *ItemsService) WaitForSync(ctx context.Context, itemID, syncID string, opts ...WaitOption) (ItemSync, error) {
	cfg := &waitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	var last ItemSync
	check := func(ctx context.Context) (ItemSync, error) {
		state, err := s.SyncStatus(ctx, itemID, syncID)
		if err != nil {
			return last, err
		}
		last = state
		return state, nil
	}
	state, err := poll.Until(ctx, check, ItemSync.Done, poll.Options{
		Interval:    cfg.interval,
		MaxInterval: cfg.maxInterval,
	})
	if err != nil {
		return state, err
	}
	if state.Status() == SyncStatusFailed {
		return state, fmt.Errorf("%w: item %s sync %s", ErrSyncFailed, itemID, syncID)
	}
	return state, nil
}
