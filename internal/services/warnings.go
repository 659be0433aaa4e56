package services

import (
	"context"
	"sync"

	"github.com/epeers/sqglp/internal/models"
)

type warningContextKey struct{}

// WarningCollector gathers the skip and fallback warnings of one pipeline run.
// The universe resolver and the pipeline record into it through the run's context.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext starts collection for a run. The returned context is handed
// to the resolver and ticker workers; the collector is read once the run ends.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records w against the run carried by ctx.
// Outside a run (no collector in ctx) it does nothing.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// GetWarnings returns the run's warnings in the order they were recorded.
// The slice is a copy and safe to keep after the run.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
