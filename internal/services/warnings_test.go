package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/epeers/sqglp/internal/models"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	AddWarning(ctx, models.Warning{
		Code:    models.WarnFallbackUniverse,
		Message: "no tickers discovered",
	})
	AddWarning(ctx, models.Warning{
		Code:    models.WarnProviderUnavailable,
		Ticker:  "BBB.NS",
		Message: "fundamentals unavailable",
	})

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Code != models.WarnFallbackUniverse {
		t.Errorf("expected code %s, got %s", models.WarnFallbackUniverse, warnings[0].Code)
	}
	if warnings[1].Ticker != "BBB.NS" {
		t.Errorf("expected ticker BBB.NS, got %s", warnings[1].Ticker)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	// AddWarning with a plain context should not panic
	AddWarning(context.Background(), models.Warning{
		Code:    models.WarnProcessingFailed,
		Message: "this should be silently dropped",
	})
}

func TestWarningCollector_SurvivesDerivedContexts(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	child, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	AddWarning(child, models.Warning{Code: models.WarnProcessingFailed, Message: "from a timed child"})

	if got := len(wc.GetWarnings()); got != 1 {
		t.Fatalf("expected 1 warning, got %d", got)
	}
}

func TestWarningCollector_GetWarningsReturnsCopy(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	AddWarning(ctx, models.Warning{Code: models.WarnProcessingFailed, Message: "original"})

	snapshot := wc.GetWarnings()
	snapshot[0].Message = "mutated"

	if wc.GetWarnings()[0].Message != "original" {
		t.Error("mutating the returned slice must not change the collector")
	}
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			AddWarning(ctx, models.Warning{
				Code:    models.WarnProviderUnavailable,
				Message: "concurrent warning",
			})
		}()
	}
	wg.Wait()

	if got := len(wc.GetWarnings()); got != n {
		t.Errorf("expected %d warnings, got %d", n, got)
	}
}
