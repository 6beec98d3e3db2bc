package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RecurringWorker periodically materializes due recurring payments. It
// is an explicit service object with Start/Stop and an injected
// interval, instantiated once per process and passed by reference.
type RecurringWorker struct {
	recurringService *RecurringService
	logger           zerolog.Logger
	interval         time.Duration
	stopCh           chan struct{}
	doneCh           chan struct{}
	mu               sync.Mutex
	running          bool
}

// DefaultRecurringInterval is how often the worker checks for due
// payments when no interval is configured.
const DefaultRecurringInterval = 1 * time.Hour

// NewRecurringWorker creates a new RecurringWorker
func NewRecurringWorker(recurringService *RecurringService, logger zerolog.Logger, interval time.Duration) *RecurringWorker {
	if interval <= 0 {
		interval = DefaultRecurringInterval
	}
	return &RecurringWorker{
		recurringService: recurringService,
		logger:           logger.With().Str("component", "recurring_worker").Logger(),
		interval:         interval,
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
	}
}

// Start begins the background due-payment checks
func (w *RecurringWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting recurring worker")
	go w.run(ctx)
}

// Stop gracefully stops the worker
func (w *RecurringWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping recurring worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Recurring worker stopped")
}

func (w *RecurringWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Run immediately on startup
	w.process()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.setStopped()
			return
		case <-w.stopCh:
			w.setStopped()
			return
		case <-ticker.C:
			w.process()
		}
	}
}

func (w *RecurringWorker) process() {
	fired, err := w.recurringService.ProcessAllDue()
	if err != nil {
		w.logger.Error().Err(err).Msg("Due-payment check failed")
		return
	}
	if fired > 0 {
		w.logger.Info().Int("fired", fired).Msg("Materialized due recurring payments")
	}
}

func (w *RecurringWorker) setStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}
