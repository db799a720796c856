package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTickInterval is one tick per minute of wall time
const DefaultTickInterval = time.Minute

var ErrTickerRunning = errors.New("ticker already running")

// Tickable is anything that advances elapsed time by one unit per call
type Tickable interface {
	Tick()
}

// Ticker drives Tick on a fixed cadence for the lifetime of the tracker
type Ticker struct {
	target   Tickable
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTicker(target Tickable, interval time.Duration, logger *zap.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ticker{target: target, interval: interval, logger: logger}
}

// Start launches the tick loop. It stops when ctx is cancelled or Stop is called.
func (tk *Ticker) Start(ctx context.Context) error {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.done != nil {
		return ErrTickerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	tk.cancel = cancel
	tk.done = make(chan struct{})
	go tk.run(ctx, tk.done)

	tk.logger.Info("ticker started", zap.Duration("interval", tk.interval))
	return nil
}

func (tk *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(tk.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// both cases can be ready at once; cancellation wins
			if ctx.Err() != nil {
				return
			}
			tk.target.Tick()
			tk.logger.Debug("orders ticked")
		}
	}
}

// Stop cancels the loop and waits for it to exit. No tick fires after Stop
// returns. Safe to call more than once.
func (tk *Ticker) Stop() {
	tk.mu.Lock()
	cancel, done := tk.cancel, tk.done
	tk.cancel, tk.done = nil, nil
	tk.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	tk.logger.Info("ticker stopped")
}

func (tk *Ticker) Interval() time.Duration { return tk.interval }
