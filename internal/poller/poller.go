// Package poller runs a task on a fixed interval until its context is
// cancelled, replacing ambient timers with an explicit start/stop lifecycle.
package poller

import (
	"context"
	"log"
	"time"
)

// Poller invokes a task every interval.
type Poller struct {
	interval time.Duration
	task     func(context.Context)
	logger   *log.Logger
}

func New(interval time.Duration, task func(context.Context), logger *log.Logger) *Poller {
	return &Poller{interval: interval, task: task, logger: logger}
}

// Run blocks, firing the task each interval, until ctx is cancelled. The task
// receives a context that is cancelled along with ctx so a shutdown never
// leaves a run dangling.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Printf("poller stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}
