package dining

import (
	"context"
	"time"
)

func (r *Restaurant) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingArrivals []ArrivalRequest

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return nil
		case req := <-r.arrive:
			pendingArrivals = append(pendingArrivals, req)
		case req := <-r.observerJoin:
			r.handleObserverJoin(req)
		case id := <-r.observerLeave:
			r.handleObserverLeave(id)
		case <-ticker.C:
			r.stepInternal(pendingArrivals)
			pendingArrivals = pendingArrivals[:0]
		}
	}
}

func (r *Restaurant) Stop() { close(r.stop) }

// StepOnce advances the simulation by a single tick using the same ordering
// semantics as the server loop. It is primarily intended for deterministic
// replays/tests.
func (r *Restaurant) StepOnce(arrivals []ArrivalRequest) (tick uint64, digest string) {
	tick = r.tick.Load()
	r.stepInternal(arrivals)
	return tick, r.stateDigest(tick)
}
