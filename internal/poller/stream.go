package poller

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/atomic"

	"cgmd/internal/providers"
)

// Subscription is one consumer's view of the poll loop. Emissions arrive on
// the channel until Cancel is called or the parent context ends; the
// channel is closed when the loop exits.
type Subscription struct {
	ID     string
	ch     chan Emission
	cancel context.CancelFunc
}

func (s *Subscription) Emissions() <-chan Emission {
	return s.ch
}

// Cancel interrupts an in-progress wait immediately. Safe to call more
// than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

type StreamInterface interface {
	Subscribe(ctx context.Context) *Subscription
	LastEmission() *Emission
	ActiveSubscriptions() int
	Shutdown()
}

// Stream bridges per-tick engine emissions to long-lived subscriptions.
// Each subscription owns its own poll loop; there is no shared mutable
// state between loops beyond the retained last emission.
type Stream struct {
	engine  EngineInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu   sync.Mutex
	subs map[string]*Subscription
	last atomic.Pointer[Emission]
	wg   sync.WaitGroup
}

func NewStream(engine EngineInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StreamInterface {
	return &Stream{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
		subs:    make(map[string]*Subscription),
	}
}

func (s *Stream) Subscribe(ctx context.Context) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ID:     ulid.Make().String(),
		ch:     make(chan Emission, 1),
		cancel: cancel,
	}

	s.register(sub)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, sub)
	}()

	return sub
}

func (s *Stream) register(sub *Subscription) {
	s.mu.Lock()
	s.subs[sub.ID] = sub
	count := len(s.subs)
	s.mu.Unlock()

	s.metrics.SetStreamsActive(count)
	s.logger.Infof(providers.TypePoll, "subscription %s started", sub.ID)
}

func (s *Stream) unregister(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub.ID)
	count := len(s.subs)
	s.mu.Unlock()

	s.metrics.SetStreamsActive(count)
	s.logger.Infof(providers.TypePoll, "subscription %s stopped", sub.ID)
}

// run is the per-subscription loop: tick, deliver, wait. The wait is the
// sole suspension point between ticks and cancellation interrupts it
// immediately rather than letting the interval elapse.
func (s *Stream) run(ctx context.Context, sub *Subscription) {
	defer s.unregister(sub)
	defer close(sub.ch)

	for {
		emission := s.engine.Tick(ctx)
		if ctx.Err() != nil {
			return
		}
		s.last.Store(&emission)

		select {
		case sub.ch <- emission:
		case <-ctx.Done():
			return
		}

		timer := time.NewTimer(s.engine.Interval())
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// LastEmission returns the most recent emission across all subscriptions,
// or nil before the first tick completes.
func (s *Stream) LastEmission() *Emission {
	return s.last.Load()
}

func (s *Stream) ActiveSubscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Shutdown cancels every active subscription and waits for their loops to
// exit.
func (s *Stream) Shutdown() {
	s.mu.Lock()
	for _, sub := range s.subs {
		sub.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
