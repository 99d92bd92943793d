package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ashrt/ashrt/internal/core/ecs"
	"github.com/ashrt/ashrt/internal/core/event"
	"github.com/ashrt/ashrt/internal/core/tick"
)

// Runner drives an engine from a tick provider on a wall-clock ticker. The
// goroutine inside Run is the only one that touches the engine; other
// goroutines hand it work through Post.
type Runner struct {
	engine   *ecs.Engine
	provider tick.Provider
	interval time.Duration
	log      *zap.Logger

	maxFrames int
	frames    int

	posted chan func()
	done   chan struct{}
	onTick *event.Listener[func(time.Duration)]
}

// NewRunner creates a runner that asks provider for a tick every interval.
func NewRunner(engine *ecs.Engine, provider tick.Provider, interval time.Duration, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		engine:   engine,
		provider: provider,
		interval: interval,
		log:      log,
		posted:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
	r.onTick = event.NewListener(r.update)
	return r
}

// SetMaxFrames makes Run return after n engine updates. Zero means run until
// the context is cancelled.
func (r *Runner) SetMaxFrames(n int) { r.maxFrames = n }

// Frames returns the number of engine updates run so far.
func (r *Runner) Frames() int { return r.frames }

// Post queues fn to run on the loop goroutine between frames. It reports
// false if the runner has already stopped.
func (r *Runner) Post(fn func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.posted <- fn:
		return true
	case <-r.done:
		return false
	}
}

func (r *Runner) update(dt time.Duration) {
	r.engine.Update(dt)
	r.frames++
}

// Run blocks until ctx is done or the frame limit is reached. A Runner can
// only be run once.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	r.provider.Tick().Add(r.onTick)
	r.provider.Start()
	defer func() {
		r.provider.Stop()
		r.provider.Tick().Remove(r.onTick)
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("runner started",
		zap.Duration("interval", r.interval),
		zap.Int("max_frames", r.maxFrames))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner stopped", zap.Int("frames", r.frames))
			return nil
		case fn := <-r.posted:
			fn()
		case <-ticker.C:
			r.provider.DispatchTick()
			if r.maxFrames > 0 && r.frames >= r.maxFrames {
				r.log.Info("frame limit reached", zap.Int("frames", r.frames))
				return nil
			}
		}
	}
}
