package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/scene"
)

// Capturer rasterizes a mounted scene into a PNG of exactly width x height
// pixels, ignoring any display transform on the root.
type Capturer interface {
	Capture(ctx context.Context, root *scene.Node, width, height int) ([]byte, error)
}

// ReadinessFunc blocks until the rendering layer reports that fonts and
// layout have settled.
type ReadinessFunc func(ctx context.Context) error

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSettleDelay sets the fixed wait used when no readiness probe is
// configured or the probe fails.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.settle = d }
}

// WithReadiness installs an explicit readiness probe that replaces the fixed
// settle delay when it succeeds. The native rasterizer has no asynchronous
// layout and the Chrome capturer awaits document.fonts.ready inside Capture,
// so neither needs one today; a renderer that loads the document ahead of the
// screenshot is the intended user.
func WithReadiness(fn ReadinessFunc) Option {
	return func(p *Pipeline) { p.readiness = fn }
}

// WithCaptureTimeout bounds the capture call. Zero means no bound.
func WithCaptureTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithAfter replaces time.After, letting tests drive the settle timer.
func WithAfter(fn func(time.Duration) <-chan time.Time) Option {
	return func(p *Pipeline) { p.after = fn }
}

// Pipeline turns a mounted scene into a bitmap exactly once per session.
//
// It starts Idle. Once both a reference date and a mounted scene are present
// it moves to Pending, waits for the scene to settle, invokes the capturer and
// ends in Ready or Failed. Terminal states never change, and the capturer is
// never invoked twice.
type Pipeline struct {
	capturer  Capturer
	settle    time.Duration
	readiness ReadinessFunc
	timeout   time.Duration
	after     func(time.Duration) <-chan time.Time

	mu        sync.Mutex
	ref       time.Time
	hasRef    bool
	root      *scene.Node
	started   bool
	state     State
	observers []func(State)
	done      chan struct{}
}

// New creates an Idle pipeline around c.
func New(c Capturer, opts ...Option) *Pipeline {
	p := &Pipeline{
		capturer: c,
		settle:   config.DefaultSettleDelay,
		timeout:  config.DefaultCaptureTimeout,
		after:    time.After,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current capture state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Observe registers fn to be called after every transition. Callbacks run on
// the goroutine that performed the transition.
func (p *Pipeline) Observe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Done is closed once the pipeline reaches a terminal state.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the pipeline is terminal or ctx ends.
func (p *Pipeline) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.State(), nil
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

// SetReferenceDate records the session reference date. Only the first call
// counts.
func (p *Pipeline) SetReferenceDate(ctx context.Context, ref time.Time) {
	p.mu.Lock()
	if !p.hasRef {
		p.ref, p.hasRef = ref, true
	}
	p.mu.Unlock()
	p.Trigger(ctx)
}

// Mount records the scene to capture. Only the first non-nil scene counts.
func (p *Pipeline) Mount(ctx context.Context, root *scene.Node) {
	p.mu.Lock()
	if p.root == nil {
		p.root = root
	}
	p.mu.Unlock()
	p.Trigger(ctx)
}

// Trigger re-evaluates the start condition and reports whether this call
// started the capture. It is safe to call any number of times.
func (p *Pipeline) Trigger(ctx context.Context) bool {
	p.mu.Lock()
	if !p.hasRef || p.root == nil {
		p.mu.Unlock()
		return false
	}
	if p.started || p.state.Bitmap != nil {
		p.mu.Unlock()
		slog.Debug(config.MsgCaptureSkipped, config.LogKeyComponent, config.CompSnapshot)
		return false
	}
	p.started = true
	root := p.root
	st, observers := p.transition(State{Phase: PhasePending})
	p.mu.Unlock()

	slog.Info(config.MsgCapturePending,
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyReference, p.ref.Format(time.RFC3339),
		config.LogKeySettle, p.settle,
	)
	notify(observers, st)

	go p.run(ctx, root)
	return true
}

// transition must be called with mu held. It returns the observers to notify
// once the lock is released.
func (p *Pipeline) transition(st State) (State, []func(State)) {
	slog.Debug(config.MsgPhaseChange,
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyPhase, st.Phase.String(),
	)
	p.state = st
	observers := make([]func(State), len(p.observers))
	copy(observers, p.observers)
	return st, observers
}

func notify(observers []func(State), st State) {
	for _, fn := range observers {
		fn(st)
	}
}

func (p *Pipeline) run(ctx context.Context, root *scene.Node) {
	start := time.Now()
	width, height := root.Rect.Dx(), root.Rect.Dy()

	if err := p.awaitSettled(ctx); err != nil {
		p.fail(fmt.Errorf("%s: %w", config.ErrCaptureFailed, err))
		return
	}

	data, err := p.capture(ctx, root, width, height)
	if err != nil {
		p.fail(err)
		return
	}

	bmp, err := newBitmap(data, width, height)
	if err != nil {
		p.fail(err)
		return
	}

	p.finish(State{Phase: PhaseReady, Bitmap: bmp})
	slog.Info(config.MsgCaptureReady,
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyWidth, width,
		config.LogKeyHeight, height,
		config.LogKeySizeBytes, len(data),
		config.LogKeyDataURI, len(bmp.DataURI()),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// awaitSettled prefers the readiness probe and falls back to the fixed delay.
func (p *Pipeline) awaitSettled(ctx context.Context) error {
	if p.readiness != nil {
		err := p.readiness(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn(config.MsgReadinessFailed,
			config.LogKeyComponent, config.CompSnapshot,
			config.LogKeyError, err,
		)
	}

	if p.settle <= 0 {
		return nil
	}
	select {
	case <-p.after(p.settle):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type captureResult struct {
	data []byte
	err  error
}

// capture runs the capturer in its own goroutine so that a timeout or
// shutdown is honoured even by a capturer that ignores its context.
func (p *Pipeline) capture(ctx context.Context, root *scene.Node, width, height int) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	results := make(chan captureResult, config.ChannelBufferSize)
	go func() {
		data, err := p.capturer.Capture(ctx, root, width, height)
		results <- captureResult{data: data, err: err}
	}()

	select {
	case r := <-results:
		if r.err != nil {
			return nil, p.wrapCaptureErr(r.err)
		}
		return r.data, nil
	case <-ctx.Done():
		return nil, p.wrapCaptureErr(ctx.Err())
	}
}

func (p *Pipeline) wrapCaptureErr(err error) error {
	if p.timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", config.ErrCaptureTimeout, err)
	}
	return fmt.Errorf("%s: %w", config.ErrCaptureFailed, err)
}

func (p *Pipeline) fail(err error) {
	p.finish(State{Phase: PhaseFailed, Err: err})
	slog.Error(config.MsgCaptureFailed,
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyError, err,
	)
}

func (p *Pipeline) finish(st State) {
	p.mu.Lock()
	if p.state.Phase.Terminal() {
		p.mu.Unlock()
		return
	}
	st, observers := p.transition(st)
	close(p.done)
	p.mu.Unlock()

	notify(observers, st)
}
