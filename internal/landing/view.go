package landing

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/m1ck43l/web-ui/pkg/core"
)

// ErrInactive is returned by Reload when the view has no current activation.
var ErrInactive = errors.New("landing view is not active")

// Surface turns a ViewState snapshot into visible output.
// Render is called with the view's lock held and must not call back into
// the View.
type Surface interface {
	Render(state ViewState)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(ViewState)

// Render calls f(state).
func (f SurfaceFunc) Render(state ViewState) { f(state) }

// Option configures a View.
type Option func(*View)

// WithMaxEpisodes sets how many recent episodes each load requests.
func WithMaxEpisodes(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.maxEpisodes = n
		}
	}
}

// WithLogger sets the view's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// activation is the cancellation token of one Activate call.
type activation struct {
	id     string
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
}

// View is the landing page loader. The zero value is not usable; use New.
type View struct {
	source      core.Source
	surface     Surface
	logger      *slog.Logger
	maxEpisodes int

	mu      sync.Mutex
	state   ViewState
	current *activation

	inflight sync.WaitGroup
}

// New creates an inactive view reading from source and rendering to surface.
func New(source core.Source, surface Surface, opts ...Option) *View {
	v := &View{
		source:      source,
		surface:     surface,
		logger:      slog.New(slog.DiscardHandler),
		maxEpisodes: DefaultMaxEpisodes,
		state:       InitialState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Activate starts a new activation bound to ctx. Any current activation is
// superseded and its pending result will be discarded. The placeholder
// state is rendered before Activate returns; the load runs in the
// background. A ctx that is already done leaves the view untouched.
func (v *View) Activate(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if ctx.Err() != nil {
		v.logger.Debug("not activating landing view, context already done", "error", ctx.Err())
		return
	}
	v.activateLocked(ctx)
}

// activateLocked installs a fresh activation derived from parent and
// starts its load sequence. v.mu must be held.
func (v *View) activateLocked(parent context.Context) {
	actx, cancel := context.WithCancel(parent)
	a := &activation{
		id:     uuid.NewString(),
		parent: parent,
		ctx:    actx,
		cancel: cancel,
	}

	if v.current != nil {
		v.current.cancel()
	}
	v.current = a
	v.state = InitialState()
	v.surface.Render(v.state.clone())
	v.inflight.Add(1)

	v.logger.Debug("landing view activated", "activation", a.id, "max_episodes", v.maxEpisodes)
	go v.loadSequence(a)
}

// Deactivate ends the current activation. It is safe to call at any time
// and any number of times.
func (v *View) Deactivate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current == nil {
		return
	}
	v.current.cancel()
	v.logger.Debug("landing view deactivated", "activation", v.current.id)
	v.current = nil
}

// Reload replaces the current activation with a fresh one bound to the
// same parent context. The check and the replacement happen under one
// lock, so a Reload racing a Deactivate either completes first or
// returns ErrInactive.
func (v *View) Reload() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	a := v.current
	if a == nil || a.parent.Err() != nil {
		return ErrInactive
	}
	v.activateLocked(a.parent)
	return nil
}

// Active reports whether the view has a live activation.
func (v *View) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current != nil && v.current.ctx.Err() == nil
}

// State returns a snapshot of the current view state.
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

// Wait blocks until every load sequence started so far has finished,
// whether it committed or was discarded.
func (v *View) Wait() {
	v.inflight.Wait()
}

func (v *View) loadSequence(a *activation) {
	defer v.inflight.Done()

	res, err := Load(a.ctx, v.source, v.maxEpisodes)
	v.commit(a, res, err)
}

// commit applies the outcome of a's load sequence if a is still current.
func (v *View) commit(a *activation, res Result, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != a || a.ctx.Err() != nil {
		v.logger.Debug("discarding landing load result", "activation", a.id, "error", err)
		return
	}

	if err != nil {
		v.logger.Warn("landing load failed", "activation", a.id, "error", err)
		v.state = FailedState(err)
	} else {
		v.logger.Debug("landing load committed", "activation", a.id, "episodes", len(res.RecentEpisodes))
		v.state = LoadedState(res)
	}
	v.surface.Render(v.state.clone())
}
