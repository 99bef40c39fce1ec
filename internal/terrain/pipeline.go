package terrain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/meshing"
	"mini-terrain/internal/profiling"

	"github.com/google/uuid"
)

var (
	ErrPipelineClosed  = errors.New("terrain: pipeline is closed")
	ErrPipelineStarted = errors.New("terrain: pipeline already started")
)

type opKind int

const (
	opCreate opKind = iota
	opAppend
	opExcise
	opClear
	opDelete
	opVisibility
)

func (k opKind) String() string {
	switch k {
	case opCreate:
		return "create"
	case opAppend:
		return "append"
	case opExcise:
		return "excise"
	case opClear:
		return "clear"
	case opDelete:
		return "delete"
	case opVisibility:
		return "visibility"
	}
	return "unknown"
}

type request struct {
	kind    opKind
	id      string
	frag    meshing.Fragment
	visible bool
	ticket  uuid.UUID
}

// ContextBinder runs on the worker's locked OS thread before the first tick. It makes
// the worker's GL context current and returns a release func run when the worker exits.
type ContextBinder func() (release func(), err error)

// PipelineStats are cumulative worker counters.
type PipelineStats struct {
	Pending int    `json:"pending"`
	Applied uint64 `json:"applied"`
	Skipped uint64 `json:"skipped"`
	Failed  uint64 `json:"failed"`
	Ticks   uint64 `json:"ticks"`
}

// Pipeline is the single consumer of geometry requests. Requests are applied in
// submission order, so operations on one id are linearized.
type Pipeline struct {
	store    *Store
	logger   *log.Logger
	interval time.Duration
	budget   int

	mu      sync.Mutex
	queue   []request
	closed  bool
	started bool
	wake    chan struct{}

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once

	applied atomic.Uint64
	skipped atomic.Uint64
	failed  atomic.Uint64
	ticks   atomic.Uint64
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithInterval sets the idle sleep between ticks
func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithBudget caps how many requests one tick applies (0 = all pending)
func WithBudget(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.budget = n
		}
	}
}

// WithLogger replaces the default logger
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a stopped pipeline over store.
func NewPipeline(store *Store, opts ...Option) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		store:    store,
		logger:   log.Default(),
		interval: config.GetPipelineInterval(),
		budget:   config.GetOpsPerTick(),
		wake:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start launches the worker and blocks until bind has run on its thread.
// There is no timeout: a binder that never returns blocks Start forever.
func (p *Pipeline) Start(bind ContextBinder) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPipelineClosed
	}
	if p.started {
		p.mu.Unlock()
		return ErrPipelineStarted
	}
	p.started = true
	p.mu.Unlock()

	ready := make(chan error, 1)
	go p.run(bind, ready)
	if err := <-ready; err != nil {
		p.Stop()
		return fmt.Errorf("bind worker context: %w", err)
	}
	return nil
}

func (p *Pipeline) run(bind ContextBinder, ready chan<- error) {
	defer p.closeDone()

	// GL contexts are bound to OS threads
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if bind != nil {
		release, err := bind()
		if err != nil {
			ready <- err
			return
		}
		if release != nil {
			defer release()
		}
	}
	ready <- nil

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		p.Tick()

		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
		case <-p.wake:
		}
	}
}

// Stop signals the worker, waits for it to exit and closes submission. Safe to call twice.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	p.closed = true
	started := p.started
	p.mu.Unlock()

	p.cancel()
	if started {
		<-p.done
	} else {
		// no worker will ever run to close it
		p.closeDone()
	}
}

func (p *Pipeline) closeDone() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Done is closed once the worker has exited.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

func (p *Pipeline) enqueue(r request) (uuid.UUID, error) {
	r.ticket = uuid.New()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return uuid.Nil, ErrPipelineClosed
	}
	p.queue = append(p.queue, r)
	p.mu.Unlock()

	// with a budget the worker stays on its fixed cadence
	if p.budget == 0 {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	return r.ticket, nil
}

// SubmitCreate requests a new buffer for id.
func (p *Pipeline) SubmitCreate(id string) (uuid.UUID, error) {
	return p.enqueue(request{kind: opCreate, id: id})
}

// SubmitAppend requests that f be appended to id. The pipeline takes ownership of f.
func (p *Pipeline) SubmitAppend(id string, f meshing.Fragment) (uuid.UUID, error) {
	return p.enqueue(request{kind: opAppend, id: id, frag: f})
}

// SubmitExcise requests that the first occurrence of f be removed from id.
func (p *Pipeline) SubmitExcise(id string, f meshing.Fragment) (uuid.UUID, error) {
	return p.enqueue(request{kind: opExcise, id: id, frag: f})
}

// SubmitClear requests that id be emptied while keeping its storage.
func (p *Pipeline) SubmitClear(id string) (uuid.UUID, error) {
	return p.enqueue(request{kind: opClear, id: id})
}

// SubmitDelete requests that id and its storage be released.
func (p *Pipeline) SubmitDelete(id string) (uuid.UUID, error) {
	return p.enqueue(request{kind: opDelete, id: id})
}

// SubmitVisibility toggles whether id is drawn.
func (p *Pipeline) SubmitVisibility(id string, visible bool) (uuid.UUID, error) {
	return p.enqueue(request{kind: opVisibility, id: id, visible: visible})
}

func (p *Pipeline) take() []request {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.queue)
	if p.budget > 0 && n > p.budget {
		n = p.budget
	}
	if n == 0 {
		return nil
	}
	batch := make([]request, n)
	copy(batch, p.queue[:n])
	clear(p.queue[:n])
	p.queue = p.queue[n:]
	return batch
}

// Tick applies one batch of pending requests under the store's write lock and returns
// how many it took. It runs on the worker; call it directly only when not started.
func (p *Pipeline) Tick() int {
	batch := p.take()
	if len(batch) == 0 {
		return 0
	}
	defer profiling.Track("terrain.Pipeline.Tick")()

	p.store.mu.Lock()
	for _, r := range batch {
		p.apply(r)
	}
	p.store.dev.Flush()
	p.store.mu.Unlock()

	p.ticks.Add(1)
	return len(batch)
}

func (p *Pipeline) apply(r request) {
	defer func() {
		if v := recover(); v != nil {
			p.failed.Add(1)
			p.logger.Printf("[terrain] error: %s %q (%s) panicked: %v", r.kind, r.id, r.ticket, v)
		}
	}()

	var (
		err     error
		changed = true
	)
	switch r.kind {
	case opCreate:
		err = p.store.create(r.id)
	case opAppend:
		changed, err = p.store.appendFragment(r.id, r.frag)
	case opExcise:
		err = p.store.exciseFragment(r.id, r.frag)
	case opClear:
		err = p.store.clear(r.id)
	case opDelete:
		err = p.store.destroy(r.id)
	case opVisibility:
		err = p.store.setVisible(r.id, r.visible)
	default:
		err = fmt.Errorf("unknown request kind %d", r.kind)
	}

	switch {
	case errors.Is(err, ErrFragmentNotFound), errors.Is(err, ErrBufferExists):
		p.skipped.Add(1)
		p.logger.Printf("[terrain] warning: %s %q (%s): %v", r.kind, r.id, r.ticket, err)
	case err != nil:
		p.failed.Add(1)
		p.logger.Printf("[terrain] error: %s %q (%s): %v", r.kind, r.id, r.ticket, err)
	case !changed:
		p.skipped.Add(1)
	default:
		p.applied.Add(1)
	}
}

// Pending returns the number of queued requests.
func (p *Pipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Stats returns cumulative counters.
func (p *Pipeline) Stats() PipelineStats {
	return PipelineStats{
		Pending: p.Pending(),
		Applied: p.applied.Load(),
		Skipped: p.skipped.Load(),
		Failed:  p.failed.Load(),
		Ticks:   p.ticks.Load(),
	}
}
