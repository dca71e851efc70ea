// Package resolver turns free text typed by a user into a recipient address.
//
// Input is debounced first. The value that survives the quiet window is
// classified: address shaped input resolves to itself immediately, name
// shaped input is looked up through a NameService and anything else resolves
// to nothing. Every dispatched lookup carries a token and only the completion
// holding the latest token is applied.
package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/tranvictor/payroll/common"
	"github.com/tranvictor/payroll/debounce"
	"github.com/tranvictor/payroll/metrics"
)

// NameService is the name resolution capability. An empty string with a nil
// error means there is no record.
type NameService interface {
	ResolveAddress(ctx context.Context, name string) (string, error)
	ResolveName(ctx context.Context, address string) (string, error)
}

// Result is what the resolver currently knows about the debounced input.
// Address is empty while nothing is resolved.
type Result struct {
	Input       string
	Kind        Kind
	Address     string
	DisplayName string
	IsLoading   bool
}

// Resolved reports whether Result holds an address that can be added.
func (r Result) Resolved() bool {
	return r.Address != "" && !r.IsLoading
}

type Options struct {
	// Window is the debounce quiet period, debounce.DefaultWindow when zero.
	Window time.Duration
	// Clock drives the debounce timer, the real clock when nil.
	Clock clock.WithDelayedExecution
	// ReverseLookup fills DisplayName of address shaped input with the
	// address' primary name.
	ReverseLookup bool
	Logger        logr.Logger
}

type input struct {
	seq  uint64
	text string
}

type Resolver struct {
	names     NameService
	log       logr.Logger
	reverse   bool
	debouncer *debounce.Debouncer[input]
	ctx       context.Context
	cancel    context.CancelFunc

	mu        sync.Mutex
	seq       uint64
	settled   uint64
	token     uint64
	inflight  int
	result    Result
	version   uint64
	changed   chan struct{}
	listeners []func(Result)
	closed    bool

	notifyMu sync.Mutex
	notified uint64
}

func New(names NameService, opts Options) *Resolver {
	c := opts.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Resolver{
		names:   names,
		log:     log.WithName("resolver"),
		reverse: opts.ReverseLookup,
		ctx:     ctx,
		cancel:  cancel,
		changed: make(chan struct{}),
	}
	r.debouncer = debounce.NewWithClock(c, opts.Window, r.onDebounced)
	return r
}

// SetInput records the latest raw text. It is resolved once it has not
// changed for the debounce window.
func (r *Resolver) SetInput(raw string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.seq++
	in := input{seq: r.seq, text: raw}
	r.signalLocked()
	r.mu.Unlock()
	r.debouncer.Push(in)
}

// Flush resolves the pending input now instead of waiting for the rest of
// the debounce window.
func (r *Resolver) Flush() {
	r.debouncer.Flush()
}

// Result returns a snapshot of the current resolution.
func (r *Resolver) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Wait blocks until the latest input has been debounced and every lookup
// dispatched for it has completed, then returns the resulting snapshot.
func (r *Resolver) Wait(ctx context.Context) (Result, error) {
	for {
		r.mu.Lock()
		idle := r.closed || (r.settled == r.seq && r.inflight == 0)
		ch := r.changed
		res := r.result
		r.mu.Unlock()
		if idle {
			return res, nil
		}
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-ch:
		}
	}
}

// OnChange registers fn to be called with every published result. Calls are
// serialized and never go back to an older result.
func (r *Resolver) OnChange(fn func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Close stops the debounce timer. Lookups still in flight complete on their
// own but their results are dropped.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.signalLocked()
	r.mu.Unlock()
	r.debouncer.Stop()
	r.cancel()
}

func (r *Resolver) onDebounced(in input) {
	text := strings.TrimSpace(in.text)
	kind := Classify(text)

	r.mu.Lock()
	if r.closed || in.seq < r.settled {
		r.mu.Unlock()
		return
	}
	r.settled = in.seq
	r.token++
	token := r.token
	r.result = Result{Input: text, Kind: kind}
	switch kind {
	case KindAddress:
		r.result.Address = text
		if r.reverse {
			r.inflight++
			go r.lookupName(token, text)
		}
	case KindName:
		r.result.IsLoading = true
		r.inflight++
		go r.lookupAddress(token, text)
	}
	r.log.V(1).Info("input settled", "input", text, "kind", kind.String(), "token", token)
	r.publishLocked()
	r.mu.Unlock()
	r.notify()
}

func (r *Resolver) lookupAddress(token uint64, name string) {
	addr, err := r.names.ResolveAddress(r.ctx, name)
	switch {
	case err != nil:
		r.log.Error(err, "couldn't resolve name", "name", name)
		metrics.LookupsTotal.WithLabelValues(KindName.String(), "error").Inc()
		addr = ""
	case addr == "":
		metrics.LookupsTotal.WithLabelValues(KindName.String(), "none").Inc()
	case !common.IsValidAddress(addr):
		r.log.Info("name service returned a malformed address", "name", name, "address", addr)
		metrics.LookupsTotal.WithLabelValues(KindName.String(), "error").Inc()
		addr = ""
	default:
		metrics.LookupsTotal.WithLabelValues(KindName.String(), "found").Inc()
	}

	r.mu.Lock()
	r.inflight--
	if !r.currentLocked(token, name) {
		r.mu.Unlock()
		return
	}
	r.result.IsLoading = false
	r.result.Address = addr
	if addr != "" {
		r.result.DisplayName = name
	}
	r.publishLocked()
	r.mu.Unlock()
	r.notify()
}

func (r *Resolver) lookupName(token uint64, addr string) {
	name, err := r.names.ResolveName(r.ctx, addr)
	switch {
	case err != nil:
		r.log.Error(err, "couldn't look up primary name", "address", addr)
		metrics.LookupsTotal.WithLabelValues(KindAddress.String(), "error").Inc()
		name = ""
	case name == "":
		metrics.LookupsTotal.WithLabelValues(KindAddress.String(), "none").Inc()
	default:
		metrics.LookupsTotal.WithLabelValues(KindAddress.String(), "found").Inc()
	}

	r.mu.Lock()
	r.inflight--
	if !r.currentLocked(token, addr) {
		r.mu.Unlock()
		return
	}
	if name == "" {
		r.signalLocked()
		r.mu.Unlock()
		return
	}
	r.result.DisplayName = name
	r.publishLocked()
	r.mu.Unlock()
	r.notify()
}

// currentLocked reports whether a completion for token may still be applied.
// Stale completions are counted and dropped.
func (r *Resolver) currentLocked(token uint64, input string) bool {
	if r.closed {
		r.signalLocked()
		return false
	}
	if token != r.token {
		metrics.StaleResultsTotal.Inc()
		r.log.V(1).Info("discarding stale lookup", "input", input, "token", token, "current", r.token)
		r.signalLocked()
		return false
	}
	return true
}

func (r *Resolver) publishLocked() {
	r.version++
	r.signalLocked()
}

func (r *Resolver) signalLocked() {
	close(r.changed)
	r.changed = make(chan struct{})
}

func (r *Resolver) notify() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	version, res := r.version, r.result
	listeners := append([]func(Result){}, r.listeners...)
	r.mu.Unlock()

	if version <= r.notified {
		return
	}
	r.notified = version
	for _, fn := range listeners {
		fn(res)
	}
}
