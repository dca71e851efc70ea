// Package distribution drives the single batched payout of a recipient list
// and tracks its status.
package distribution

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/tranvictor/payroll/metrics"
)

// BatchService performs one batched payout to every address, in order. It
// succeeds or fails as a whole.
type BatchService interface {
	SubmitBatch(ctx context.Context, addresses []string) error
}

// HashReporter is an optional BatchService extension that also reports the
// transaction hash of a successful batch.
type HashReporter interface {
	SubmitBatchWithHash(ctx context.Context, addresses []string) (string, error)
}

type Outcome int

const (
	OutcomeSubmitted Outcome = iota
	OutcomeEmpty
	OutcomeBusy
	OutcomeNotIdle
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeEmpty:
		return "empty"
	case OutcomeBusy:
		return "busy"
	default:
		return "not_idle"
	}
}

type Orchestrator struct {
	service BatchService
	log     logr.Logger
	newID   func() string

	mu        sync.Mutex
	status    Status
	listeners []func(Status)
}

func NewOrchestrator(service BatchService, log logr.Logger) *Orchestrator {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Orchestrator{
		service: service,
		log:     log.WithName("distribution"),
		newID:   uuid.NewString,
	}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// OnChange registers fn to be called after every status transition.
func (o *Orchestrator) OnChange(fn func(Status)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}

// Reset returns a finished batch to Idle. It reports false while a batch is
// pending.
func (o *Orchestrator) Reset() bool {
	o.mu.Lock()
	next, ok := o.status.Reset()
	changed := ok && next != o.status
	o.status = next
	o.mu.Unlock()
	if changed {
		o.emit(next)
	}
	return ok
}

// Submit hands addresses to the batch service as a single call and blocks
// until it returns. Nothing is submitted when addresses is empty or when a
// batch is pending or finished.
func (o *Orchestrator) Submit(ctx context.Context, addresses []string) Outcome {
	if len(addresses) == 0 {
		o.log.Info("nothing to distribute, recipient list is empty")
		metrics.SubmissionsTotal.WithLabelValues(OutcomeEmpty.String()).Inc()
		return OutcomeEmpty
	}

	o.mu.Lock()
	next, ok := o.status.Begin(o.newID())
	if !ok {
		phase := o.status.Phase
		o.mu.Unlock()
		outcome := OutcomeNotIdle
		if phase == Pending {
			outcome = OutcomeBusy
		}
		o.log.Info("refusing to submit", "phase", phase.String(), "outcome", outcome.String())
		metrics.SubmissionsTotal.WithLabelValues(outcome.String()).Inc()
		return outcome
	}
	o.status = next
	o.mu.Unlock()
	o.emit(next)

	batch := append([]string{}, addresses...)
	log := o.log.WithValues("batch", next.BatchID, "recipients", len(batch))
	log.Info("submitting batch")
	metrics.SubmissionsTotal.WithLabelValues(OutcomeSubmitted.String()).Inc()
	metrics.RecipientsSubmitted.Observe(float64(len(batch)))

	txHash, err := o.submit(ctx, batch)

	o.mu.Lock()
	if err != nil {
		next, _ = o.status.Fail(err.Error())
	} else {
		next, _ = o.status.Succeed(txHash)
	}
	o.status = next
	o.mu.Unlock()

	if err != nil {
		log.Error(err, "batch failed")
	} else {
		log.Info("batch succeeded", "tx", txHash)
	}
	o.emit(next)
	return OutcomeSubmitted
}

func (o *Orchestrator) submit(ctx context.Context, addresses []string) (string, error) {
	if hr, ok := o.service.(HashReporter); ok {
		return hr.SubmitBatchWithHash(ctx, addresses)
	}
	return "", o.service.SubmitBatch(ctx, addresses)
}

func (o *Orchestrator) emit(s Status) {
	o.mu.Lock()
	listeners := append([]func(Status){}, o.listeners...)
	o.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}
