package distribution

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0xAaAAAaaAAAAAAaaAAAaaaaAaAaAAAAaAAaAaAaA1"
	addrB = "0xbBBbbbbBbbBbbbBBbbbBBbbbBbbbbbBbbbbBbBB2"
)

type fakeBatches struct {
	mu      sync.Mutex
	calls   [][]string
	err     error
	release chan struct{}
}

func (f *fakeBatches) SubmitBatch(ctx context.Context, addresses []string) error {
	f.mu.Lock()
	f.calls = append(f.calls, addresses)
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	return f.err
}

func (f *fakeBatches) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string{}, f.calls...)
}

type hashBatches struct{ fakeBatches }

func (h *hashBatches) SubmitBatchWithHash(ctx context.Context, addresses []string) (string, error) {
	return "0xfeed", h.SubmitBatch(ctx, addresses)
}

func newTestOrchestrator(t *testing.T, svc BatchService) *Orchestrator {
	o := NewOrchestrator(svc, testr.New(t))
	o.newID = func() string { return "batch-1" }
	return o
}

func TestSubmitSuccess(t *testing.T) {
	svc := &fakeBatches{}
	o := newTestOrchestrator(t, svc)

	out := o.Submit(context.Background(), []string{addrA, addrB})
	assert.Equal(t, OutcomeSubmitted, out)
	assert.Equal(t, [][]string{{addrA, addrB}}, svc.Calls())
	assert.Equal(t, Status{Phase: Succeeded, BatchID: "batch-1"}, o.Status())
}

func TestSubmitFailure(t *testing.T) {
	svc := &fakeBatches{err: errors.New("insufficient funds")}
	o := newTestOrchestrator(t, svc)

	out := o.Submit(context.Background(), []string{addrA, addrB})
	assert.Equal(t, OutcomeSubmitted, out)
	assert.Len(t, svc.Calls(), 1)
	assert.Equal(t, Failed, o.Status().Phase)
	assert.Equal(t, "insufficient funds", o.Status().Message)
}

func TestSubmitEmptyStaysIdle(t *testing.T) {
	svc := &fakeBatches{}
	o := newTestOrchestrator(t, svc)

	assert.Equal(t, OutcomeEmpty, o.Submit(context.Background(), nil))
	assert.Equal(t, OutcomeEmpty, o.Submit(context.Background(), []string{}))
	assert.Empty(t, svc.Calls())
	assert.Equal(t, Idle, o.Status().Phase)
}

func TestSubmitWhilePendingIsRejected(t *testing.T) {
	svc := &fakeBatches{release: make(chan struct{})}
	o := newTestOrchestrator(t, svc)

	done := make(chan Outcome)
	go func() { done <- o.Submit(context.Background(), []string{addrA}) }()
	require.Eventually(t, func() bool {
		return o.Status().Phase == Pending
	}, 5*time.Second, time.Millisecond)

	assert.Equal(t, OutcomeBusy, o.Submit(context.Background(), []string{addrB}))
	assert.False(t, o.Reset())

	close(svc.release)
	assert.Equal(t, OutcomeSubmitted, <-done)
	assert.Len(t, svc.Calls(), 1)
	assert.Equal(t, Succeeded, o.Status().Phase)
}

func TestSubmitAfterFinishNeedsReset(t *testing.T) {
	svc := &fakeBatches{}
	o := newTestOrchestrator(t, svc)

	o.Submit(context.Background(), []string{addrA})
	assert.Equal(t, OutcomeNotIdle, o.Submit(context.Background(), []string{addrA}))
	assert.Len(t, svc.Calls(), 1)

	assert.True(t, o.Reset())
	assert.Equal(t, Idle, o.Status().Phase)
	assert.Equal(t, OutcomeSubmitted, o.Submit(context.Background(), []string{addrB}))
	assert.Len(t, svc.Calls(), 2)
}

func TestSubmitPassesACopy(t *testing.T) {
	svc := &fakeBatches{}
	o := newTestOrchestrator(t, svc)

	addrs := []string{addrA, addrB}
	o.Submit(context.Background(), addrs)
	addrs[0] = "changed"
	assert.Equal(t, addrA, svc.Calls()[0][0])
}

func TestSubmitReportsTxHash(t *testing.T) {
	svc := &hashBatches{}
	o := newTestOrchestrator(t, svc)

	o.Submit(context.Background(), []string{addrA})
	assert.Equal(t, "0xfeed", o.Status().TxHash)
}

func TestOnChange(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBatches{err: errors.New("reverted")})
	phases := []Phase{}
	o.OnChange(func(s Status) { phases = append(phases, s.Phase) })

	o.Submit(context.Background(), []string{addrA})
	o.Reset()
	o.Reset()

	assert.Equal(t, []Phase{Pending, Failed, Idle}, phases)
}

func TestNewOrchestratorUsesUUIDs(t *testing.T) {
	o := NewOrchestrator(&fakeBatches{}, testr.New(t))
	o.Submit(context.Background(), []string{addrA})
	assert.Len(t, o.Status().BatchID, 36)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "submitted", OutcomeSubmitted.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "busy", OutcomeBusy.String())
	assert.Equal(t, "not_idle", OutcomeNotIdle.String())
}
