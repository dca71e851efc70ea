// Package session ties the input resolver, the recipient list and the
// distribution orchestrator together behind the actions a user can take.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/tranvictor/payroll/distribution"
	"github.com/tranvictor/payroll/recipient"
	"github.com/tranvictor/payroll/resolver"
)

type Options struct {
	DebounceWindow time.Duration
	Clock          clock.WithDelayedExecution
	ReverseLookup  bool
	Logger         logr.Logger
}

// Session owns the state of one payout: the text being typed, the recipients
// collected so far and the status of the batch.
type Session struct {
	log          logr.Logger
	resolver     *resolver.Resolver
	orchestrator *distribution.Orchestrator

	mu         sync.Mutex
	recipients recipient.List
}

func New(names resolver.NameService, batches distribution.BatchService, opts Options) *Session {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Session{
		log: log.WithName("session"),
		resolver: resolver.New(names, resolver.Options{
			Window:        opts.DebounceWindow,
			Clock:         opts.Clock,
			ReverseLookup: opts.ReverseLookup,
			Logger:        log,
		}),
		orchestrator: distribution.NewOrchestrator(batches, log),
	}
}

// SetInput forwards a text change to the resolver.
func (s *Session) SetInput(raw string) {
	s.resolver.SetInput(raw)
}

// Resolve settles the current input immediately and waits for its lookup.
func (s *Session) Resolve(ctx context.Context) (resolver.Result, error) {
	s.resolver.Flush()
	return s.resolver.Wait(ctx)
}

// Add commits the current resolution into the recipient list. Input that is
// still loading or did not resolve is reported as Invalid.
func (s *Session) Add() recipient.AddOutcome {
	res := s.resolver.Result()
	if !res.Resolved() {
		s.log.Info("nothing resolved to add", "input", res.Input, "loading", res.IsLoading)
		return recipient.Invalid
	}
	return s.AddAddress(res.Address, res.DisplayName)
}

// AddAddress appends address to the recipient list.
func (s *Session) AddAddress(address, displayName string) recipient.AddOutcome {
	s.mu.Lock()
	next, outcome := s.recipients.Add(address, displayName)
	s.recipients = next
	s.mu.Unlock()

	switch outcome {
	case recipient.Added:
		s.log.V(1).Info("recipient added", "address", address, "name", displayName)
		s.resetFinished()
	case recipient.Duplicate:
		s.log.Info("recipient already in the list", "address", address)
	default:
		s.log.Info("not a valid address", "address", address)
	}
	return outcome
}

// Remove drops address from the recipient list. Removing an absent address
// does nothing.
func (s *Session) Remove(address string) bool {
	s.mu.Lock()
	next, removed := s.recipients.Remove(address)
	s.recipients = next
	s.mu.Unlock()

	if removed {
		s.log.V(1).Info("recipient removed", "address", address)
		s.resetFinished()
	}
	return removed
}

// Submit sends every recipient, in order, as one batch.
func (s *Session) Submit(ctx context.Context) distribution.Outcome {
	return s.orchestrator.Submit(ctx, s.Recipients().Addresses())
}

// Reset returns a finished batch to Idle.
func (s *Session) Reset() bool {
	return s.orchestrator.Reset()
}

// a changed list is a new batch
func (s *Session) resetFinished() {
	if s.orchestrator.Status().Terminal() {
		s.orchestrator.Reset()
	}
}

func (s *Session) Resolution() resolver.Result {
	return s.resolver.Result()
}

func (s *Session) Recipients() recipient.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipients
}

func (s *Session) Status() distribution.Status {
	return s.orchestrator.Status()
}

// CanAdd reports whether the current input resolved to an address not yet
// in the list.
func (s *Session) CanAdd() bool {
	res := s.resolver.Result()
	return res.Resolved() && !s.Recipients().Contains(res.Address)
}

// CanSubmit reports whether Submit would start a batch.
func (s *Session) CanSubmit() bool {
	return !s.Recipients().IsEmpty() && s.orchestrator.Status().Phase == distribution.Idle
}

func (s *Session) OnResolution(fn func(resolver.Result)) {
	s.resolver.OnChange(fn)
}

func (s *Session) OnStatus(fn func(distribution.Status)) {
	s.orchestrator.OnChange(fn)
}

func (s *Session) Close() {
	s.resolver.Close()
}
