// Package planner decides how a day plan is produced: locally by the
// synthesizer, or by an assisting model whose output is validated and which
// is replaced by the local plan whenever it fails.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/scheduler"
)

// DefaultStrategyTimeout bounds a single assisted adjustment.
const DefaultStrategyTimeout = 20 * time.Second

var (
	ErrStrategyUnavailable = errors.New("plan strategy unavailable")
	ErrStrategyTimeout     = errors.New("plan strategy timed out")
	ErrStrategyPanic       = errors.New("plan strategy panicked")
	ErrEmptyPlan           = errors.New("plan strategy returned no items")
)

// Source records which path produced a plan.
type Source string

const (
	SourceLocal    Source = "local"
	SourceAssisted Source = "assisted"
	SourceFallback Source = "fallback"
)

// PlanRequest is the input to one generation.
type PlanRequest struct {
	Profile     domain.ChildProfile
	Medications []domain.Medication
	Now         clock.Time
	// Incident is the category the parent picked, if any.
	Incident    *domain.Incident
	Description string
	// ExistingPlan is context for an adjustment; only pending items matter.
	ExistingPlan []domain.PlanItem
}

// IsAdjustment reports whether the request carries an incident report.
func (r PlanRequest) IsAdjustment() bool {
	return r.Incident != nil || strings.TrimSpace(r.Description) != ""
}

// PlanResult is always usable: Items is the plan to store and show.
type PlanResult struct {
	Items    []domain.PlanItem
	Source   Source
	Incident *domain.Incident
	Gentle   bool
	// FallbackReason is set when Source is SourceFallback.
	FallbackReason string
}

// PlanStrategy produces an adjusted plan from an external model. Returned
// items must already be normalized.
type PlanStrategy interface {
	Available(ctx context.Context) bool
	Adjust(ctx context.Context, req PlanRequest) ([]domain.PlanItem, error)
}

type Orchestrator struct {
	synth    *scheduler.Synthesizer
	strategy PlanStrategy
	timeout  time.Duration
	logger   *slog.Logger
}

type OrchestratorOption func(*Orchestrator)

// WithStrategy enables assisted adjustment. A nil strategy keeps every
// generation local.
func WithStrategy(s PlanStrategy) OrchestratorOption {
	return func(o *Orchestrator) { o.strategy = s }
}

func WithTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewOrchestrator(synth *scheduler.Synthesizer, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		synth:   synth,
		timeout: DefaultStrategyTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate never fails. Plain generations are local; incident reports go to
// the strategy when one is configured, and any strategy failure yields the
// local plan for the same request.
func (o *Orchestrator) Generate(ctx context.Context, req PlanRequest) PlanResult {
	incident := scheduler.ResolveIncident(req.Incident, req.Description)
	result := PlanResult{
		Incident: incident,
		Gentle:   scheduler.GentleMode(incident),
	}

	if !req.IsAdjustment() || o.strategy == nil {
		result.Items = o.local(req)
		result.Source = SourceLocal
		return result
	}

	items, err := o.assist(ctx, req)
	if err != nil {
		o.logger.Warn("plan strategy failed, using local plan", "error", err)
		result.Items = o.local(req)
		result.Source = SourceFallback
		result.FallbackReason = err.Error()
		return result
	}

	result.Items = items
	result.Source = SourceAssisted
	return result
}

func (o *Orchestrator) local(req PlanRequest) []domain.PlanItem {
	return o.synth.Synthesize(scheduler.SynthesisInput{
		Profile:     req.Profile,
		Medications: req.Medications,
		Now:         req.Now,
		Incident:    req.Incident,
		Description: req.Description,
	})
}

type proposal struct {
	items []domain.PlanItem
	err   error
}

// assist runs the strategy on its own goroutine so neither a hung call nor a
// panic can escape the timeout.
func (o *Orchestrator) assist(ctx context.Context, req PlanRequest) ([]domain.PlanItem, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ch := make(chan proposal, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- proposal{err: fmt.Errorf("%w: %v", ErrStrategyPanic, r)}
			}
		}()
		if !o.strategy.Available(ctx) {
			ch <- proposal{err: ErrStrategyUnavailable}
			return
		}
		items, err := o.strategy.Adjust(ctx, req)
		ch <- proposal{items: items, err: err}
	}()

	select {
	case p := <-ch:
		if p.err != nil {
			return nil, p.err
		}
		if len(p.items) == 0 {
			return nil, ErrEmptyPlan
		}
		return p.items, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrStrategyTimeout, ctx.Err())
	}
}
