// Package service runs traversal plans against graphs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/trv/internal/domain"
	"github.com/persistorai/trv/internal/metrics"
	"github.com/persistorai/trv/internal/models"
	"github.com/persistorai/trv/internal/traversal"
)

// Compile-time check: *TraversalService must satisfy domain.TraversalService.
var _ domain.TraversalService = (*TraversalService)(nil)

// Plan run statuses used as metric labels.
const (
	statusOK       = "ok"
	statusInvalid  = "invalid"
	statusCanceled = "canceled"
)

// TraversalService executes plans step by step with logging and metrics.
type TraversalService struct {
	log      *logrus.Logger
	maxDepth int

	mu      sync.Mutex
	deepest int
}

// NewTraversalService creates a TraversalService that rejects plans nesting
// deeper than maxDepth.
func NewTraversalService(log *logrus.Logger, maxDepth int) *TraversalService {
	return &TraversalService{log: log, maxDepth: maxDepth}
}

// Run validates plan, applies its steps to a traversal of g and returns the
// final frontier, paths, cache and errors. Errors still held by nested
// levels when the plan ends are not reported; plans should flatten first.
func (s *TraversalService) Run(ctx context.Context, g domain.Graph, plan models.Plan) (*models.RunResult, error) {
	started := time.Now()

	if err := plan.Validate(s.maxDepth); err != nil {
		s.observe(statusInvalid, started)
		return nil, fmt.Errorf("validating plan: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"start": plan.Start,
		"steps": len(plan.Steps),
	}).Debug("traversal.start")

	trv := traversal.New(g, plan.Start...)
	deepest := 0

	for i := range plan.Steps {
		step := &plan.Steps[i]

		if err := ctx.Err(); err != nil {
			s.observe(statusCanceled, started)
			return nil, fmt.Errorf("running step %d (%s): %w", i, step.Op, err)
		}

		if err := apply(trv, step); err != nil {
			s.observe(statusInvalid, started)
			return nil, fmt.Errorf("running step %d (%s): %w", i, step.Op, err)
		}

		metrics.StepsTotal.WithLabelValues(string(step.Op)).Inc()
		deepest = max(deepest, trv.Depth())

		s.log.WithFields(logrus.Fields{
			"step":  i,
			"size":  trv.Size(),
			"depth": trv.Depth(),
		}).Debug("traversal." + string(step.Op))
	}

	if trv.IsDeep() {
		s.log.WithField("depth", trv.Depth()).Warn("traversal.unflattened: nested errors are not reported")
	}

	res := &models.RunResult{
		Result: trv.Keys(),
		Paths:  trv.Path(),
		Cache:  trv.Cache(),
		Errors: traversal.ErrorStrings(trv.Errors()),
		Depth:  trv.Depth(),
	}

	s.recordDepth(deepest)
	metrics.MissingPropertiesTotal.Add(float64(countMissing(trv.Errors())))
	metrics.ResultSize.Observe(float64(len(res.Result)))
	s.observe(statusOK, started)

	s.log.WithFields(logrus.Fields{
		"size":   len(res.Result),
		"errors": len(res.Errors),
		"took":   time.Since(started),
	}).Debug("traversal.done")

	return res, nil
}

// apply runs one validated step against trv.
func apply(trv *traversal.Traversal, step *models.PlanStep) error {
	switch step.Op {
	case models.OpInV:
		trv.InV(step.Label, step.RememberPath)
	case models.OpOutV:
		trv.OutV(step.Label, step.RememberPath)
	case models.OpDeepen:
		trv.Deepen()
	case models.OpFlatten:
		trv.Flatten()
	case models.OpShallowSave:
		trv.ShallowSave(step.Keys...)
	case models.OpDeepSave:
		trv.DeepSave(step.Name)
	case models.OpShallowFilter:
		trv.ShallowFilter(step.Where.Match)
	case models.OpDeepFilter:
		trv.DeepFilter(sizeBetween(step.MinSize, step.MaxSize))
	default:
		return models.ErrInvalidStep
	}

	return nil
}

// sizeBetween keeps children whose frontier size lies within the set bounds.
func sizeBetween(minSize, maxSize *int) traversal.ChildPredicate {
	return func(child *traversal.Traversal, _ []models.Step) bool {
		if minSize != nil && child.Size() < *minSize {
			return false
		}

		return maxSize == nil || child.Size() <= *maxSize
	}
}

func countMissing(errs []error) int {
	n := 0

	for _, err := range errs {
		var mpe *traversal.MissingPropertyError
		if errors.As(err, &mpe) {
			n++
		}
	}

	return n
}

func (s *TraversalService) recordDepth(depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if depth > s.deepest {
		s.deepest = depth
		metrics.MaxDepthReached.Set(float64(depth))
	}
}

func (s *TraversalService) observe(status string, started time.Time) {
	metrics.PlansTotal.WithLabelValues(status).Inc()
	metrics.PlanDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
