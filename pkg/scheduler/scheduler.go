// Package scheduler implements the Scheduler: it holds no authoritative
// state of its own and drives jobstore.JobStore for fairness, with
// per-service concurrency caps enforced in front of the claim (spec.md
// §4.5). A step's Sequential flag is stored but read neither here nor by
// the JobStore claim, so sequential steps get no dispatch rule of their
// own. The per-step batching buffer lives in pkg/scheduler/batch; this
// package wires it to JobStore outputs.
package scheduler

import (
	"context"
	"strconv"
	"sync"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/scheduler/batch"
)

// ConcurrencyLimiter enforces per-service concurrency caps in front of
// JobStore.ClaimNextWorkItem, per spec.md §4.5 ("When the running count
// for a service reaches the cap, no further items of that service are
// dispatched until a completion").
type ConcurrencyLimiter struct {
	mu      sync.Mutex
	caps    map[string]int
	running map[string]int
}

// NewConcurrencyLimiter builds a limiter from a service-id -> cap map.
// A service absent from caps is treated as uncapped.
func NewConcurrencyLimiter(caps map[string]int) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{caps: caps, running: make(map[string]int)}
}

// TryAcquire reports whether serviceID has capacity for one more
// dispatch, reserving it if so.
func (c *ConcurrencyLimiter) TryAcquire(serviceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	limit, bounded := c.caps[serviceID]
	if bounded && c.running[serviceID] >= limit {
		return false
	}
	c.running[serviceID]++
	return true
}

// Release frees one reserved slot for serviceID, called on completion.
func (c *ConcurrencyLimiter) Release(serviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running[serviceID] > 0 {
		c.running[serviceID]--
	}
}

// Scheduler composes a JobStore with a ConcurrencyLimiter.
type Scheduler struct {
	store   jobstore.JobStore
	limiter *ConcurrencyLimiter
}

// New constructs a Scheduler over store, enforcing the per-service caps
// in limiter.
func New(store jobstore.JobStore, limiter *ConcurrencyLimiter) *Scheduler {
	return &Scheduler{store: store, limiter: limiter}
}

// Dispatch picks and claims the next work item for serviceID/pod,
// respecting the concurrency cap before even asking JobStore. Returns
// (nil, nil) when nothing is dispatchable right now (no ready item, or
// capacity exhausted).
func (s *Scheduler) Dispatch(ctx context.Context, serviceID, pod string) (*jobstore.WorkItem, error) {
	if s.limiter != nil && !s.limiter.TryAcquire(serviceID) {
		return nil, nil
	}

	item, err := s.store.ClaimNextWorkItem(ctx, serviceID, pod)
	if err != nil {
		if s.limiter != nil {
			s.limiter.Release(serviceID)
		}
		return nil, err
	}
	if item == nil && s.limiter != nil {
		s.limiter.Release(serviceID)
	}
	return item, nil
}

// ReleaseOnCompletion frees the concurrency slot a prior Dispatch
// reserved; callers invoke it from the completion handler regardless of
// outcome.
func (s *Scheduler) ReleaseOnCompletion(serviceID string) {
	if s.limiter != nil {
		s.limiter.Release(serviceID)
	}
}

// BatchFlusher buffers a batched step's outputs and decides when to
// materialize the next work item, per spec.md §4.5's batching contract.
type BatchFlusher struct {
	mu      sync.Mutex
	buffers map[string]*batch.Buffer // key: jobID + "/" + stepIndex
}

// NewBatchFlusher constructs an empty BatchFlusher.
func NewBatchFlusher() *BatchFlusher {
	return &BatchFlusher{buffers: make(map[string]*batch.Buffer)}
}

func bufferKey(jobID string, stepIndex int) string {
	return jobID + "/" + strconv.Itoa(stepIndex)
}

// Offer adds one output for (jobID, stepIndex) and reports whether the
// accumulated batch should flush now, either because the buffer
// overflowed its own thresholds or because sourceTerminal indicates the
// upstream step is done and any remainder must be emitted.
func (f *BatchFlusher) Offer(jobID string, stepIndex, maxInputs int, maxBytes int64, out batch.Output, sourceTerminal bool) []batch.Output {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := bufferKey(jobID, stepIndex)
	buf, ok := f.buffers[key]
	if !ok {
		buf = batch.New(maxInputs, maxBytes)
		f.buffers[key] = buf
	}

	shouldFlush := buf.Add(out)
	if shouldFlush {
		return buf.Flush()
	}
	if sourceTerminal && buf.Len() > 0 {
		return buf.Flush()
	}
	return nil
}

// FlushRemaining force-flushes whatever is buffered for (jobID,
// stepIndex) without requiring a new output, used when the upstream step
// has gone terminal and any partial batch must still be emitted.
func (f *BatchFlusher) FlushRemaining(jobID string, stepIndex int) []batch.Output {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf, ok := f.buffers[bufferKey(jobID, stepIndex)]
	if !ok || buf.Len() == 0 {
		return nil
	}
	return buf.Flush()
}

// StepReadyToAdvance implements spec.md §5's cross-step ordering
// guarantee: "step N+1 never starts until step N has produced at least
// one output and (if step N+1 is aggregated) all of step N is terminal."
func StepReadyToAdvance(sourceStep jobstore.WorkflowStep, nextIsAggregated bool, ignoreErrors bool) bool {
	if sourceStep.Created == 0 {
		return false
	}
	hasOutput := sourceStep.Successful > 0
	if !hasOutput {
		return false
	}
	if nextIsAggregated {
		return sourceStep.IsTerminal(ignoreErrors)
	}
	return true
}

// Cancel sweeps every non-terminal item of job to canceled in one
// JobStore transaction, per spec.md §4.5.
func (s *Scheduler) Cancel(ctx context.Context, jobID string) error {
	if err := s.store.CancelJob(ctx, jobID); err != nil {
		return herrors.Internal(err, "failed to cancel job %s", jobID).Build()
	}
	return nil
}
