package coordinator

import (
	"context"
	"errors"

	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/scheduler"
	"github.com/Azure/harmony/pkg/scheduler/batch"
)

// StepAdvancer forwards a completed WorkItem's results into the next
// WorkflowStep, applying the batching buffer for batched steps, and
// resolves the Job to a terminal status once its last step is terminal.
// It is the piece of spec.md §4.5/§4.6's cross-step ordering guarantee
// that the coordinator itself does not own any state for: every decision
// is re-derived from JobStore on each call, so a crash mid-advance loses
// no committed progress, only a no-op retry.
type StepAdvancer struct {
	store     jobstore.JobStore
	flusher   *scheduler.BatchFlusher
	newItemID func() string
}

// NewStepAdvancer builds a StepAdvancer over store, using flusher for
// batched steps and newItemID to mint ids for materialized work items.
func NewStepAdvancer(store jobstore.JobStore, flusher *scheduler.BatchFlusher, newItemID func() string) *StepAdvancer {
	return &StepAdvancer{store: store, flusher: flusher, newItemID: newItemID}
}

// Advance evaluates item's step after its completion: it forwards ready
// output to the next step (buffering it first if the next step is
// batched), and resolves the Job once the last step has gone terminal.
func (a *StepAdvancer) Advance(ctx context.Context, item *jobstore.WorkItem) error {
	step, err := a.store.GetWorkflowStep(ctx, item.JobID, item.StepIndex)
	if err != nil {
		return err
	}

	nextStep, err := a.store.GetWorkflowStep(ctx, item.JobID, item.StepIndex+1)
	if err != nil && !errors.Is(err, jobstore.ErrNotFound) {
		return err
	}

	if nextStep == nil {
		if step.IsTerminal(false) || step.IsTerminal(true) {
			return a.resolveJob(ctx, item.JobID, *step)
		}
		return nil
	}

	if item.Status == jobstore.ItemSuccessful {
		if err := a.forward(ctx, item, *step, *nextStep); err != nil {
			return err
		}
	}

	if step.IsTerminal(true) {
		// Upstream exhausted: flush whatever remains buffered for the
		// next step even if it never reached its own threshold.
		if remaining := a.flusher.FlushRemaining(item.JobID, step.StepIndex); len(remaining) > 0 {
			if err := a.appendBatch(ctx, *nextStep, remaining); err != nil {
				return err
			}
		}
	}

	return nil
}

// forward materializes nextStep work item(s) from item's output, either
// immediately (unbatched) or once the batching buffer for nextStep
// reaches threshold.
func (a *StepAdvancer) forward(ctx context.Context, item *jobstore.WorkItem, step, nextStep jobstore.WorkflowStep) error {
	if nextStep.AggregatedOutput {
		if !scheduler.StepReadyToAdvance(step, true, true) {
			return nil
		}
	}

	if !nextStep.Batched {
		return a.store.AppendWorkItems(ctx, item.JobID, nextStep.StepIndex, []jobstore.WorkItem{{
			ID:        a.newItemID(),
			JobID:     item.JobID,
			ServiceID: nextStep.ServiceImageID,
			StepIndex: nextStep.StepIndex,
			Status:    jobstore.ItemReady,
			Inputs:    item.Results,
		}})
	}

	var totalBytes int64
	for _, sz := range item.OutputSizes {
		totalBytes += sz
	}
	out := batch.Output{Ref: item.ID, Bytes: totalBytes, Results: item.Results}

	flushed := a.flusher.Offer(item.JobID, step.StepIndex, nextStep.MaxBatchInputs, nextStep.MaxBatchBytes, out, false)
	if len(flushed) == 0 {
		return nil
	}
	return a.appendBatch(ctx, nextStep, flushed)
}

func (a *StepAdvancer) appendBatch(ctx context.Context, nextStep jobstore.WorkflowStep, outputs []batch.Output) error {
	var inputs []string
	for _, o := range outputs {
		inputs = append(inputs, o.Results...)
	}
	return a.store.AppendWorkItems(ctx, nextStep.JobID, nextStep.StepIndex, []jobstore.WorkItem{{
		ID:        a.newItemID(),
		JobID:     nextStep.JobID,
		ServiceID: nextStep.ServiceImageID,
		StepIndex: nextStep.StepIndex,
		Status:    jobstore.ItemReady,
		Inputs:    inputs,
	}})
}

// resolveJob transitions the job to its final status once its terminal
// step has resolved every expected item, per spec.md §3's Job/WorkflowStep
// terminality relationship.
func (a *StepAdvancer) resolveJob(ctx context.Context, jobID string, lastStep jobstore.WorkflowStep) error {
	status := jobstore.StatusSuccessful
	switch {
	case lastStep.Failed > 0 && lastStep.Successful == 0:
		status = jobstore.StatusFailed
	case lastStep.Failed > 0:
		status = jobstore.StatusCompleteWithErrors
	}
	return a.store.TransitionJob(ctx, jobID, status, "")
}
