package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/jobstore/memstore"
	"github.com/Azure/harmony/pkg/scheduler/batch"
)

func TestConcurrencyLimiterCapsDispatch(t *testing.T) {
	l := NewConcurrencyLimiter(map[string]int{"svc-a": 1})

	require.True(t, l.TryAcquire("svc-a"))
	require.False(t, l.TryAcquire("svc-a"))

	l.Release("svc-a")
	require.True(t, l.TryAcquire("svc-a"))
}

func TestDispatchReleasesSlotWhenNothingReady(t *testing.T) {
	store := memstore.New()
	require.NoError(t, store.CreateJobBundle(context.Background(), jobstore.JobBundle{
		Job: jobstore.Job{ID: "job-1", Status: jobstore.StatusRunning},
	}))

	limiter := NewConcurrencyLimiter(map[string]int{"svc-a": 1})
	s := New(store, limiter)

	item, err := s.Dispatch(context.Background(), "svc-a", "pod-1")
	require.NoError(t, err)
	require.Nil(t, item)

	require.True(t, limiter.TryAcquire("svc-a"))
}

func TestBatchFlusherFlushesOnThresholdAndOnSourceTerminal(t *testing.T) {
	f := NewBatchFlusher()

	out := f.Offer("job-1", 2, 2, 0, batch.Output{Ref: "a"}, false)
	require.Nil(t, out)

	out = f.Offer("job-1", 2, 2, 0, batch.Output{Ref: "b"}, false)
	require.Len(t, out, 2)

	out = f.Offer("job-1", 2, 2, 0, batch.Output{Ref: "c"}, true)
	require.Len(t, out, 1)
}

func TestStepReadyToAdvanceRequiresOutputAndAggregationTerminality(t *testing.T) {
	step := jobstore.WorkflowStep{Created: 2, Successful: 1, Expected: 2}
	require.True(t, StepReadyToAdvance(step, false, false))
	require.False(t, StepReadyToAdvance(step, true, false))

	step.Successful = 2
	require.True(t, StepReadyToAdvance(step, true, false))
}
