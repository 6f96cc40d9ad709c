package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/jobstore"
)

func seedJob(t *testing.T, s *Store, jobID string, nItems int) {
	t.Helper()
	items := make([]jobstore.WorkItem, nItems)
	for i := range items {
		items[i] = jobstore.WorkItem{ID: jobID + "-item-" + string(rune('a'+i)), JobID: jobID, ServiceID: "svc-a", StepIndex: 1}
	}
	err := s.CreateJobBundle(context.Background(), jobstore.JobBundle{
		Job: jobstore.Job{ID: jobID, Status: jobstore.StatusRunning},
		Steps: []jobstore.WorkflowStep{
			{JobID: jobID, StepIndex: 1, Expected: nItems},
		},
		UserWork: []jobstore.UserWork{
			{JobID: jobID, ServiceID: "svc-a", ReadyCount: nItems},
		},
		FirstStepItems: items,
	})
	require.NoError(t, err)
}

func TestClaimNextWorkItemFairOrdering(t *testing.T) {
	s := New()
	seedJob(t, s, "job-1", 2)

	first, err := s.ClaimNextWorkItem(context.Background(), "svc-a", "pod-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Equal(t, jobstore.ItemRunning, first.Status)

	second, err := s.ClaimNextWorkItem(context.Background(), "svc-a", "pod-2")
	require.NoError(t, err)
	require.NotNil(t, second)
	require.NotEqual(t, first.ID, second.ID)

	third, err := s.ClaimNextWorkItem(context.Background(), "svc-a", "pod-3")
	require.NoError(t, err)
	require.Nil(t, third)
}

func TestCompleteWorkItemAtMostOnceTerminal(t *testing.T) {
	s := New()
	seedJob(t, s, "job-2", 1)

	item, err := s.ClaimNextWorkItem(context.Background(), "svc-a", "pod-1")
	require.NoError(t, err)
	require.NotNil(t, item)

	_, err = s.CompleteWorkItem(context.Background(), item.ID, jobstore.CompletionReport{Status: jobstore.ItemSuccessful})
	require.NoError(t, err)

	_, err = s.CompleteWorkItem(context.Background(), item.ID, jobstore.CompletionReport{Status: jobstore.ItemFailed})
	require.ErrorIs(t, err, jobstore.ErrAlreadyTerminal)

	step, err := s.GetWorkflowStep(context.Background(), "job-2", 1)
	require.NoError(t, err)
	require.Equal(t, 1, step.Successful)
	require.Equal(t, 0, step.Failed)
}

func TestTransitionJobRejectsBackwardMotion(t *testing.T) {
	s := New()
	require.NoError(t, s.CreateJobBundle(context.Background(), jobstore.JobBundle{
		Job: jobstore.Job{ID: "job-3", Status: jobstore.StatusRunning},
	}))

	require.NoError(t, s.TransitionJob(context.Background(), "job-3", jobstore.StatusSuccessful, ""))
	err := s.TransitionJob(context.Background(), "job-3", jobstore.StatusRunning, "")
	require.ErrorIs(t, err, jobstore.ErrInvalidTransition)
}

func TestSetLabelsForJobDedupesAndLowercases(t *testing.T) {
	s := New()
	require.NoError(t, s.CreateJobBundle(context.Background(), jobstore.JobBundle{
		Job: jobstore.Job{ID: "job-4", Status: jobstore.StatusRunning},
	}))

	err := s.SetLabelsForJob(context.Background(), "job-4", "jdoe", []string{"Foo", "foo", "Bar"})
	require.NoError(t, err)

	job, err := s.GetJob(context.Background(), "job-4")
	require.NoError(t, err)
	require.Equal(t, []string{"bar", "foo"}, job.Labels)
}

func TestCancelJobSweepsNonTerminalItems(t *testing.T) {
	s := New()
	seedJob(t, s, "job-5", 4)

	first, err := s.ClaimNextWorkItem(context.Background(), "svc-a", "pod-1")
	require.NoError(t, err)
	_, err = s.CompleteWorkItem(context.Background(), first.ID, jobstore.CompletionReport{Status: jobstore.ItemSuccessful})
	require.NoError(t, err)

	require.NoError(t, s.CancelJob(context.Background(), "job-5"))

	job, err := s.GetJob(context.Background(), "job-5")
	require.NoError(t, err)
	require.Equal(t, jobstore.StatusCanceled, job.Status)

	ready, err := s.ListReadyForStep(context.Background(), "job-5", 1)
	require.NoError(t, err)
	require.Empty(t, ready)
}
