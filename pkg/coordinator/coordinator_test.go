package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/jobstore/memstore"
	"github.com/Azure/harmony/pkg/scheduler"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	sched := scheduler.New(store, scheduler.NewConcurrencyLimiter(nil))
	c := New(Options{
		Store:          store,
		Scheduler:      sched,
		DeploySecret:   "s3cr3t",
		MaxCmrGranules: 2000,
		NewItemID:      func() string { return "item-next" },
	})
	return c, store
}

func seedReadyJob(t *testing.T, store *memstore.Store, jobID string) {
	t.Helper()
	require.NoError(t, store.CreateJobBundle(context.Background(), jobstore.JobBundle{
		Job: jobstore.Job{ID: jobID, Status: jobstore.StatusRunning},
		Steps: []jobstore.WorkflowStep{
			{JobID: jobID, StepIndex: 1, ServiceImageID: "svc-a", Expected: 1},
		},
		UserWork: []jobstore.UserWork{
			{JobID: jobID, ServiceID: "svc-a", Username: "jdoe", ReadyCount: 1},
		},
		FirstStepItems: []jobstore.WorkItem{
			{ID: "item-1", JobID: jobID, ServiceID: "svc-a", StepIndex: 1, Status: jobstore.ItemReady},
		},
	}))
}

func TestHandleGetWorkReturnsReadyItem(t *testing.T) {
	c, store := newTestCoordinator(t)
	seedReadyJob(t, store, "job-1")

	req := httptest.NewRequest(http.MethodGet, "/service/work?serviceID=svc-a&podName=pod-1", nil)
	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body workResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "item-1", body.WorkItem.ID)
	require.Equal(t, 2000, body.MaxCmrGranules)
}

func TestHandleGetWorkReturnsNotFoundWhenNothingReady(t *testing.T) {
	c, _ := newTestCoordinator(t)

	req := httptest.NewRequest(http.MethodGet, "/service/work?serviceID=svc-a&podName=pod-1", nil)
	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlePutWorkRejectsSecondCompletionWithConflict(t *testing.T) {
	c, store := newTestCoordinator(t)
	seedReadyJob(t, store, "job-2")

	body, _ := json.Marshal(completionPayload{Status: jobstore.ItemSuccessful, Results: []string{"s3://out/1"}})

	req := httptest.NewRequest(http.MethodPut, "/service/work/item-1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req2 := httptest.NewRequest(http.MethodPut, "/service/work/item-1", bytes.NewReader(body))
	rr2 := httptest.NewRecorder()
	c.Router().ServeHTTP(rr2, req2)
	require.Equal(t, http.StatusConflict, rr2.Code)
}

func TestHandleDeploymentCallbackRejectsBadSecret(t *testing.T) {
	c, _ := newTestCoordinator(t)

	body, _ := json.Marshal(map[string]string{"deployService": "svc-a", "image": "svc-a:v2"})
	req := httptest.NewRequest(http.MethodPost, "/service/deployment-callback", bytes.NewReader(body))
	req.Header.Set("cookie-secret", "wrong")

	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleDeploymentCallbackAcceptsCorrectSecret(t *testing.T) {
	c, _ := newTestCoordinator(t)

	body, _ := json.Marshal(map[string]string{"deployService": "svc-a", "image": "svc-a:v2"})
	req := httptest.NewRequest(http.MethodPost, "/service/deployment-callback", bytes.NewReader(body))
	req.Header.Set("cookie-secret", "s3cr3t")

	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	image, ok := c.images.Get("svc-a")
	require.True(t, ok)
	require.Equal(t, "svc-a:v2", image)
}

func TestHandleJobActionCancel(t *testing.T) {
	c, store := newTestCoordinator(t)
	seedReadyJob(t, store, "job-3")

	req := httptest.NewRequest(http.MethodPost, "/jobs/job-3/cancel", nil)
	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	job, err := store.GetJob(context.Background(), "job-3")
	require.NoError(t, err)
	require.Equal(t, jobstore.StatusCanceled, job.Status)
}

func TestHandleHealthz(t *testing.T) {
	c, _ := newTestCoordinator(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	c.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
