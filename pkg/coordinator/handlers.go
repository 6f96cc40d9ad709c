package coordinator

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/jobstore"
)

// Router builds the full mux.Router spec.md §6 names: the worker-facing
// surface, the deployment callback, the user-facing job endpoints, and
// the ambient /healthz endpoint. No /metrics route is registered.
func (c *Coordinator) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/service/work", c.handleGetWork).Methods(http.MethodGet)
	r.HandleFunc("/service/work/{id}", c.handlePutWork).Methods(http.MethodPut)
	r.HandleFunc("/service/metrics", c.handleServiceMetrics).Methods(http.MethodPost)
	r.HandleFunc("/service/deployment-callback", c.handleDeploymentCallback).Methods(http.MethodPost)

	r.HandleFunc("/jobs/{id}", c.handleGetJob).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{id}/cancel", c.handleJobAction(jobstore.StatusCanceled)).Methods(http.MethodPost)
	r.HandleFunc("/jobs/{id}/pause", c.handleJobAction(jobstore.StatusPaused)).Methods(http.MethodPost)
	r.HandleFunc("/jobs/{id}/resume", c.handleJobAction(jobstore.StatusRunning)).Methods(http.MethodPost)

	r.HandleFunc("/healthz", c.handleHealthz).Methods(http.MethodGet)

	return r
}

type workResponse struct {
	WorkItem       *jobstore.WorkItem `json:"workItem"`
	MaxCmrGranules int                `json:"maxCmrGranules"`
}

func (c *Coordinator) handleGetWork(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("serviceID")
	podName := r.URL.Query().Get("podName")
	if serviceID == "" || podName == "" {
		herrors.WriteHTTP(w, herrors.Validation("serviceID and podName are required").Build())
		return
	}

	item, err := c.scheduler.Dispatch(r.Context(), serviceID, podName)
	if err != nil {
		herrors.WriteHTTP(w, err)
		return
	}
	if item == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, c, http.StatusOK, workResponse{WorkItem: item, MaxCmrGranules: c.maxCmrGranules})
}

type completionPayload struct {
	Status      jobstore.WorkItemStatus `json:"status"`
	Results     []string                `json:"results"`
	TotalBytes  int64                   `json:"totalGranulesSize"`
	OutputSizes []int64                 `json:"outputItemSizes"`
	Error       string                  `json:"error,omitempty"`
	ScrollID    string                  `json:"scrollID,omitempty"`
	Hits        *int                    `json:"hits,omitempty"`
}

func (c *Coordinator) handlePutWork(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload completionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		herrors.WriteHTTP(w, herrors.Validation("malformed completion payload: %v", err).Build())
		return
	}

	item, err := c.store.CompleteWorkItem(r.Context(), id, jobstore.CompletionReport{
		Status:      payload.Status,
		Results:     payload.Results,
		TotalBytes:  payload.TotalBytes,
		OutputSizes: payload.OutputSizes,
		Error:       payload.Error,
		NewScrollID: payload.ScrollID,
		Hits:        payload.Hits,
	})
	if err != nil {
		if herrors.KindOf(err) == herrors.KindConflict {
			w.WriteHeader(http.StatusConflict)
			return
		}
		herrors.WriteHTTP(w, err)
		return
	}

	c.scheduler.ReleaseOnCompletion(item.ServiceID)
	if c.advancer != nil {
		if err := c.advancer.Advance(r.Context(), item); err != nil {
			c.log.Error().Err(err).Str("workItem", id).Msg("failed to advance workflow step")
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (c *Coordinator) handleServiceMetrics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
		JobID     string `json:"jobId"`
		StepIndex int    `json:"stepIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		herrors.WriteHTTP(w, herrors.Validation("malformed metrics request: %v", err).Build())
		return
	}

	items, err := c.store.ListReadyForStep(r.Context(), req.JobID, req.StepIndex)
	if err != nil {
		herrors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, c, http.StatusOK, map[string]int{"availableWorkItems": len(items)})
}

func (c *Coordinator) handleDeploymentCallback(w http.ResponseWriter, r *http.Request) {
	if !c.checkSecret(r.Header.Get("cookie-secret")) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		DeployService   string `json:"deployService"`
		Image           string `json:"image"`
		ServiceQueueURL string `json:"serviceQueueUrls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		herrors.WriteHTTP(w, herrors.Validation("malformed deployment callback: %v", err).Build())
		return
	}

	if err := c.refreshImage(r.Context(), req.DeployService, req.Image); err != nil {
		herrors.WriteHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (c *Coordinator) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := c.store.GetJob(r.Context(), id)
	if err != nil {
		herrors.WriteHTTP(w, err)
		return
	}
	writeJSON(w, c, http.StatusOK, job)
}

func (c *Coordinator) handleJobAction(target jobstore.JobStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		if target == jobstore.StatusCanceled {
			if err := c.scheduler.Cancel(r.Context(), id); err != nil {
				herrors.WriteHTTP(w, err)
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}

		if err := c.store.TransitionJob(r.Context(), id, target, ""); err != nil {
			herrors.WriteHTTP(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (c *Coordinator) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, c *Coordinator, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.log.Error().Err(err).Msg("failed to encode response body")
	}
}
