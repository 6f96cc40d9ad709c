// Package memstore implements jobstore.JobStore as mutex-guarded
// in-memory maps, grounded on the teacher's map-based
// pipeline.JobOrchestrator. It backs unit tests for Planner, Scheduler,
// and WorkCoordinator without a live Postgres instance, and can serve as
// an embedded store for a single-node deployment of the coordinator.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/jobstore"
)

// Store is an in-memory jobstore.JobStore. The zero value is not usable;
// call New.
type Store struct {
	mu sync.Mutex

	jobs     map[string]*jobstore.Job
	steps    map[string]map[int]*jobstore.WorkflowStep
	items    map[string]*jobstore.WorkItem
	userWork map[string]map[string]*jobstore.UserWork // jobID -> serviceID -> row
	labels   map[string]map[string]bool               // username -> lower-cased values

	seq int64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		jobs:     make(map[string]*jobstore.Job),
		steps:    make(map[string]map[int]*jobstore.WorkflowStep),
		items:    make(map[string]*jobstore.WorkItem),
		userWork: make(map[string]map[string]*jobstore.UserWork),
		labels:   make(map[string]map[string]bool),
	}
}

func (s *Store) nextSortKey() int64 {
	s.seq++
	return s.seq
}

// CreateJobBundle implements jobstore.JobStore.
func (s *Store) CreateJobBundle(ctx context.Context, bundle jobstore.JobBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[bundle.Job.ID]; exists {
		return herrors.Conflict("job %s already exists", bundle.Job.ID)
	}

	job := bundle.Job
	s.jobs[job.ID] = &job

	stepsByIndex := make(map[int]*jobstore.WorkflowStep, len(bundle.Steps))
	for _, step := range bundle.Steps {
		st := step
		if _, dup := stepsByIndex[st.StepIndex]; dup {
			delete(s.jobs, job.ID)
			return herrors.Conflict("duplicate step index %d for job %s", st.StepIndex, job.ID)
		}
		stepsByIndex[st.StepIndex] = &st
	}
	s.steps[job.ID] = stepsByIndex

	rows := make(map[string]*jobstore.UserWork, len(bundle.UserWork))
	for _, uw := range bundle.UserWork {
		row := uw
		rows[row.ServiceID] = &row
	}
	s.userWork[job.ID] = rows

	for _, item := range bundle.FirstStepItems {
		it := item
		it.SortKey = s.nextSortKey()
		if it.Status == "" {
			it.Status = jobstore.ItemReady
		}
		s.items[it.ID] = &it
	}

	return nil
}

// ClaimNextWorkItem implements jobstore.JobStore's fair-scheduling
// contract (spec.md §4.5, §5): oldest last_worked (job,service) row
// first, ties by job id; within it, oldest ready item, ties by item id.
func (s *Store) ClaimNextWorkItem(ctx context.Context, serviceID, pod string) (*jobstore.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bestJobID string
	var bestRow *jobstore.UserWork
	for jobID, rows := range s.userWork {
		row, ok := rows[serviceID]
		if !ok || row.ReadyCount <= 0 {
			continue
		}
		if bestRow == nil ||
			row.LastWorked.Before(bestRow.LastWorked) ||
			(row.LastWorked.Equal(bestRow.LastWorked) && jobID < bestJobID) {
			bestRow = row
			bestJobID = jobID
		}
	}
	if bestRow == nil {
		return nil, nil
	}

	var candidate *jobstore.WorkItem
	for _, item := range s.items {
		if item.JobID != bestJobID || item.ServiceID != serviceID || item.Status != jobstore.ItemReady {
			continue
		}
		if candidate == nil || item.SortKey < candidate.SortKey {
			candidate = item
		}
	}
	if candidate == nil {
		return nil, nil
	}

	candidate.Status = jobstore.ItemRunning
	candidate.PodName = pod
	candidate.UpdatedAt = now()

	bestRow.ReadyCount--
	bestRow.RunningCount++
	bestRow.LastWorked = candidate.UpdatedAt

	out := *candidate
	return &out, nil
}

// CompleteWorkItem implements jobstore.JobStore.
func (s *Store) CompleteWorkItem(ctx context.Context, id string, report jobstore.CompletionReport) (*jobstore.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, herrors.NotFound("work item %s not found", id)
	}
	if item.Status.IsTerminal() {
		return nil, jobstore.ErrAlreadyTerminal
	}

	item.Status = report.Status
	item.Results = report.Results
	item.TotalBytes = report.TotalBytes
	item.OutputSizes = report.OutputSizes
	item.Error = report.Error
	item.UpdatedAt = now()
	if report.NewScrollID != "" {
		item.ScrollID = report.NewScrollID
	}

	if rows, ok := s.userWork[item.JobID]; ok {
		if row, ok := rows[item.ServiceID]; ok {
			if row.RunningCount > 0 {
				row.RunningCount--
			}
		}
	}

	step := s.steps[item.JobID][item.StepIndex]
	if step != nil {
		switch report.Status {
		case jobstore.ItemSuccessful:
			step.Successful++
		case jobstore.ItemFailed:
			step.Failed++
		}
	}

	out := *item
	return &out, nil
}

// TransitionJob implements jobstore.JobStore.
func (s *Store) TransitionJob(ctx context.Context, id string, newStatus jobstore.JobStatus, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return herrors.NotFound("job %s not found", id)
	}
	if !jobstore.CanTransition(job.Status, newStatus) {
		return jobstore.ErrInvalidTransition
	}
	job.Status = newStatus
	job.UpdatedAt = now()
	if message != "" {
		job.Messages = append(job.Messages, message)
	}
	return nil
}

// SetLabelsForJob implements jobstore.JobStore.
func (s *Store) SetLabelsForJob(ctx context.Context, jobID, username string, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return herrors.NotFound("job %s not found", jobID)
	}

	set, ok := s.labels[username]
	if !ok {
		set = make(map[string]bool)
		s.labels[username] = set
	}

	dedup := make(map[string]bool, len(labels))
	normalized := make([]string, 0, len(labels))
	for _, l := range labels {
		lower := strings.ToLower(strings.TrimSpace(l))
		if lower == "" || dedup[lower] {
			continue
		}
		dedup[lower] = true
		normalized = append(normalized, lower)
		set[lower] = true
	}
	sort.Strings(normalized)
	job.Labels = normalized
	return nil
}

// ProviderOf implements jobstore.JobStore.
func (s *Store) ProviderOf(ctx context.Context, jobID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return "", herrors.NotFound("job %s not found", jobID)
	}
	return job.ProviderID, nil
}

// GetJob implements jobstore.JobStore.
func (s *Store) GetJob(ctx context.Context, id string) (*jobstore.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, herrors.NotFound("job %s not found", id)
	}
	out := *job
	return &out, nil
}

// ListReadyForStep implements jobstore.JobStore.
func (s *Store) ListReadyForStep(ctx context.Context, jobID string, stepIndex int) ([]jobstore.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []jobstore.WorkItem
	for _, item := range s.items {
		if item.JobID == jobID && item.StepIndex == stepIndex && item.Status == jobstore.ItemReady {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

// AppendWorkItems implements jobstore.JobStore.
func (s *Store) AppendWorkItems(ctx context.Context, jobID string, stepIndex int, items []jobstore.WorkItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps[jobID][stepIndex]
	if step == nil {
		return herrors.NotFound("workflow step %d not found for job %s", stepIndex, jobID)
	}

	for _, item := range items {
		it := item
		it.SortKey = s.nextSortKey()
		if it.Status == "" {
			it.Status = jobstore.ItemReady
		}
		s.items[it.ID] = &it
		step.Created++

		if rows, ok := s.userWork[jobID]; ok {
			if row, ok := rows[it.ServiceID]; ok && it.Status == jobstore.ItemReady {
				row.ReadyCount++
			}
		}
	}
	return nil
}

// GetWorkflowStep implements jobstore.JobStore.
func (s *Store) GetWorkflowStep(ctx context.Context, jobID string, stepIndex int) (*jobstore.WorkflowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps[jobID][stepIndex]
	if step == nil {
		return nil, herrors.NotFound("workflow step %d not found for job %s", stepIndex, jobID)
	}
	out := *step
	return &out, nil
}

// CancelJob implements jobstore.JobStore.
func (s *Store) CancelJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return herrors.NotFound("job %s not found", id)
	}
	if job.Status.IsTerminal() {
		return jobstore.ErrInvalidTransition
	}

	job.Status = jobstore.StatusCanceled
	job.UpdatedAt = now()

	for _, item := range s.items {
		if item.JobID == id && !item.Status.IsTerminal() {
			item.Status = jobstore.ItemCanceled
			item.UpdatedAt = job.UpdatedAt
		}
	}
	for _, row := range s.userWork[id] {
		row.ReadyCount = 0
		row.RunningCount = 0
	}
	return nil
}

func now() time.Time { return time.Now().UTC() }
