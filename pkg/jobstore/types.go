// Package jobstore defines the transactional persistence contract for
// jobs, workflow steps, work items, per-user fair-scheduling rows, and
// labels (spec.md §4.3), plus the in-memory types every implementation
// shares.
package jobstore

import "time"

// JobStatus enumerates spec.md §3's Job.status values.
type JobStatus string

const (
	StatusAccepted           JobStatus = "accepted"
	StatusPreviewing         JobStatus = "previewing"
	StatusRunning            JobStatus = "running"
	StatusPaused             JobStatus = "paused"
	StatusCanceled           JobStatus = "canceled"
	StatusSuccessful         JobStatus = "successful"
	StatusCompleteWithErrors JobStatus = "complete-with-errors"
	StatusFailed             JobStatus = "failed"
)

// terminal is the set of absorbing statuses (spec.md §3's Job lifecycle
// invariant: "A Job transitions to a terminal status exactly once;
// terminal -> terminal is forbidden").
var terminal = map[JobStatus]bool{
	StatusCanceled:           true,
	StatusSuccessful:         true,
	StatusCompleteWithErrors: true,
	StatusFailed:             true,
}

// IsTerminal reports whether s is an absorbing status.
func (s JobStatus) IsTerminal() bool { return terminal[s] }

// allowedTransitions encodes spec.md §3's "Status transitions are
// monotonic except {running<->paused} and initial
// {accepted|previewing->running}".
var allowedTransitions = map[JobStatus]map[JobStatus]bool{
	StatusAccepted: {
		StatusPreviewing: true,
		StatusRunning:    true,
		StatusCanceled:   true,
		StatusFailed:     true,
	},
	StatusPreviewing: {
		StatusRunning:  true,
		StatusCanceled: true,
		StatusFailed:   true,
	},
	StatusRunning: {
		StatusPaused:             true,
		StatusCanceled:           true,
		StatusSuccessful:         true,
		StatusCompleteWithErrors: true,
		StatusFailed:             true,
	},
	StatusPaused: {
		StatusRunning:  true,
		StatusCanceled: true,
		StatusFailed:   true,
	},
}

// CanTransition reports whether from -> to is an allowed Job status
// transition, per spec.md §3 and the TransitionJob contract (§4.3).
func CanTransition(from, to JobStatus) bool {
	if from.IsTerminal() {
		return false
	}
	return allowedTransitions[from][to]
}

// WorkItemStatus enumerates spec.md §3's WorkItem.status values.
type WorkItemStatus string

const (
	ItemReady      WorkItemStatus = "ready"
	ItemRunning    WorkItemStatus = "running"
	ItemSuccessful WorkItemStatus = "successful"
	ItemFailed     WorkItemStatus = "failed"
	ItemCanceled   WorkItemStatus = "canceled"
	ItemQueued     WorkItemStatus = "queued"
)

var terminalItemStatus = map[WorkItemStatus]bool{
	ItemSuccessful: true,
	ItemFailed:     true,
	ItemCanceled:   true,
}

// IsTerminal reports whether s is an absorbing WorkItem status.
func (s WorkItemStatus) IsTerminal() bool { return terminalItemStatus[s] }

// Job is the user-facing unit, per spec.md §3.
type Job struct {
	ID               string
	RequestID        string
	Username         string
	Status           JobStatus
	Progress         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	OriginalURL      string
	IsAsync          bool
	NumInputGranules int
	Messages         []string
	CollectionIDs    []string
	IgnoreErrors     bool
	DestinationURL   string
	ServiceName      string
	ProviderID       string
	Labels           []string
	RelatedLinks     []string
}

// WorkflowStep is a single stage of a chain, per spec.md §3.
type WorkflowStep struct {
	JobID             string
	StepIndex         int
	ServiceImageID    string
	OperationDocument []byte // OperationDocument.Serialize output, specialized for this step
	Expected          int
	Created           int
	Successful        int
	Failed            int
	AggregatedOutput  bool
	Batched           bool
	Sequential        bool
	MaxBatchInputs    int
	MaxBatchBytes     int64
	ProgressWeight    float64
}

// IsTerminal reports whether the step has resolved. Under ignore-errors
// it is terminal once successful+failed reaches expected; under strict it
// is terminal on the first failure, or once successful+failed reaches
// expected.
func (s WorkflowStep) IsTerminal(ignoreErrors bool) bool {
	if ignoreErrors {
		return s.Successful+s.Failed >= s.Expected
	}
	return s.Failed > 0 || s.Successful+s.Failed >= s.Expected
}

// WorkItem is the smallest unit of execution, per spec.md §3.
type WorkItem struct {
	ID          string
	JobID       string
	ServiceID   string
	StepIndex   int
	Status      WorkItemStatus
	ScrollID    string   // set only for the CMR-query step
	Inputs      []string // URLs or inline operation hints; empty when ScrollID is set
	Results     []string // STAC catalog URLs
	TotalBytes  int64
	OutputSizes []int64
	RetryCount  int
	PodName     string
	Error       string
	UpdatedAt   time.Time
	SortKey     int64
}

// UserWork is the per-(job,service) fair-scheduling row, per spec.md §3.
type UserWork struct {
	JobID        string
	ServiceID    string
	Username     string
	ReadyCount   int
	RunningCount int
	IsAsync      bool
	LastWorked   time.Time
}

// Label is a per-username deduplicated, lower-cased tag, per spec.md
// §4.3's set_labels_for_job contract.
type Label struct {
	Username string
	Value    string
}

// JobBundle is everything CreateJobBundle persists in one transaction.
type JobBundle struct {
	Job           Job
	Steps         []WorkflowStep
	UserWork      []UserWork
	FirstStepItems []WorkItem
}

// CompletionReport is the payload CompleteWorkItem applies to a WorkItem.
type CompletionReport struct {
	Status      WorkItemStatus
	Results     []string
	TotalBytes  int64
	OutputSizes []int64
	Error       string
	NewScrollID string
	Hits        *int
}
