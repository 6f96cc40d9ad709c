package jobstore

import "context"

// JobStore is the transactional persistence contract spec.md §4.3 names.
// Every implementation must run each method inside a single transaction
// so the invariants in spec.md §3 hold under concurrent callers.
type JobStore interface {
	// CreateJobBundle persists bundle atomically; on conflict the whole
	// bundle rolls back.
	CreateJobBundle(ctx context.Context, bundle JobBundle) error

	// ClaimNextWorkItem atomically selects one ready item for serviceID
	// subject to fair scheduling (spec.md §4.5), marks it running, stamps
	// pod, and returns it. Returns (nil, nil) when nothing is ready.
	ClaimNextWorkItem(ctx context.Context, serviceID, pod string) (*WorkItem, error)

	// CompleteWorkItem applies report to the item named by id and returns
	// the updated item so the coordinator can release the service's
	// concurrency slot and evaluate step advancement without a second
	// round trip. Returns ErrAlreadyTerminal (mapped to HTTP 409 by
	// callers) if the item was already terminal; it must not otherwise
	// mutate state in that case.
	CompleteWorkItem(ctx context.Context, id string, report CompletionReport) (*WorkItem, error)

	// TransitionJob enforces spec.md §3's allowed-transition table;
	// rejects backward or already-terminal motion.
	TransitionJob(ctx context.Context, id string, newStatus JobStatus, message string) error

	// SetLabelsForJob replaces the job's label set atomically,
	// deduplicating per username and lower-casing values.
	SetLabelsForJob(ctx context.Context, jobID, username string, labels []string) error

	// ProviderOf is a small hot path; implementations are expected to
	// cache it (spec.md §5 "must be cacheable").
	ProviderOf(ctx context.Context, jobID string) (string, error)

	// GetJob returns the current Job row.
	GetJob(ctx context.Context, id string) (*Job, error)

	// ListReadyForStep returns every WorkItem in {ready} for (jobID, stepIndex).
	ListReadyForStep(ctx context.Context, jobID string, stepIndex int) ([]WorkItem, error)

	// AppendWorkItems appends items to a step, used by the coordinator
	// when materializing step N+1 or flushing a batch buffer.
	AppendWorkItems(ctx context.Context, jobID string, stepIndex int, items []WorkItem) error

	// GetWorkflowStep returns the step row for (jobID, stepIndex).
	GetWorkflowStep(ctx context.Context, jobID string, stepIndex int) (*WorkflowStep, error)

	// CancelJob marks the job and sweeps its non-terminal items to
	// canceled in one transaction, per spec.md §4.5's cancellation
	// contract.
	CancelJob(ctx context.Context, id string) error
}
