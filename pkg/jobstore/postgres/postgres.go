// Package postgres implements jobstore.JobStore over a relational store
// via pgx/v5 and pgxpool, per spec.md §4.3 and §6's persisted state
// layout. Every mutating method runs inside a single pgx.Tx, and the
// create, claim and complete paths use serializable isolation per spec.md
// §5 ("row-level transactions with serializable-or-stronger guarantees").
// The read-only lookups (ProviderOf, GetJob, ListReadyForStep,
// GetWorkflowStep) query the pool directly, outside a transaction.
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/jobstore/postgres/migrations"
)

// Store is a pgxpool-backed jobstore.JobStore.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-configured pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pgxpool against dsn.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, herrors.Internal(err, "failed to connect to job store database").Build()
	}
	return pool, nil
}

// Migrate applies every pending migration in pkg/jobstore/postgres/migrations
// via goose, using database/sql through the pgx stdlib driver (goose
// requires *sql.DB, not a pgxpool.Pool).
func Migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return herrors.Internal(err, "failed to open migration connection").Build()
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return herrors.Internal(err, "failed to set goose dialect").Build()
	}
	if err := goose.Up(db, "."); err != nil {
		return herrors.Internal(err, "failed to run job store migrations").Build()
	}
	return nil
}

func serializableTx(ctx context.Context, pool *pgxpool.Pool) (pgx.Tx, error) {
	return pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
}

// CreateJobBundle implements jobstore.JobStore.
func (s *Store) CreateJobBundle(ctx context.Context, bundle jobstore.JobBundle) error {
	tx, err := serializableTx(ctx, s.pool)
	if err != nil {
		return herrors.Internal(err, "failed to begin create-job-bundle transaction").Build()
	}
	defer tx.Rollback(ctx)

	j := bundle.Job
	_, err = tx.Exec(ctx, `
		INSERT INTO jobs (id, request_id, username, status, progress, original_url, is_async,
			num_input_granules, messages, collection_ids, ignore_errors, destination_url,
			service_name, provider_id, related_links)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		j.ID, j.RequestID, j.Username, string(j.Status), j.Progress, j.OriginalURL, j.IsAsync,
		j.NumInputGranules, j.Messages, j.CollectionIDs, j.IgnoreErrors, j.DestinationURL,
		j.ServiceName, j.ProviderID, j.RelatedLinks)
	if err != nil {
		return herrors.Internal(err, "failed to insert job %s", j.ID).Build()
	}

	for _, step := range bundle.Steps {
		_, err = tx.Exec(ctx, `
			INSERT INTO workflow_steps (job_id, step_index, service_image_id, operation_document,
				expected, created, successful, failed, aggregated_output, batched, sequential,
				max_batch_inputs, max_batch_bytes, progress_weight)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			step.JobID, step.StepIndex, step.ServiceImageID, step.OperationDocument,
			step.Expected, step.Created, step.Successful, step.Failed, step.AggregatedOutput,
			step.Batched, step.Sequential, step.MaxBatchInputs, step.MaxBatchBytes, step.ProgressWeight)
		if err != nil {
			return herrors.Internal(err, "failed to insert workflow step %d for job %s", step.StepIndex, j.ID).Build()
		}
	}

	for _, uw := range bundle.UserWork {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_work (job_id, service_id, username, ready_count, running_count, is_async, last_worked)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uw.JobID, uw.ServiceID, uw.Username, uw.ReadyCount, uw.RunningCount, uw.IsAsync, uw.LastWorked)
		if err != nil {
			return herrors.Internal(err, "failed to insert user_work row for job %s", j.ID).Build()
		}
	}

	if err := insertItems(ctx, tx, bundle.FirstStepItems); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return herrors.Internal(err, "failed to commit create-job-bundle transaction").Build()
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, items []jobstore.WorkItem) error {
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = jobstore.ItemReady
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO work_items (id, job_id, service_id, step_index, status, scroll_id, inputs,
				results, total_bytes, output_sizes, retry_count, pod_name, error, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, now())`,
			item.ID, item.JobID, item.ServiceID, item.StepIndex, string(status), item.ScrollID,
			item.Inputs, item.Results, item.TotalBytes, item.OutputSizes, item.RetryCount,
			item.PodName, item.Error)
		if err != nil {
			return herrors.Internal(err, "failed to insert work item %s", item.ID).Build()
		}
	}
	return nil
}

// ClaimNextWorkItem implements jobstore.JobStore's fair-scheduling claim,
// per spec.md §4.5: oldest last_worked (job,service) row first, then the
// oldest ready item for that pair, `FOR UPDATE SKIP LOCKED` to avoid
// contention between concurrent coordinator requests.
func (s *Store) ClaimNextWorkItem(ctx context.Context, serviceID, pod string) (*jobstore.WorkItem, error) {
	tx, err := serializableTx(ctx, s.pool)
	if err != nil {
		return nil, herrors.Internal(err, "failed to begin claim transaction").Build()
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT wi.id, wi.job_id, wi.service_id, wi.step_index, wi.status, wi.scroll_id,
			wi.inputs, wi.results, wi.total_bytes, wi.output_sizes, wi.retry_count,
			wi.pod_name, wi.error, wi.updated_at, wi.sort_key
		FROM work_items wi
		JOIN user_work uw ON uw.job_id = wi.job_id AND uw.service_id = wi.service_id
		WHERE wi.service_id = $1 AND wi.status = 'ready' AND uw.ready_count > 0
		ORDER BY uw.last_worked ASC, wi.job_id ASC, wi.sort_key ASC
		LIMIT 1
		FOR UPDATE OF wi SKIP LOCKED`, serviceID)

	var item jobstore.WorkItem
	var status string
	if err := row.Scan(&item.ID, &item.JobID, &item.ServiceID, &item.StepIndex, &status, &item.ScrollID,
		&item.Inputs, &item.Results, &item.TotalBytes, &item.OutputSizes, &item.RetryCount,
		&item.PodName, &item.Error, &item.UpdatedAt, &item.SortKey); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, herrors.Internal(err, "failed to select next ready work item").Build()
	}
	item.Status = jobstore.WorkItemStatus(status)

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE work_items SET status = 'running', pod_name = $1, updated_at = $2 WHERE id = $3`,
		pod, now, item.ID); err != nil {
		return nil, herrors.Internal(err, "failed to mark work item %s running", item.ID).Build()
	}
	if _, err := tx.Exec(ctx, `UPDATE user_work SET ready_count = ready_count - 1, running_count = running_count + 1, last_worked = $1
		WHERE job_id = $2 AND service_id = $3`, now, item.JobID, item.ServiceID); err != nil {
		return nil, herrors.Internal(err, "failed to update user_work for job %s", item.JobID).Build()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, herrors.Internal(err, "failed to commit claim transaction").Build()
	}

	item.Status = jobstore.ItemRunning
	item.PodName = pod
	item.UpdatedAt = now
	return &item, nil
}

// CompleteWorkItem implements jobstore.JobStore.
func (s *Store) CompleteWorkItem(ctx context.Context, id string, report jobstore.CompletionReport) (*jobstore.WorkItem, error) {
	tx, err := serializableTx(ctx, s.pool)
	if err != nil {
		return nil, herrors.Internal(err, "failed to begin complete transaction").Build()
	}
	defer tx.Rollback(ctx)

	var jobID, serviceID string
	var stepIndex int
	var currentStatus string
	row := tx.QueryRow(ctx, `SELECT job_id, service_id, step_index, status FROM work_items WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&jobID, &serviceID, &stepIndex, &currentStatus); err != nil {
		if err == pgx.ErrNoRows {
			return nil, herrors.NotFound("work item %s not found", id)
		}
		return nil, herrors.Internal(err, "failed to select work item %s", id).Build()
	}
	if jobstore.WorkItemStatus(currentStatus).IsTerminal() {
		return nil, jobstore.ErrAlreadyTerminal
	}

	scrollClause := ""
	args := []interface{}{string(report.Status), report.Results, report.TotalBytes, report.OutputSizes, report.Error, id}
	if report.NewScrollID != "" {
		scrollClause = ", scroll_id = $7"
		args = append(args, report.NewScrollID)
	}
	_, err = tx.Exec(ctx, `UPDATE work_items SET status = $1, results = $2, total_bytes = $3,
		output_sizes = $4, error = $5, updated_at = now()`+scrollClause+` WHERE id = $6`, args...)
	if err != nil {
		return nil, herrors.Internal(err, "failed to update work item %s", id).Build()
	}

	if _, err := tx.Exec(ctx, `UPDATE user_work SET running_count = GREATEST(running_count - 1, 0)
		WHERE job_id = $1 AND service_id = $2`, jobID, serviceID); err != nil {
		return nil, herrors.Internal(err, "failed to update user_work for job %s", jobID).Build()
	}

	switch report.Status {
	case jobstore.ItemSuccessful:
		if _, err := tx.Exec(ctx, `UPDATE workflow_steps SET successful = successful + 1 WHERE job_id = $1 AND step_index = $2`, jobID, stepIndex); err != nil {
			return nil, herrors.Internal(err, "failed to increment successful counter").Build()
		}
	case jobstore.ItemFailed:
		if _, err := tx.Exec(ctx, `UPDATE workflow_steps SET failed = failed + 1 WHERE job_id = $1 AND step_index = $2`, jobID, stepIndex); err != nil {
			return nil, herrors.Internal(err, "failed to increment failed counter").Build()
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, herrors.Internal(err, "failed to commit complete transaction").Build()
	}

	updated := &jobstore.WorkItem{
		ID:          id,
		JobID:       jobID,
		ServiceID:   serviceID,
		StepIndex:   stepIndex,
		Status:      report.Status,
		Results:     report.Results,
		TotalBytes:  report.TotalBytes,
		OutputSizes: report.OutputSizes,
		Error:       report.Error,
	}
	if report.NewScrollID != "" {
		updated.ScrollID = report.NewScrollID
	}
	return updated, nil
}

// TransitionJob implements jobstore.JobStore.
func (s *Store) TransitionJob(ctx context.Context, id string, newStatus jobstore.JobStatus, message string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return herrors.Internal(err, "failed to begin transition transaction").Build()
	}
	defer tx.Rollback(ctx)

	var current string
	if err := tx.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		if err == pgx.ErrNoRows {
			return herrors.NotFound("job %s not found", id)
		}
		return herrors.Internal(err, "failed to select job %s", id).Build()
	}
	if !jobstore.CanTransition(jobstore.JobStatus(current), newStatus) {
		return jobstore.ErrInvalidTransition
	}

	if message != "" {
		if _, err := tx.Exec(ctx, `UPDATE jobs SET status = $1, updated_at = now(), messages = array_append(messages, $2) WHERE id = $3`,
			string(newStatus), message, id); err != nil {
			return herrors.Internal(err, "failed to update job %s", id).Build()
		}
	} else {
		if _, err := tx.Exec(ctx, `UPDATE jobs SET status = $1, updated_at = now() WHERE id = $2`, string(newStatus), id); err != nil {
			return herrors.Internal(err, "failed to update job %s", id).Build()
		}
	}

	return commitOrWrap(ctx, tx, "transition")
}

// SetLabelsForJob implements jobstore.JobStore.
func (s *Store) SetLabelsForJob(ctx context.Context, jobID, username string, labels []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return herrors.Internal(err, "failed to begin label transaction").Build()
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM jobs_labels WHERE job_id = $1 AND username = $2`, jobID, username); err != nil {
		return herrors.Internal(err, "failed to clear labels for job %s", jobID).Build()
	}

	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		value := strings.ToLower(strings.TrimSpace(l))
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true

		if _, err := tx.Exec(ctx, `INSERT INTO labels (username, value) VALUES ($1,$2) ON CONFLICT DO NOTHING`, username, value); err != nil {
			return herrors.Internal(err, "failed to upsert label %q", value).Build()
		}
		if _, err := tx.Exec(ctx, `INSERT INTO jobs_labels (job_id, username, value) VALUES ($1,$2,$3)`, jobID, username, value); err != nil {
			return herrors.Internal(err, "failed to associate label %q with job %s", value, jobID).Build()
		}
	}

	return commitOrWrap(ctx, tx, "set-labels")
}

// ProviderOf implements jobstore.JobStore.
func (s *Store) ProviderOf(ctx context.Context, jobID string) (string, error) {
	var providerID string
	err := s.pool.QueryRow(ctx, `SELECT provider_id FROM jobs WHERE id = $1`, jobID).Scan(&providerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", herrors.NotFound("job %s not found", jobID)
		}
		return "", herrors.Internal(err, "failed to select provider for job %s", jobID).Build()
	}
	return providerID, nil
}

// GetJob implements jobstore.JobStore.
func (s *Store) GetJob(ctx context.Context, id string) (*jobstore.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, request_id, username, status, progress, created_at, updated_at, original_url,
			is_async, num_input_granules, messages, collection_ids, ignore_errors, destination_url,
			service_name, provider_id, related_links
		FROM jobs WHERE id = $1`, id)

	var job jobstore.Job
	var status string
	if err := row.Scan(&job.ID, &job.RequestID, &job.Username, &status, &job.Progress, &job.CreatedAt,
		&job.UpdatedAt, &job.OriginalURL, &job.IsAsync, &job.NumInputGranules, &job.Messages,
		&job.CollectionIDs, &job.IgnoreErrors, &job.DestinationURL, &job.ServiceName, &job.ProviderID,
		&job.RelatedLinks); err != nil {
		if err == pgx.ErrNoRows {
			return nil, herrors.NotFound("job %s not found", id)
		}
		return nil, herrors.Internal(err, "failed to select job %s", id).Build()
	}
	job.Status = jobstore.JobStatus(status)
	return &job, nil
}

// ListReadyForStep implements jobstore.JobStore.
func (s *Store) ListReadyForStep(ctx context.Context, jobID string, stepIndex int) ([]jobstore.WorkItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, job_id, service_id, step_index, status, scroll_id, inputs, results, total_bytes,
			output_sizes, retry_count, pod_name, error, updated_at, sort_key
		FROM work_items WHERE job_id = $1 AND step_index = $2 AND status = 'ready'
		ORDER BY sort_key ASC`, jobID, stepIndex)
	if err != nil {
		return nil, herrors.Internal(err, "failed to list ready items for job %s step %d", jobID, stepIndex).Build()
	}
	defer rows.Close()

	var out []jobstore.WorkItem
	for rows.Next() {
		var item jobstore.WorkItem
		var status string
		if err := rows.Scan(&item.ID, &item.JobID, &item.ServiceID, &item.StepIndex, &status, &item.ScrollID,
			&item.Inputs, &item.Results, &item.TotalBytes, &item.OutputSizes, &item.RetryCount,
			&item.PodName, &item.Error, &item.UpdatedAt, &item.SortKey); err != nil {
			return nil, herrors.Internal(err, "failed to scan work item row").Build()
		}
		item.Status = jobstore.WorkItemStatus(status)
		out = append(out, item)
	}
	return out, rows.Err()
}

// AppendWorkItems implements jobstore.JobStore.
func (s *Store) AppendWorkItems(ctx context.Context, jobID string, stepIndex int, items []jobstore.WorkItem) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return herrors.Internal(err, "failed to begin append-items transaction").Build()
	}
	defer tx.Rollback(ctx)

	var terminal bool
	if err := tx.QueryRow(ctx, `SELECT (failed > 0) OR (successful + failed >= expected) FROM workflow_steps WHERE job_id = $1 AND step_index = $2`,
		jobID, stepIndex).Scan(&terminal); err != nil {
		if err == pgx.ErrNoRows {
			return herrors.NotFound("workflow step %d not found for job %s", stepIndex, jobID)
		}
		return herrors.Internal(err, "failed to check step terminality").Build()
	}
	if terminal {
		return herrors.Validation("cannot append work items to terminal step %d of job %s", stepIndex, jobID)
	}

	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}

	for _, item := range items {
		status := item.Status
		if status == "" {
			status = jobstore.ItemReady
		}
		if status != jobstore.ItemReady {
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE user_work SET ready_count = ready_count + 1 WHERE job_id = $1 AND service_id = $2`,
			jobID, item.ServiceID); err != nil {
			return herrors.Internal(err, "failed to bump ready_count for job %s", jobID).Build()
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE workflow_steps SET created = created + $1 WHERE job_id = $2 AND step_index = $3`,
		len(items), jobID, stepIndex); err != nil {
		return herrors.Internal(err, "failed to update created counter").Build()
	}

	return commitOrWrap(ctx, tx, "append-items")
}

// GetWorkflowStep implements jobstore.JobStore.
func (s *Store) GetWorkflowStep(ctx context.Context, jobID string, stepIndex int) (*jobstore.WorkflowStep, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT job_id, step_index, service_image_id, operation_document, expected, created,
			successful, failed, aggregated_output, batched, sequential, max_batch_inputs,
			max_batch_bytes, progress_weight
		FROM workflow_steps WHERE job_id = $1 AND step_index = $2`, jobID, stepIndex)

	var step jobstore.WorkflowStep
	if err := row.Scan(&step.JobID, &step.StepIndex, &step.ServiceImageID, &step.OperationDocument,
		&step.Expected, &step.Created, &step.Successful, &step.Failed, &step.AggregatedOutput,
		&step.Batched, &step.Sequential, &step.MaxBatchInputs, &step.MaxBatchBytes, &step.ProgressWeight); err != nil {
		if err == pgx.ErrNoRows {
			return nil, herrors.NotFound("workflow step %d not found for job %s", stepIndex, jobID)
		}
		return nil, herrors.Internal(err, "failed to select workflow step").Build()
	}
	return &step, nil
}

// CancelJob implements jobstore.JobStore.
func (s *Store) CancelJob(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return herrors.Internal(err, "failed to begin cancel transaction").Build()
	}
	defer tx.Rollback(ctx)

	var current string
	if err := tx.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		if err == pgx.ErrNoRows {
			return herrors.NotFound("job %s not found", id)
		}
		return herrors.Internal(err, "failed to select job %s", id).Build()
	}
	if jobstore.JobStatus(current).IsTerminal() {
		return jobstore.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `UPDATE jobs SET status = 'canceled', updated_at = now() WHERE id = $1`, id); err != nil {
		return herrors.Internal(err, "failed to cancel job %s", id).Build()
	}
	if _, err := tx.Exec(ctx, `UPDATE work_items SET status = 'canceled', updated_at = now()
		WHERE job_id = $1 AND status NOT IN ('successful','failed','canceled')`, id); err != nil {
		return herrors.Internal(err, "failed to sweep work items for job %s", id).Build()
	}
	if _, err := tx.Exec(ctx, `UPDATE user_work SET ready_count = 0, running_count = 0 WHERE job_id = $1`, id); err != nil {
		return herrors.Internal(err, "failed to reset user_work for job %s", id).Build()
	}

	return commitOrWrap(ctx, tx, "cancel")
}

func commitOrWrap(ctx context.Context, tx pgx.Tx, op string) error {
	if err := tx.Commit(ctx); err != nil {
		return herrors.Internal(err, "failed to commit %s transaction", op).Build()
	}
	return nil
}
