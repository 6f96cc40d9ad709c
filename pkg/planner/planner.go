// Package planner implements the Planner: a pure function that expands a
// matched service chain into WorkflowSteps and initial WorkItems
// (spec.md §4.4). It performs no I/O — JobStore.CreateJobBundle persists
// whatever Plan it produces.
package planner

import (
	"fmt"
	"math"

	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/opdoc"
	"github.com/Azure/harmony/pkg/registry"
)

// cmrQueryPageSize is the number of granules each CMR-query work item
// requests; it bounds the CMR-query step's expected item count via
// ceil(granule_count / page_size) (spec.md §4.4).
const cmrQueryPageSize = 2000

// cmrQueryWeight is the CMR-query step's fixed progress weight; every
// other step weighs 1.0 (spec.md §4.4).
const cmrQueryWeight = 0.1

const concatenateOp = "concatenate"

// Input bundles everything plan needs.
type Input struct {
	Job              jobstore.Job
	ServiceChain     registry.ServiceConfig
	Operation        *opdoc.OperationDocument
	GranuleCount     int
	FirstStepScrollIDs []string // CMR pagination cursors; one per initial CMR-query work item
	NewItemID        func() string
	NewStepItemID    func(stepIndex, ordinal int) string
}

// Plan is everything CreateJobBundle persists in one transaction.
type Plan struct {
	Steps          []jobstore.WorkflowStep
	FirstStepItems []jobstore.WorkItem
	UserWork       []jobstore.UserWork
}

// Plan computes the WorkflowSteps, initial WorkItems, and UserWork rows
// for in.Job, per spec.md §4.4.
func Plan(in Input) (Plan, error) {
	if in.NewItemID == nil {
		return Plan{}, fmt.Errorf("planner: Input.NewItemID is required")
	}

	requested := requestedCapabilities(in.Operation)

	var steps []jobstore.WorkflowStep
	for i, rstep := range in.ServiceChain.Steps {
		if !predicateMatches(rstep, in.Operation, requested) {
			continue
		}
		stepIndex := i + 1
		projected, err := projectForStep(in.Operation, rstep)
		if err != nil {
			return Plan{}, err
		}
		serialized, err := projected.Serialize(projected.Version)
		if err != nil {
			return Plan{}, fmt.Errorf("planner: failed to serialize step %d operation: %w", stepIndex, err)
		}

		weight := 1.0
		expected := 0
		if isCMRQueryStep(rstep) {
			weight = cmrQueryWeight
			expected = int(math.Ceil(float64(in.GranuleCount) / float64(cmrQueryPageSize)))
		}

		steps = append(steps, jobstore.WorkflowStep{
			JobID:             in.Job.ID,
			StepIndex:         stepIndex,
			ServiceImageID:    rstep.Image,
			OperationDocument: serialized,
			Expected:          expected,
			AggregatedOutput:  isAggregatedOutput(rstep),
			Batched:           rstep.Batched,
			Sequential:        rstep.Sequential,
			MaxBatchInputs:    rstep.MaxBatchInputs,
			MaxBatchBytes:     rstep.MaxBatchBytes,
			ProgressWeight:    weight,
		})
	}

	if len(steps) == 0 {
		return Plan{}, fmt.Errorf("planner: service chain %q produced no matching steps for this operation", in.ServiceChain.Name)
	}

	firstStep := steps[0]
	items := initialWorkItems(in, firstStep)
	firstStep.Expected = max(firstStep.Expected, len(items))
	steps[0] = firstStep

	userWork := make([]jobstore.UserWork, 0, len(steps))
	seenServices := map[string]bool{}
	for _, st := range steps {
		if seenServices[st.ServiceImageID] {
			continue
		}
		seenServices[st.ServiceImageID] = true
		readyCount := 0
		if st.StepIndex == firstStep.StepIndex {
			readyCount = len(items)
		}
		userWork = append(userWork, jobstore.UserWork{
			JobID:      in.Job.ID,
			ServiceID:  st.ServiceImageID,
			Username:   in.Job.Username,
			ReadyCount: readyCount,
		})
	}

	return Plan{Steps: steps, FirstStepItems: items, UserWork: userWork}, nil
}

// predicateMatches implements spec.md §4.4's step-inclusion rule,
// including the extend/concatenate exclusion special case: "if the
// predicate depends on both extend and concatenate and the user set
// extend=false explicitly while concatenate=true, the step is excluded."
func predicateMatches(step registry.Step, op *opdoc.OperationDocument, requested map[string]bool) bool {
	dependsOnExtendAndConcatenate := containsAll(step.Predicate.RequiresOps, "extend", concatenateOp)
	if dependsOnExtendAndConcatenate && op.Flags.ExtendSet && !op.Flags.Extend && op.Flags.Concatenate {
		return false
	}
	return step.Predicate.Matches(op, requested)
}

func containsAll(haystack []string, needles ...string) bool {
	set := make(map[string]bool, len(haystack))
	for _, h := range haystack {
		set[h] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}

// requestedCapabilities maps predicate operation names to whether op
// requests them, used by Predicate.Matches's RequiresOps check.
func requestedCapabilities(op *opdoc.OperationDocument) map[string]bool {
	return map[string]bool{
		"reproject":        op.HasCapability(opdoc.CapabilityReproject),
		"reformat":         op.HasCapability(opdoc.CapabilityReformat),
		"variable-subset":  op.HasCapability(opdoc.CapabilityVariableSubset),
		"spatial-subset":   op.HasCapability(opdoc.CapabilitySpatialSubset),
		"shape-subset":     op.HasCapability(opdoc.CapabilityShapeSubset),
		"dimension-subset": op.HasCapability(opdoc.CapabilityDimensionSubset),
		"temporal-subset":  op.HasCapability(opdoc.CapabilityTemporalSubset),
		concatenateOp:      op.HasCapability(opdoc.CapabilityConcatenate),
		"extend":           op.HasCapability(opdoc.CapabilityExtend),
		"area-averaging":   op.HasCapability(opdoc.CapabilityAreaAveraging),
		"time-averaging":   op.HasCapability(opdoc.CapabilityTimeAveraging),
	}
}

// isAggregatedOutput reports whether step declares any multi-catalog
// operation; currently only {concatenate} per spec.md §4.4.
func isAggregatedOutput(step registry.Step) bool {
	for _, op := range step.Operations {
		if op == concatenateOp {
			return true
		}
	}
	return false
}

func isCMRQueryStep(step registry.Step) bool {
	for _, op := range step.Operations {
		if op == "query-cmr" {
			return true
		}
	}
	return false
}

// projectForStep applies OpDoc projection (spec.md §4.1) using the
// step's declared operations mapped onto OpDoc capabilities.
func projectForStep(op *opdoc.OperationDocument, step registry.Step) (*opdoc.OperationDocument, error) {
	var keep []opdoc.Capability
	for _, name := range step.Operations {
		if cap, ok := capabilityForOperation(name); ok {
			keep = append(keep, cap)
		}
	}
	return op.Project(keep...), nil
}

func capabilityForOperation(name string) (opdoc.Capability, bool) {
	switch name {
	case "reproject":
		return opdoc.CapabilityReproject, true
	case "reformat":
		return opdoc.CapabilityReformat, true
	case "variable-subset":
		return opdoc.CapabilityVariableSubset, true
	case "spatial-subset":
		return opdoc.CapabilitySpatialSubset, true
	case "shape-subset":
		return opdoc.CapabilityShapeSubset, true
	case "dimension-subset":
		return opdoc.CapabilityDimensionSubset, true
	case "temporal-subset":
		return opdoc.CapabilityTemporalSubset, true
	case concatenateOp:
		return opdoc.CapabilityConcatenate, true
	case "extend":
		return opdoc.CapabilityExtend, true
	case "area-averaging":
		return opdoc.CapabilityAreaAveraging, true
	case "time-averaging":
		return opdoc.CapabilityTimeAveraging, true
	default:
		return "", false
	}
}

// initialWorkItems materializes step 1's items: one per scroll id when
// the first step is CMR-query, otherwise a single item, per spec.md
// §4.4.
func initialWorkItems(in Input, firstStep jobstore.WorkflowStep) []jobstore.WorkItem {
	if isCMRQueryStepByImage(in.ServiceChain, firstStep) && len(in.FirstStepScrollIDs) > 0 {
		items := make([]jobstore.WorkItem, len(in.FirstStepScrollIDs))
		for i, scrollID := range in.FirstStepScrollIDs {
			items[i] = jobstore.WorkItem{
				ID:        in.NewItemID(),
				JobID:     in.Job.ID,
				ServiceID: firstStep.ServiceImageID,
				StepIndex: firstStep.StepIndex,
				Status:    jobstore.ItemReady,
				ScrollID:  scrollID,
			}
		}
		return items
	}

	return []jobstore.WorkItem{{
		ID:        in.NewItemID(),
		JobID:     in.Job.ID,
		ServiceID: firstStep.ServiceImageID,
		StepIndex: firstStep.StepIndex,
		Status:    jobstore.ItemReady,
	}}
}

func isCMRQueryStepByImage(chain registry.ServiceConfig, step jobstore.WorkflowStep) bool {
	for _, s := range chain.Steps {
		if s.Image == step.ServiceImageID {
			return isCMRQueryStep(s)
		}
	}
	return false
}
