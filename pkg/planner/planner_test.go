package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/jobstore"
	"github.com/Azure/harmony/pkg/opdoc"
	"github.com/Azure/harmony/pkg/registry"
)

func idGenerator(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestPlanCMROnlyChain(t *testing.T) {
	op := &opdoc.OperationDocument{Version: opdoc.CurrentVersion, Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}}}
	chain := registry.ServiceConfig{
		Name: "cmr-only",
		Steps: []registry.Step{
			{Image: "harmony/query-cmr:latest", Operations: []string{"query-cmr"}, Sequential: true},
		},
	}

	plan, err := Plan(Input{
		Job:                jobstore.Job{ID: "job-1", Username: "jdoe"},
		ServiceChain:       chain,
		Operation:          op,
		GranuleCount:       7,
		FirstStepScrollIDs: []string{"s1", "s2", "s3"},
		NewItemID:          idGenerator("item"),
	})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, 3, plan.Steps[0].Expected)
	require.Len(t, plan.FirstStepItems, 3)
	require.Equal(t, cmrQueryWeight, plan.Steps[0].ProgressWeight)
}

func TestPlanSubsetReformatChain(t *testing.T) {
	op := &opdoc.OperationDocument{
		Version: opdoc.CurrentVersion,
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}
	op.Format.MimeType = "image/tiff"

	chain := registry.ServiceConfig{
		Name: "subset-and-reformat",
		Steps: []registry.Step{
			{Image: "harmony/query-cmr:latest", Operations: []string{"query-cmr"}, Sequential: true},
			{Image: "harmony/subsetter:latest", Operations: []string{"spatial-subset", "reformat"}},
		},
	}

	plan, err := Plan(Input{
		Job:          jobstore.Job{ID: "job-2", Username: "jdoe"},
		ServiceChain: chain,
		Operation:    op,
		GranuleCount: 4,
		NewItemID:    idGenerator("item"),
	})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	require.Equal(t, 1.0, plan.Steps[1].ProgressWeight)
	require.Len(t, plan.UserWork, 2)
}

func TestPlanExcludesStepOnExtendFalseConcatenateTrue(t *testing.T) {
	op := &opdoc.OperationDocument{
		Version: opdoc.CurrentVersion,
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
	op.Flags.Concatenate = true
	op.Flags.ExtendSet = true
	op.Flags.Extend = false

	chain := registry.ServiceConfig{
		Name: "extend-gated",
		Steps: []registry.Step{
			{Image: "harmony/query-cmr:latest", Operations: []string{"query-cmr"}, Sequential: true},
			{
				Image:      "harmony/extender:latest",
				Operations: []string{"extend"},
				Predicate:  registry.Predicate{RequiresOps: []string{"extend", "concatenate"}},
			},
		},
	}

	plan, err := Plan(Input{
		Job:          jobstore.Job{ID: "job-3", Username: "jdoe"},
		ServiceChain: chain,
		Operation:    op,
		GranuleCount: 1,
		NewItemID:    idGenerator("item"),
	})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, "harmony/query-cmr:latest", plan.Steps[0].ServiceImageID)
}

func TestPlanErrorsWhenNoStepMatches(t *testing.T) {
	op := &opdoc.OperationDocument{Version: opdoc.CurrentVersion}
	chain := registry.ServiceConfig{
		Name: "impossible",
		Steps: []registry.Step{
			{Image: "harmony/never:latest", Predicate: registry.Predicate{RequiresFormat: "image/tiff"}},
		},
	}

	_, err := Plan(Input{
		Job:          jobstore.Job{ID: "job-4"},
		ServiceChain: chain,
		Operation:    op,
		NewItemID:    idGenerator("item"),
	})
	require.Error(t, err)
}
