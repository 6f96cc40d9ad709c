package filters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/opdoc"
)

func baseOp() *opdoc.OperationDocument {
	return &opdoc.OperationDocument{
		Version: opdoc.CurrentVersion,
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
}

func TestRunStrictMatchAllOperations(t *testing.T) {
	op := baseOp()
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}
	op.Format.MimeType = "image/tiff"

	svc := ServiceConfig{
		Name:          "subsetter",
		AllCollections: true,
		SupportsBBox:  true,
		OutputFormats: []string{"image/tiff"},
	}

	result, err := Run(op, Context{}, []ServiceConfig{svc}, true)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	require.Contains(t, result.Requested, "spatial-subset")
	require.Contains(t, result.Requested, "output-format-match")
}

func TestRunNoMatchWhenCapabilityMissing(t *testing.T) {
	op := baseOp()
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}

	svc := ServiceConfig{Name: "reformat-only", AllCollections: true}

	_, err := Run(op, Context{}, []ServiceConfig{svc}, true)
	require.Error(t, err)
	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
}

func TestRunBestEffortDropsOptionalFilters(t *testing.T) {
	op := baseOp()
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}
	op.Format.MimeType = "image/tiff"

	svc := ServiceConfig{
		Name:          "reformat-only",
		AllCollections: true,
		OutputFormats: []string{"image/tiff"},
	}

	_, err := Run(op, Context{}, []ServiceConfig{svc}, true)
	require.Error(t, err)

	result, err := Run(op, Context{}, []ServiceConfig{svc}, false)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
}

func TestCollectionMatchRejectsUnlistedCollection(t *testing.T) {
	op := baseOp()
	svc := ServiceConfig{
		Name:        "narrow",
		Collections: []CollectionEntry{{CollectionID: "C_OTHER"}},
	}

	_, err := Run(op, Context{}, []ServiceConfig{svc}, true)
	require.Error(t, err)
}

func TestOutputFormatMatchAcceptsAnyWhenUnset(t *testing.T) {
	op := baseOp()
	op.Format.MimeType = "application/x-netcdf4"

	svc := ServiceConfig{Name: "any-format", AllCollections: true}

	result, err := Run(op, Context{}, []ServiceConfig{svc}, true)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
}
