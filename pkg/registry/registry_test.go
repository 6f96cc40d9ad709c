package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Azure/harmony/pkg/opdoc"
)

func TestChooseStrictMatch(t *testing.T) {
	op := &opdoc.OperationDocument{
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
	op.Subset.Variables = []string{"alpha_var"}
	op.Format.MimeType = "image/tiff"

	svc := ServiceConfig{
		Name:           "subsetter",
		AllCollections: true,
		SupportsVariable: true,
		OutputFormats:  []string{"image/tiff"},
	}

	r := New([]ServiceConfig{svc}, nil)
	sel, err := r.Choose(context.Background(), op, Context{})
	require.NoError(t, err)
	require.Equal(t, "subsetter", sel.Service.Name)
	require.Empty(t, sel.Message)
}

func TestChooseBestEffortFallbackMessage(t *testing.T) {
	op := &opdoc.OperationDocument{
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}
	op.Format.MimeType = "image/tiff"

	svc := ServiceConfig{
		Name:           "reformat-only",
		AllCollections: true,
		OutputFormats:  []string{"image/tiff"},
	}

	r := New([]ServiceConfig{svc}, nil)
	sel, err := r.Choose(context.Background(), op, Context{})
	require.NoError(t, err)
	require.Equal(t, "reformat-only", sel.Service.Name)
	require.Equal(t, "bounds may exceed requested", sel.Message)
}

func TestChooseNoMatchIsUserVisibleError(t *testing.T) {
	op := &opdoc.OperationDocument{
		Sources: []opdoc.Source{{Collection: "C1233800302-EEDTEST"}},
	}
	op.Subset.BBox = &opdoc.BBox{-130, -45, 130, 45}
	op.Subset.Temporal = &opdoc.TemporalRange{}

	svc := ServiceConfig{Name: "no-subset-support", AllCollections: true}

	r := New([]ServiceConfig{svc}, nil)
	_, err := r.Choose(context.Background(), op, Context{})
	require.Error(t, err)
}
