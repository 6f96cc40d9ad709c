package opdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDoc() *OperationDocument {
	width := 512
	return &OperationDocument{
		Version:   CurrentVersion,
		RequestID: "req-1",
		Username:  "jdoe",
		Sources: []Source{
			{Collection: "C1233800302-EEDTEST", ShortName: "harmony_example", Variables: []string{"alpha_var"}},
		},
		Subset: Subset{
			BBox: &BBox{-130, -45, 130, 45},
		},
		Format: OutputFormat{
			MimeType: "image/tiff",
			Width:    &width,
		},
		Flags: Flags{Concatenate: true},
	}
}

func TestBuildNormalizesSpatialEncoding(t *testing.T) {
	cipher := NoopCipher{}
	b := NewBuilder(cipher)

	doc, err := b.Build(Request{
		Username: "jdoe",
		Subset:   Subset{BBox: &BBox{-130, -45, 130, 45}},
	})
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, doc.Version)
	require.NotEmpty(t, doc.RequestID)
	require.Equal(t, BBox{-130, -45, 130, 45}, *doc.Subset.BBox)
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDoc()
	clone := doc.Clone()

	clone.Sources[0].Variables[0] = "beta_var"
	clone.Subset.BBox[0] = 0

	require.Equal(t, "alpha_var", doc.Sources[0].Variables[0])
	require.Equal(t, -130.0, doc.Subset.BBox[0])
}

func TestProjectDropsUnnamedCapabilities(t *testing.T) {
	doc := sampleDoc()

	projected := doc.Project(CapabilityReformat, CapabilitySpatialSubset)

	require.True(t, projected.HasCapability(CapabilityReformat))
	require.True(t, projected.HasCapability(CapabilitySpatialSubset))
	require.False(t, projected.HasCapability(CapabilityConcatenate))
	require.False(t, doc.Sources == nil)
	require.Equal(t, doc.Sources[0].Collection, projected.Sources[0].Collection)
}

func TestSerializeDowngradeRoundTrip(t *testing.T) {
	doc := sampleDoc()
	doc.Flags.Averaging = AveragingArea
	dpi := 300
	doc.Format.DPI = &dpi

	for v := EarliestVersion; v <= CurrentVersion; v++ {
		raw, err := doc.Serialize(v)
		require.NoErrorf(t, err, "serialize to v%d", v)

		roundTripped, err := Deserialize(raw, v)
		require.NoErrorf(t, err, "deserialize v%d", v)
		require.Equal(t, v, roundTripped.Version)

		expected, err := downgradeTo(doc, v)
		require.NoError(t, err)
		require.Equal(t, expected.Flags.Averaging, roundTripped.Flags.Averaging)
		require.Equal(t, expected.Format.DPI, roundTripped.Format.DPI)
	}
}

func TestSerializeRejectsVersionBelowEarliest(t *testing.T) {
	doc := sampleDoc()
	_, err := doc.Serialize(EarliestVersion - 1)
	require.Error(t, err)
}

func TestSerializeRejectsUpgrade(t *testing.T) {
	doc := sampleDoc()
	doc.Version = 1
	_, err := doc.Serialize(2)
	require.Error(t, err)
}
