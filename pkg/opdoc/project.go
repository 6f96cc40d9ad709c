package opdoc

// allCapabilities lists every capability Project can retain, in a fixed
// order so filter-consumed-capability reporting in pkg/registry is
// deterministic.
var allCapabilities = []Capability{
	CapabilityReproject,
	CapabilityReformat,
	CapabilityVariableSubset,
	CapabilitySpatialSubset,
	CapabilityShapeSubset,
	CapabilityDimensionSubset,
	CapabilityTemporalSubset,
	CapabilityConcatenate,
	CapabilityExtend,
	CapabilityAreaAveraging,
	CapabilityTimeAveraging,
}

// Project produces a specialized copy of d that retains only the named
// capabilities; every other capability field is zeroed, per spec.md
// §4.1's "project(fields_to_include)" contract. Sources are never
// dropped — "OperationDocument.sources[i].collection appears in every
// WorkflowStep's serialized operation" is an invariant (spec.md §3).
func (d *OperationDocument) Project(keep ...Capability) *OperationDocument {
	keepSet := make(map[Capability]bool, len(keep))
	for _, c := range keep {
		keepSet[c] = true
	}

	out := d.Clone()

	for _, c := range allCapabilities {
		if keepSet[c] {
			continue
		}
		switch c {
		case CapabilityReproject:
			out.Format.CRS = ""
			out.Format.SRS = ""
		case CapabilityReformat:
			out.Format.MimeType = ""
		case CapabilityVariableSubset:
			out.Subset.Variables = nil
		case CapabilitySpatialSubset:
			out.Subset.Point = nil
			out.Subset.BBox = nil
		case CapabilityShapeSubset:
			out.Subset.Shape = nil
		case CapabilityDimensionSubset:
			out.Subset.Dimensions = nil
		case CapabilityTemporalSubset:
			out.Subset.Temporal = nil
		case CapabilityConcatenate:
			out.Flags.Concatenate = false
		case CapabilityExtend:
			out.Flags.ExtendDimensions = nil
			out.Flags.Extend = false
			out.Flags.ExtendSet = false
		case CapabilityAreaAveraging:
			if out.Flags.Averaging == AveragingArea {
				out.Flags.Averaging = AveragingNone
			}
		case CapabilityTimeAveraging:
			if out.Flags.Averaging == AveragingTime {
				out.Flags.Averaging = AveragingNone
			}
		}
	}

	return out
}
