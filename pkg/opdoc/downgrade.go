package opdoc

import herrors "github.com/Azure/harmony/pkg/herrors"

// downgradeStep removes exactly the fields introduced at FromVersion,
// per spec.md §9's redesign note: "the version-downgrade pipeline is a
// list of pure functions, each removing exactly the fields introduced in
// its version."
type downgradeStep struct {
	FromVersion int
	Apply       func(*OperationDocument)
}

// downgradePipeline is ordered from CurrentVersion down to
// schema.EarliestVersion+1; Serialize walks the suffix of this list whose
// FromVersion exceeds the requested target.
var downgradePipeline = []downgradeStep{
	{
		// v3 introduced dimension extension and output scale extents.
		FromVersion: 3,
		Apply: func(d *OperationDocument) {
			d.Format.DPI = nil
			d.Format.ScaleExtent = nil
			d.Format.ScaleSize = nil
			d.Flags.ExtendDimensions = nil
			d.Flags.Extend = false
			d.Flags.ExtendSet = false
		},
	},
	{
		// v2 introduced shape-subset and the averaging flag.
		FromVersion: 2,
		Apply: func(d *OperationDocument) {
			d.Subset.Shape = nil
			d.Flags.Averaging = AveragingNone
		},
	},
}

// EarliestVersion is the oldest version Serialize can downgrade to.
const EarliestVersion = 1

// downgradeTo returns a copy of d projected down to target by applying
// every pipeline step whose FromVersion is greater than target, in
// descending order (current schema down to the target).
func downgradeTo(d *OperationDocument, target int) (*OperationDocument, error) {
	if target < EarliestVersion {
		return nil, herrors.New().Kind(herrors.KindUnsupported).
			Messagef("schema version %d predates the earliest registered schema (%d)", target, EarliestVersion).
			WithLocation().Build()
	}
	if target > d.Version {
		return nil, herrors.New().Kind(herrors.KindUnsupported).
			Messagef("cannot upgrade document from v%d to v%d; upgrades are not supported", d.Version, target).
			WithLocation().Build()
	}

	out := d.Clone()
	for _, step := range downgradePipeline {
		if step.FromVersion > target {
			step.Apply(out)
		}
	}
	out.Version = target
	return out, nil
}
