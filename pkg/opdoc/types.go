// Package opdoc implements the OperationDocument: the versioned,
// forward/backward-translatable record that is the single source of truth
// for one user request (spec.md §3, §4.1).
package opdoc

import "time"

// CurrentVersion is the schema version new documents are built at and
// stored at. Consumers that need an older shape get it via Serialize,
// which runs the downgrade pipeline down to their requested version.
const CurrentVersion = 3

// Capability names the fields Project can retain independently, per
// spec.md §4.1's projection contract.
type Capability string

const (
	CapabilityReproject        Capability = "reproject"
	CapabilityReformat         Capability = "reformat"
	CapabilityVariableSubset   Capability = "variable-subset"
	CapabilitySpatialSubset    Capability = "spatial-subset"
	CapabilityShapeSubset      Capability = "shape-subset"
	CapabilityDimensionSubset  Capability = "dimension-subset"
	CapabilityTemporalSubset   Capability = "temporal-subset"
	CapabilityConcatenate      Capability = "concatenate"
	CapabilityExtend           Capability = "extend"
	CapabilityAreaAveraging    Capability = "area-averaging"
	CapabilityTimeAveraging    Capability = "time-averaging"
)

// Source describes one collection contributing to the request.
type Source struct {
	Collection        string   `json:"collection"`
	ShortName         string   `json:"shortName,omitempty"`
	Version           string   `json:"versionId,omitempty"`
	Variables         []string `json:"variables,omitempty"`
	CoordinateVars    []string `json:"coordinateVariables,omitempty"`
	Granules          []string `json:"granuleIds,omitempty"`
}

// Point is a [lon, lat] pair.
type Point [2]float64

// BBox is [W, S, E, N].
type BBox [4]float64

// Shape is either a URL reference to a GeoJSON FeatureCollection or an
// inline one wrapping a Polygon/MultiPolygon.
type Shape struct {
	URL     string      `json:"url,omitempty"`
	Inline  interface{} `json:"inline,omitempty"` // raw GeoJSON FeatureCollection
}

// DimensionRange is an arbitrary-dimension subset range.
type DimensionRange struct {
	Name string   `json:"name"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// TemporalRange is an inclusive [Start, End] UTC range.
type TemporalRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Subset carries every supported selector; nil/zero fields mean
// "unrequested", never "requested with default value".
type Subset struct {
	Point      *Point           `json:"point,omitempty"`
	BBox       *BBox            `json:"bbox,omitempty"`
	Shape      *Shape           `json:"shape,omitempty"`
	Dimensions []DimensionRange `json:"dimensions,omitempty"`
	Temporal   *TemporalRange   `json:"temporal,omitempty"`
	Variables  []string         `json:"variables,omitempty"`
}

// OutputFormat describes the requested reformatting/reprojection.
type OutputFormat struct {
	MimeType      string  `json:"mime,omitempty"`
	CRS           string  `json:"crs,omitempty"`
	SRS           string  `json:"srs,omitempty"`
	Width         *int    `json:"width,omitempty"`
	Height        *int    `json:"height,omitempty"`
	DPI           *int    `json:"dpi,omitempty"`
	ScaleExtent   *BBox   `json:"scaleExtent,omitempty"`
	ScaleSize     *Point  `json:"scaleSize,omitempty"`
	Interpolation string  `json:"interpolation,omitempty"`
}

// AveragingKind enumerates the averaging operation requested, if any.
type AveragingKind string

const (
	AveragingNone AveragingKind = ""
	AveragingArea AveragingKind = "area"
	AveragingTime AveragingKind = "time"
)

// Flags carries the boolean/enum toggles spec.md §3 groups separately
// from Subset/OutputFormat.
type Flags struct {
	Concatenate      bool          `json:"concatenate,omitempty"`
	ExtendDimensions []string      `json:"extendDimensions,omitempty"`
	Averaging        AveragingKind `json:"averaging,omitempty"`
	// ExtendSet records whether the caller explicitly set Extend,
	// distinguishing "extend=false requested" from "extend unspecified" —
	// Planner's exclusion special case (spec.md §4.4) depends on this.
	ExtendSet bool `json:"extendSet,omitempty"`
	Extend    bool `json:"extend,omitempty"`
}

// OperationDocument is the immutable-by-convention record described in
// spec.md §3. Mutating an OperationDocument after Build is a caller error;
// every transform (Project, downgrade) returns a new value.
type OperationDocument struct {
	Version int `json:"version"`

	RequestID string `json:"requestId"`

	Username      string `json:"username"`
	EncryptedToken []byte `json:"encryptedToken,omitempty"`

	Sources []Source `json:"sources"`
	Subset  Subset   `json:"subset"`
	Format  OutputFormat `json:"format"`
	Flags   Flags        `json:"flags"`

	ExtraArgs map[string]string `json:"extraArgs,omitempty"`

	StagingURL     string `json:"stagingUrl,omitempty"`
	DestinationURL string `json:"destinationUrl,omitempty"`
}

// HasCapability reports whether the document currently carries a value
// for the named capability, used by the ServiceRegistry's filter
// pipeline (spec.md §4.2) to decide which filters apply.
func (d *OperationDocument) HasCapability(c Capability) bool {
	switch c {
	case CapabilityReproject:
		return d.Format.CRS != "" || d.Format.SRS != ""
	case CapabilityReformat:
		return d.Format.MimeType != ""
	case CapabilityVariableSubset:
		return len(d.Subset.Variables) > 0
	case CapabilitySpatialSubset:
		return d.Subset.Point != nil || d.Subset.BBox != nil
	case CapabilityShapeSubset:
		return d.Subset.Shape != nil
	case CapabilityDimensionSubset:
		return len(d.Subset.Dimensions) > 0
	case CapabilityTemporalSubset:
		return d.Subset.Temporal != nil
	case CapabilityConcatenate:
		return d.Flags.Concatenate
	case CapabilityExtend:
		return d.Flags.ExtendSet && d.Flags.Extend
	case CapabilityAreaAveraging:
		return d.Flags.Averaging == AveragingArea
	case CapabilityTimeAveraging:
		return d.Flags.Averaging == AveragingTime
	default:
		return false
	}
}
