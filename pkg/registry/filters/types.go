// Package filters implements the ServiceRegistry's ordered capability
// filter pipeline (spec.md §4.2): each filter narrows a candidate list of
// ServiceConfigs against an OperationDocument, in the fixed order
// collection-match, concatenation, variable-subset, spatial-subset,
// temporal-subset, dimension-subset, reprojection, extend,
// area-averaging, time-averaging, shapefile-subset, output-format-match.
package filters

import "github.com/Azure/harmony/pkg/opdoc"

// CollectionEntry is one allow-listed collection for a ServiceConfig,
// optionally narrowing the variables and granule count the service will
// accept for that collection.
type CollectionEntry struct {
	CollectionID  string
	Variables     []string // empty means "all variables permitted"
	GranuleLimit  *int
}

// Step names one stage of a service's chain: the container image, any
// step-local operation overrides, batching parameters, and the predicate
// gating whether this step applies to a given operation.
type Step struct {
	Image           string
	Operations      []string // operation names this step implements, e.g. "reformat"
	MaxBatchInputs  int
	MaxBatchBytes   int64
	Sequential      bool
	Batched         bool
	Predicate       Predicate
}

// Predicate gates whether a Step participates in a plan for a given
// operation, per spec.md §4.4 ("a step whose predicate requires one of
// {exists: X}, a specific output format, or a specific native collection
// format is included only when all of its predicates pass").
type Predicate struct {
	RequiresOps        []string // all must be present as capabilities on the op
	RequiresFormat     string   // output mime type, if non-empty
	RequiresNativeFormat string // native/source format, if non-empty
}

// Matches reports whether op satisfies every predicate clause. An empty
// Predicate always matches.
func (p Predicate) Matches(op *opdoc.OperationDocument, requested map[string]bool) bool {
	for _, name := range p.RequiresOps {
		if !requested[name] {
			return false
		}
	}
	if p.RequiresFormat != "" && op.Format.MimeType != p.RequiresFormat {
		return false
	}
	if p.RequiresNativeFormat != "" {
		// Native format is carried per-source; treated as matched unless a
		// source explicitly declares an incompatible one via ExtraArgs,
		// mirroring how spec.md leaves native-format detection external.
		if native, ok := op.ExtraArgs["nativeFormat"]; ok && native != p.RequiresNativeFormat {
			return false
		}
	}
	return true
}

// ServiceConfig is the declarative capability descriptor spec.md §3
// defines: what a service accepts, and the ordered chain of steps it runs.
type ServiceConfig struct {
	Name string

	SupportsBBox       bool
	SupportsShape      bool
	SupportsTemporal   bool
	SupportsVariable   bool
	SupportsMultiVariable bool
	SupportsDimension  bool

	SupportsReproject bool
	SupportsExtend    bool
	SupportsAreaAveraging bool
	SupportsTimeAveraging bool
	SupportsConcatenate   bool

	OutputFormats []string // mime types; empty means "any"

	ConcurrencyCap int
	GranuleLimit   int
	SyncByDefault  bool

	UMMSID string

	AllCollections bool
	Collections    []CollectionEntry

	Steps []Step
}

// collectionEntry returns the matching allow-list entry for collectionID,
// if any.
func (s ServiceConfig) collectionEntry(collectionID string) (CollectionEntry, bool) {
	for _, c := range s.Collections {
		if c.CollectionID == collectionID {
			return c, true
		}
	}
	return CollectionEntry{}, false
}

// Context carries request-scoped data choose needs beyond the operation
// document itself (e.g. resolved granule counts), kept separate from
// OperationDocument per spec.md's "pure function over its inputs plus
// global registry" contract.
type Context struct {
	GranuleCount int
}

// Selection is the result of a successful choose call: the matched
// service plus any advisory message (e.g. best-effort fallback notice).
type Selection struct {
	Service ServiceConfig
	Message string
}
