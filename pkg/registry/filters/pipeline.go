package filters

import "github.com/Azure/harmony/pkg/opdoc"

// Filter narrows candidates against op. Requested reports whether op
// actually asked for the capability this filter checks — used both for
// NoMatchError's "unsupported operation set" listing (spec.md §7) and to
// decide whether a filter is eligible to be dropped during best-effort
// fallback.
type Filter struct {
	Name      string
	Optional  bool
	Apply     func(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) (filtered []ServiceConfig, requested bool)
}

// Pipeline is the fixed filter order from spec.md §4.2.
var Pipeline = []Filter{
	{Name: "collection-match", Apply: collectionMatch},
	{Name: "concatenation", Apply: concatenation},
	{Name: "variable-subset", Apply: variableSubset},
	{Name: "spatial-subset", Optional: true, Apply: spatialSubset},
	{Name: "temporal-subset", Optional: true, Apply: temporalSubset},
	{Name: "dimension-subset", Apply: dimensionSubset},
	{Name: "reprojection", Apply: reprojection},
	{Name: "extend", Apply: extend},
	{Name: "area-averaging", Apply: areaAveraging},
	{Name: "time-averaging", Apply: timeAveraging},
	{Name: "shapefile-subset", Optional: true, Apply: shapefileSubset},
	{Name: "output-format-match", Apply: outputFormatMatch},
}

// NoMatchError carries the operations and collections a choose call could
// not satisfy, per spec.md §4.2 ("a no-match condition is raised carrying
// the list of requested operations and collections").
type NoMatchError struct {
	Operations  []string
	Collections []string
}

func (e *NoMatchError) Error() string {
	msg := "no service matches requested operations " + joinOrNone(e.Operations)
	if len(e.Collections) > 0 {
		msg += " for collections " + joinOrNone(e.Collections)
	}
	return msg
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	out := "["
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out + "]"
}

// Result is the outcome of running the pipeline once.
type Result struct {
	Candidates []ServiceConfig
	Requested  []string // names of filters whose capability the op requested
}

// Run applies every filter in order, skipping optional ones when
// includeOptional is false (the best-effort fallback pass). It stops and
// returns NoMatchError as soon as a filter empties the candidate list.
func Run(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig, includeOptional bool) (Result, error) {
	requested := make([]string, 0, len(Pipeline))
	collections := collectionIDs(op)

	cur := candidates
	for _, f := range Pipeline {
		if f.Optional && !includeOptional {
			continue
		}
		filtered, wasRequested := f.Apply(op, ctx, cur)
		if wasRequested {
			requested = append(requested, f.Name)
		}
		cur = filtered
		if len(cur) == 0 {
			return Result{}, &NoMatchError{Operations: requested, Collections: collections}
		}
	}
	return Result{Candidates: cur, Requested: requested}, nil
}

func collectionIDs(op *opdoc.OperationDocument) []string {
	ids := make([]string, 0, len(op.Sources))
	for _, s := range op.Sources {
		ids = append(ids, s.Collection)
	}
	return ids
}

func collectionMatch(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	var out []ServiceConfig
	for _, svc := range candidates {
		if serviceCoversAllSources(svc, op, ctx) {
			out = append(out, svc)
		}
	}
	return out, true
}

func serviceCoversAllSources(svc ServiceConfig, op *opdoc.OperationDocument, ctx Context) bool {
	for _, src := range op.Sources {
		if svc.AllCollections {
			continue
		}
		entry, ok := svc.collectionEntry(src.Collection)
		if !ok {
			return false
		}
		if len(entry.Variables) > 0 && !variablesAllowed(entry.Variables, src.Variables) {
			return false
		}
		if entry.GranuleLimit != nil && ctx.GranuleCount > *entry.GranuleLimit {
			return false
		}
	}
	if svc.GranuleLimit > 0 && ctx.GranuleCount > svc.GranuleLimit {
		return false
	}
	return true
}

func variablesAllowed(allowed, requested []string) bool {
	allowedSet := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = true
	}
	for _, v := range requested {
		if !allowedSet[v] {
			return false
		}
	}
	return true
}

func concatenation(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if !op.Flags.Concatenate {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsConcatenate }), true
}

func variableSubset(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	n := len(op.Subset.Variables)
	if n == 0 {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool {
		if !s.SupportsVariable {
			return false
		}
		if n > 1 && !s.SupportsMultiVariable {
			return false
		}
		return true
	}), true
}

func spatialSubset(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Subset.Point == nil && op.Subset.BBox == nil {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsBBox }), true
}

func temporalSubset(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Subset.Temporal == nil {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsTemporal }), true
}

func dimensionSubset(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if len(op.Subset.Dimensions) == 0 {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsDimension }), true
}

func reprojection(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if !op.HasCapability(opdoc.CapabilityReproject) {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsReproject }), true
}

func extend(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if !op.HasCapability(opdoc.CapabilityExtend) {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsExtend }), true
}

func areaAveraging(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Flags.Averaging != opdoc.AveragingArea {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsAreaAveraging }), true
}

func timeAveraging(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Flags.Averaging != opdoc.AveragingTime {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsTimeAveraging }), true
}

func shapefileSubset(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Subset.Shape == nil {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool { return s.SupportsShape }), true
}

func outputFormatMatch(op *opdoc.OperationDocument, ctx Context, candidates []ServiceConfig) ([]ServiceConfig, bool) {
	if op.Format.MimeType == "" {
		return candidates, false
	}
	return filterBy(candidates, func(s ServiceConfig) bool {
		if len(s.OutputFormats) == 0 {
			return true
		}
		for _, f := range s.OutputFormats {
			if f == op.Format.MimeType {
				return true
			}
		}
		return false
	}), true
}

func filterBy(candidates []ServiceConfig, keep func(ServiceConfig) bool) []ServiceConfig {
	var out []ServiceConfig
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
