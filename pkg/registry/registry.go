package registry

import (
	"context"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/opdoc"
	"github.com/Azure/harmony/pkg/registry/filters"
	"github.com/Azure/harmony/pkg/registry/policy"
)

// Type aliases keep callers of pkg/registry from reaching into
// pkg/registry/filters directly, while the filter pipeline (which must
// not import this package, to avoid a cycle) owns the real definitions.
type (
	ServiceConfig   = filters.ServiceConfig
	Step            = filters.Step
	Predicate       = filters.Predicate
	CollectionEntry = filters.CollectionEntry
	Context         = filters.Context
	NoMatchError    = filters.NoMatchError
)

// Selection is the result of a successful Choose call.
type Selection struct {
	Service ServiceConfig
	Message string
}

// Registry holds the loaded ServiceConfigs and an optional policy veto,
// per spec.md §4.2 ("pure function over its inputs plus global registry").
type Registry struct {
	configs []ServiceConfig
	policy  *policy.Evaluator
}

// New constructs a Registry from already-validated configs. Use Load to
// build configs from environment/file sources first.
func New(configs []ServiceConfig, pol *policy.Evaluator) *Registry {
	return &Registry{configs: configs, policy: pol}
}

// Choose selects the single service chain capable of performing op,
// running the strict filter pipeline first and falling back to the
// best-effort pass when spec.md §4.2's eligibility condition holds.
func (r *Registry) Choose(ctx context.Context, op *opdoc.OperationDocument, rctx Context) (Selection, error) {
	strict, err := filters.Run(op, rctx, r.configs, true)
	if err == nil {
		svc, perr := r.pickAllowed(ctx, op, strict.Candidates)
		if perr == nil {
			return Selection{Service: svc}, nil
		}
		err = perr
	}

	var noMatch *NoMatchError
	if asNoMatch(err, &noMatch) && eligibleForBestEffort(op) {
		fallback, ferr := filters.Run(op, rctx, r.configs, false)
		if ferr == nil {
			svc, perr := r.pickAllowed(ctx, op, fallback.Candidates)
			if perr == nil {
				return Selection{Service: svc, Message: "bounds may exceed requested"}, nil
			}
		}
	}

	return Selection{}, herrors.New().Kind(herrors.KindExternalValidation).
		Messagef("%v", err).WithLocation().Build()
}

// eligibleForBestEffort implements spec.md §4.2's fallback trigger: the
// request asks for at most one of {spatial, shapefile, temporal}
// subsetting and nothing else optional.
func eligibleForBestEffort(op *opdoc.OperationDocument) bool {
	n := 0
	if op.Subset.Point != nil || op.Subset.BBox != nil {
		n++
	}
	if op.Subset.Shape != nil {
		n++
	}
	if op.Subset.Temporal != nil {
		n++
	}
	return n <= 1
}

func asNoMatch(err error, target **NoMatchError) bool {
	nm, ok := err.(*NoMatchError)
	if !ok {
		return false
	}
	*target = nm
	return true
}

// pickAllowed returns the first candidate the policy evaluator permits,
// preserving load order as the tie-break.
func (r *Registry) pickAllowed(ctx context.Context, op *opdoc.OperationDocument, candidates []ServiceConfig) (ServiceConfig, error) {
	for _, svc := range candidates {
		allowed, err := r.policy.Allow(ctx, policy.Input{
			Username:    op.Username,
			ServiceName: svc.Name,
			Collections: collectionIDsOf(op),
			ExtraArgs:   op.ExtraArgs,
		})
		if err != nil {
			return ServiceConfig{}, err
		}
		if allowed {
			return svc, nil
		}
	}
	return ServiceConfig{}, &NoMatchError{Operations: []string{"policy-veto"}, Collections: collectionIDsOf(op)}
}

func collectionIDsOf(op *opdoc.OperationDocument) []string {
	ids := make([]string, 0, len(op.Sources))
	for _, s := range op.Sources {
		ids = append(ids, s.Collection)
	}
	return ids
}
