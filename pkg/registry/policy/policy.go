// Package policy implements the optional Rego policy veto the
// ServiceRegistry's filter pipeline runs as a final step (SPEC_FULL.md
// §3, §4.2): an operator-supplied bundle can reject an otherwise-matched
// ServiceConfig, e.g. to enforce a provider allow/deny list. Absent
// configuration it is a no-op pass, matching spec.md's "none" state
// machine for ServiceRegistry.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	herrors "github.com/Azure/harmony/pkg/herrors"
)

// Input is the subset of (operation, service) data exposed to policy.
type Input struct {
	Username     string                 `json:"username"`
	ProviderID   string                 `json:"providerId"`
	ServiceName  string                 `json:"serviceName"`
	Collections  []string               `json:"collections"`
	ExtraArgs    map[string]string      `json:"extraArgs"`
}

// Evaluator vetoes or allows a candidate service. The zero-value
// *Evaluator (no query compiled) always allows.
type Evaluator struct {
	query *rego.PreparedEvalQuery
}

// New compiles regoModule's `data.harmony.allow` rule. An empty module
// leaves the Evaluator in pass-through mode.
func New(ctx context.Context, regoModule string) (*Evaluator, error) {
	if regoModule == "" {
		return &Evaluator{}, nil
	}
	pq, err := rego.New(
		rego.Query("data.harmony.allow"),
		rego.Module("policy.rego", regoModule),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, herrors.Internal(err, "failed to compile registry policy bundle").Build()
	}
	return &Evaluator{query: &pq}, nil
}

// Allow reports whether input is permitted. A nil or unconfigured
// Evaluator always allows.
func (e *Evaluator) Allow(ctx context.Context, in Input) (bool, error) {
	if e == nil || e.query == nil {
		return true, nil
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(in))
	if err != nil {
		return false, herrors.Internal(err, "registry policy evaluation failed").Build()
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}
	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, herrors.Internal(fmt.Errorf("policy rule did not return a boolean"), "invalid registry policy result").Build()
	}
	return allowed, nil
}
