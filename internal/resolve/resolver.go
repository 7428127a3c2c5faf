package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"listing-engine/internal/common"
	"listing-engine/internal/diagnostic"
	"listing-engine/internal/heuristic"
	"listing-engine/internal/record"
	"listing-engine/internal/rules"
)

// Resolver evaluates rule sets. It holds no per-record state and is safe for
// concurrent use.
type Resolver struct {
	library *heuristic.Library
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver backed by lib, or the built-in library when
// lib is nil.
func NewResolver(lib *heuristic.Library, opts ...Option) *Resolver {
	if lib == nil {
		lib = heuristic.NewLibrary()
	}

	r := &Resolver{library: lib, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Library returns the heuristic library used for auto_generate rules.
func (r *Resolver) Library() *heuristic.Library {
	return r.library
}

// Resolve runs every rule of rs against rec.
func (r *Resolver) Resolve(rs *rules.RuleSet, rec record.Record, ctx heuristic.Context) ResolvedAttributes {
	scope := rs.Key().String()
	ruleList := rs.Rules()

	res := ResolvedAttributes{
		Values:  make(map[string]any, len(ruleList)),
		Success: true,
	}

	res.Merge(rs.Diagnostics())

	// Pass 1: every rule on its own.
	outcomes := make(map[string]outcome, len(ruleList))

	for _, rule := range ruleList {
		out := r.evaluate(rule, rec, ctx, scope, &res.Diagnostics)
		outcomes[rule.AttributeID] = out

		switch {
		case out.pending:
			res.Pending = append(res.Pending, rule.AttributeID)
		case out.found:
			res.Values[rule.AttributeID] = out.value
		default:
			r.logger.Debug("rule unresolved", "key", scope, "attribute", rule.AttributeID, "type", rule.Type())
		}
	}

	// Pass 2: requirement checks read pass-1 outcomes only.
	for _, rule := range ruleList {
		required, because := r.isRequired(rs, rule, outcomes)
		if !required {
			continue
		}

		res.Required = append(res.Required, rule.AttributeID)

		if because != nil {
			res.AddInfo(diagnostic.CodeConditionalRequired,
				fmt.Sprintf("required because %s is %v", because.DependsOn, because.DependsOnValue),
				scope, rule.AttributeID)
		}

		out := outcomes[rule.AttributeID]
		if out.found || out.pending {
			continue
		}

		msg := "required attribute has no value"
		if causes := res.ForAttribute(rule.AttributeID); len(causes) > 0 && causes[0].Severity > diagnostic.SeverityInfo {
			msg += " (" + causes[0].Code + ")"
		}

		res.AddError(diagnostic.CodeRequiredUnresolved, msg, scope, rule.AttributeID)
		res.Success = false
	}

	for _, id := range res.Pending {
		res.AddInfo(diagnostic.CodePoolAllocation, "awaiting external allocation", scope, id)
	}

	res.Sort()

	r.logger.Info("record resolved", "key", scope, "sku", ctx.SKU,
		"resolved", len(res.Values), "pending", len(res.Pending),
		"errors", len(res.Errors), "success", res.Success)

	return res
}

// isRequired reports whether rule is required, and the condition that made
// it so when it is not required unconditionally. Conditions are tried in
// order and the first match wins.
func (r *Resolver) isRequired(rs *rules.RuleSet, rule rules.MappingRule, outcomes map[string]outcome) (bool, *rules.Condition) {
	if rule.Required {
		return true, nil
	}

	for i := range rule.ConditionalRequired {
		c := rule.ConditionalRequired[i]
		if !rs.IsConditionLive(rule.AttributeID, c) {
			continue
		}

		dep := outcomes[c.DependsOn]
		if c.Matches(dep.value, dep.found) {
			return true, &c
		}
	}

	return false, nil
}

// evaluate produces the first-pass outcome of one rule. Rule problems are
// recorded in diags; they never stop the record.
func (r *Resolver) evaluate(rule rules.MappingRule, rec record.Record, ctx heuristic.Context, scope string, diags *diagnostic.Diagnostics) outcome {
	var (
		v     any
		found bool
	)

	switch val := rule.Value.(type) {
	// Configured values ship exactly as written, blank ones included.
	case rules.Literal:
		if val.Value == nil {
			return outcome{}
		}

		return outcome{value: val.Value, found: true}

	case rules.EnumChoice:
		return outcome{value: val.Value, found: true}

	case rules.SourcePath:
		if val.Err != nil {
			return outcome{}
		}

		v, found = rec.Get(val.Parsed)

	case rules.PoolSlot:
		return outcome{pending: true}

	case rules.Generator:
		var err error

		v, found, err = r.library.Extract(val.RuleType, rec, ctx, heuristic.NewParam(val.Param))
		if err != nil {
			code := diagnostic.CodeUnknownHeuristic
			if !errors.Is(err, heuristic.ErrUnknownHeuristic) {
				code = diagnostic.CodeHeuristicFailed
			}

			diags.AddError(code, err.Error(), scope, rule.AttributeID)
			r.logger.Warn("heuristic failed", "key", scope, "attribute", rule.AttributeID,
				"ruleType", val.RuleType, "error", err)

			return outcome{}
		}

	default:
		diags.AddError(diagnostic.CodeInvalidRule,
			fmt.Sprintf("unsupported rule payload %T", rule.Value), scope, rule.AttributeID)

		return outcome{}
	}

	if !found || common.IsBlank(v) {
		return outcome{}
	}

	return outcome{value: v, found: true}
}
