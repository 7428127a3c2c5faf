package resolve

import (
	"context"
	"fmt"
	"slices"

	"listing-engine/internal/diagnostic"
	"listing-engine/internal/rules"
)

// PoolRequest asks a pool for one identifier.
type PoolRequest struct {
	Key         rules.Key
	AttributeID string
	Pool        string
	SKU         string
}

// PoolAllocator hands out identifiers such as UPCs from an external pool.
type PoolAllocator interface {
	Allocate(ctx context.Context, req PoolRequest) (string, error)
}

// PoolAllocatorFunc adapts a function to PoolAllocator.
type PoolAllocatorFunc func(ctx context.Context, req PoolRequest) (string, error)

func (f PoolAllocatorFunc) Allocate(ctx context.Context, req PoolRequest) (string, error) {
	return f(ctx, req)
}

// Allocate fills pending pool attributes of res using alloc. Successful
// allocations move from Pending to Values. A failed allocation stays
// pending and is reported as an error; it clears Success when the
// attribute is required.
func (r *Resolver) Allocate(ctx context.Context, alloc PoolAllocator, rs *rules.RuleSet, sku string, res *ResolvedAttributes) {
	if alloc == nil || len(res.Pending) == 0 {
		return
	}

	scope := rs.Key().String()
	pending := slices.Clone(res.Pending)
	res.Pending = res.Pending[:0]

	for _, id := range pending {
		rule, ok := rs.Rule(id)
		if !ok {
			continue
		}

		slot, _ := rule.Value.(rules.PoolSlot)

		v, err := alloc.Allocate(ctx, PoolRequest{Key: rs.Key(), AttributeID: id, Pool: slot.Pool, SKU: sku})
		if err == nil && v != "" {
			res.Values[id] = v
			continue
		}

		if err == nil {
			err = fmt.Errorf("pool %q returned no identifier", slot.Pool)
		}

		res.Pending = append(res.Pending, id)
		res.AddError(diagnostic.CodePoolAllocationFailed, fmt.Sprintf("allocation failed: %v", err), scope, id)
		r.logger.Warn("pool allocation failed", "key", scope, "attribute", id, "error", err)

		if slices.Contains(res.Required, id) {
			res.Success = false
		}
	}

	res.Sort()
}
