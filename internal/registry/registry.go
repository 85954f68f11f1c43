package registry

import (
	"context"
	"encoding/json"
	"sort"

	"railpass/internal/cache"
	"railpass/internal/domain"
)

// Cost is the coarse expense class of an operation.
type Cost string

const (
	CostLow    Cost = "LOW"
	CostMedium Cost = "MEDIUM"
)

// Metadata is the contract an orchestrating caller relies on to decide what
// may be retried or memoized.
type Metadata struct {
	SideEffectFree bool `json:"sideEffectFree"`
	Cost           Cost `json:"cost"`
	Idempotent     bool `json:"idempotent"`
	Cacheable      bool `json:"cacheable"`
}

// Operation is one registered action.
type Operation struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	InputSchema  json.RawMessage `json:"inputSchema"`
	OutputSchema json.RawMessage `json:"outputSchema"`
	Metadata     Metadata        `json:"metadata"`
	Handler      func(ctx context.Context, input json.RawMessage) (any, error) `json:"-"`
}

// Registry maps operation names to implementations plus their contract.
type Registry struct {
	ops   map[string]Operation
	order []string
	Cache cache.ResultCache
}

func New(c cache.ResultCache) *Registry {
	return &Registry{ops: map[string]Operation{}, Cache: c}
}

// Register adds one operation. Duplicate names are a programming error.
func (r *Registry) Register(op Operation) {
	if _, exists := r.ops[op.Name]; exists {
		panic("registry: duplicate operation " + op.Name)
	}
	r.ops[op.Name] = op
	r.order = append(r.order, op.Name)
}

// List returns every operation's contract in registration order.
func (r *Registry) List() []Operation {
	out := make([]Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Get looks up one operation by name.
func (r *Registry) Get(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Invoke dispatches by name. Results of cacheable idempotent operations are
// memoized keyed by the raw input.
func (r *Registry) Invoke(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, domain.NotFoundError{Resource: "operation " + name}
	}

	var key string
	if op.Metadata.Cacheable && op.Metadata.Idempotent {
		key = cache.Key(name, input)
		if cached, hit := r.Cache.Get(ctx, key); hit {
			return cached, nil
		}
	}

	result, err := op.Handler(ctx, input)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, domain.InternalError{Msg: "marshal result", Err: err}
	}
	if key != "" {
		r.Cache.Set(ctx, key, raw)
	}
	return raw, nil
}

// Names returns registered operation names, sorted, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for n := range r.ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
