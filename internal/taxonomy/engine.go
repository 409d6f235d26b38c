package taxonomy

import (
	"context"
	"sort"
)

// Node is one (descriptor, tree position) pair.
type Node struct {
	DescriptorID int64
	Path         string
}

// Store is the engine's data access boundary. NodesWithPrefix may
// over-approximate (plain string prefix is fine); the engine re-checks
// segment boundaries in memory.
type Store interface {
	// PathsOf returns every tree number of each given descriptor.
	PathsOf(ctx context.Context, descriptorIDs []int64) (map[int64][]string, error)
	// NodesWithPrefix returns descriptors having at least one tree number
	// that starts with the given string prefix.
	NodesWithPrefix(ctx context.Context, prefix string) ([]Node, error)
}

// Engine computes descendant closures. It holds no cache: closures are
// built per request from current data.
type Engine struct {
	store Store
}

// NewEngine builds an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Expand returns, for each root descriptor id, the sorted, de-duplicated
// ids of the root and all of its descendants across every tree position
// the root occupies.
//
// Every closure contains its root. A root with no tree numbers (including
// an id that does not exist) expands to exactly itself: absence of
// descendants is an answer, not an error. Each root's closure depends only
// on that root, never on which other roots were supplied alongside it.
func (e *Engine) Expand(ctx context.Context, rootIDs []int64) (map[int64][]int64, error) {
	closures := make(map[int64][]int64, len(rootIDs))
	if len(rootIDs) == 0 {
		return closures, nil
	}

	paths, err := e.store.PathsOf(ctx, dedupe(rootIDs))
	if err != nil {
		return nil, err
	}

	for _, root := range rootIDs {
		if _, done := closures[root]; done {
			continue
		}
		members := map[int64]struct{}{root: {}}
		for _, prefix := range paths[root] {
			nodes, err := e.store.NodesWithPrefix(ctx, prefix)
			if err != nil {
				return nil, err
			}
			for _, node := range nodes {
				if HasTreePrefix(node.Path, prefix) {
					members[node.DescriptorID] = struct{}{}
				}
			}
		}
		closures[root] = sortedIDs(members)
	}
	return closures, nil
}

// DescriptorsWithTreePrefix returns the ids of descriptors at or below the
// given tree position, segment-boundary aware.
func (e *Engine) DescriptorsWithTreePrefix(ctx context.Context, prefix string) ([]int64, error) {
	if prefix == "" {
		return nil, nil
	}
	nodes, err := e.store.NodesWithPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	members := make(map[int64]struct{})
	for _, node := range nodes {
		if HasTreePrefix(node.Path, prefix) {
			members[node.DescriptorID] = struct{}{}
		}
	}
	return sortedIDs(members), nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
