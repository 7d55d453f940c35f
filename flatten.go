package nitro

// flattenValue produces a single-level mapping from joined path string
// to leaf value. Only scalar leaves contribute entries; an empty
// container leaves no trace, so flattening is lossy for container
// emptiness. Each call builds a fresh map.
func flattenValue(root any, sep string) map[string]any {
	out := map[string]any{}
	walkLeaves(root, nil, func(p Path, v any) {
		out[p.join(sep)] = v
	})
	return out
}
