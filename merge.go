package nitro

// deepMerge merges overlay into base, keyed by mapping keys. A key
// only in overlay is added; when both sides hold mappings the merge
// recurses; in every other case overlay's value replaces base's
// wholesale. Sequences are
// replaced, never concatenated. The caller is responsible for handing
// in an overlay that shares nothing with live data; Store.Merge
// deep-copies (and cycle-checks) the overlay before the first write,
// so a failed merge leaves the base untouched.
func deepMerge(base, overlay map[string]any) {
	for k, ov := range overlay {
		if bv, ok := base[k]; ok {
			bm, baseIsMap := bv.(map[string]any)
			om, overlayIsMap := ov.(map[string]any)
			if baseIsMap && overlayIsMap {
				deepMerge(bm, om)
				continue
			}
		}
		base[k] = ov
	}
}
