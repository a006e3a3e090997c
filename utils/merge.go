// SPDX-License-Identifier: MIT

package utils

// DictMerge recursively merges base and top into a new map; values from top
// take precedence. When both sides hold a map[string]any under the same key,
// those maps are merged recursively. Neither input is modified, although
// non-map values are shared, not deep-copied.
// Complexity: O(total keys).
func DictMerge(base, top map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(top))
	for k, v := range top {
		out[k] = v
	}
	for k, bv := range base {
		tv, inTop := top[k]
		if !inTop {
			out[k] = bv
			continue
		}
		bm, baseIsMap := bv.(map[string]any)
		tm, topIsMap := tv.(map[string]any)
		if baseIsMap && topIsMap {
			out[k] = DictMerge(bm, tm)
		}
	}

	return out
}
