// Package meta merges the cascading JSON metadata of themes, projects and
// components.
package meta

// Merge returns a new map holding a deep merge of all sources. Later sources
// win. Nested maps are merged and cloned; slices and scalars are replaced.
func Merge(sources ...map[string]any) map[string]any {
	return Mix(make(map[string]any), sources...)
}

// Mix deep-merges sources into dst and returns dst.
func Mix(dst map[string]any, sources ...map[string]any) map[string]any {
	for _, src := range sources {
		for k, v := range src {
			child, ok := v.(map[string]any)
			if !ok {
				dst[k] = v
				continue
			}
			existing, ok := dst[k].(map[string]any)
			if !ok {
				existing = make(map[string]any, len(child))
				dst[k] = existing
			}
			Mix(existing, child)
		}
	}
	return dst
}

// Map returns m[key] when it holds a nested object, or nil.
func Map(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// String returns m[key] when it holds a string, or "".
func String(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}
