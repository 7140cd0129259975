package vdf

// mergeUnique copies each entry of src into dst where dst has no value of
// its own (absent, empty string, or empty mapping). Where both hold a
// mapping, it recurses. Any other collision keeps dst's value.
func mergeUnique(src, dst *Map) {
	for key, val := range src.All() {
		cur, ok := dst.Lookup(key)

		switch {
		case !ok || cur.isEmpty():
			dst.Set(key, val.Clone())

		case cur.IsMap() && val.IsMap():
			mergeUnique(val.Map, cur.Map)
		}
	}
}

// mergeDeep returns a new mapping holding base's entries overlaid with
// main's. Entries keep base's order, with main-only keys appended.
// Mappings present in both are merged recursively; for any other collision
// main's value replaces base's.
func mergeDeep(base, main *Map) *Map {
	out := base.Clone()

	for key, val := range main.All() {
		cur, ok := out.Lookup(key)
		if ok && cur.IsMap() && val.IsMap() {
			out.Set(key, Block(mergeDeep(cur.Map, val.Map)))

			continue
		}

		out.Set(key, val)
	}

	return out
}

// applyBase merges the accumulated #base defaults beneath the first
// top-level value of root. A scalar first value is left as is.
func applyBase(root, base *Map) {
	first, ok := root.First()
	if !ok || !first.Value.IsMap() {
		return
	}

	root.Set(first.Key, Block(mergeDeep(base, first.Value.Map)))
}
