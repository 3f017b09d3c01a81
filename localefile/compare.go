package localefile

// MissingKeysFrom returns the keys of reference that t lacks, in the
// reference's document order.
func (t *Tree) MissingKeysFrom(reference *Tree) []string {
	return subtractKeys(reference, t)
}

// ExtraKeysFrom returns the keys of t that reference lacks, in t's document
// order.
func (t *Tree) ExtraKeysFrom(reference *Tree) []string {
	return subtractKeys(t, reference)
}

// IsCompleteTranslationOf reports whether t has every key of reference.
// Keys t has beyond the reference do not make it incomplete.
func (t *Tree) IsCompleteTranslationOf(reference *Tree) bool {
	return len(t.MissingKeysFrom(reference)) == 0
}

// IsSubsetOf reports whether every key of t is also a key of reference.
func (t *Tree) IsSubsetOf(reference *Tree) bool {
	return len(t.ExtraKeysFrom(reference)) == 0
}

// subtractKeys returns Keys(a) minus Keys(b).
func subtractKeys(a, b *Tree) []string {
	exclude := b.KeySet()
	var diff []string
	for _, k := range a.Keys() {
		if _, ok := exclude[k]; !ok {
			diff = append(diff, k)
		}
	}
	return diff
}
