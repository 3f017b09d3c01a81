package localefile

// Node is either a *Leaf or a *Branch.
type Node interface {
	isNode()
}

// Leaf is a terminal translation value. Its content is opaque to the
// structural checks; only the interpolation check looks at it.
type Leaf struct {
	Value string
}

func (*Leaf) isNode() {}

// Branch is a mapping from key to Node. Keys are kept in document order.
type Branch struct {
	keys  []string
	nodes map[string]Node
}

func (*Branch) isNode() {}

// NewBranch returns an empty branch.
func NewBranch() *Branch {
	return &Branch{nodes: make(map[string]Node)}
}

// Set stores n under key. Setting an existing key replaces its node and
// keeps its original position.
func (b *Branch) Set(key string, n Node) *Branch {
	if _, ok := b.nodes[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.nodes[key] = n
	return b
}

// SetLeaf is shorthand for Set(key, &Leaf{Value: value}).
func (b *Branch) SetLeaf(key, value string) *Branch {
	return b.Set(key, &Leaf{Value: value})
}

// Get returns the node stored under key.
func (b *Branch) Get(key string) (Node, bool) {
	n, ok := b.nodes[key]
	return n, ok
}

// Has reports whether key is present.
func (b *Branch) Has(key string) bool {
	_, ok := b.nodes[key]
	return ok
}

// Keys returns the branch keys in document order.
func (b *Branch) Keys() []string {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Len returns the number of keys.
func (b *Branch) Len() int {
	return len(b.keys)
}

// each calls fn for every child in document order.
func (b *Branch) each(fn func(key string, n Node)) {
	for _, k := range b.keys {
		fn(k, b.nodes[k])
	}
}

// joinPath appends key to a dot-notation prefix.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
