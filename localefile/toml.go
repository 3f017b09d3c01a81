package localefile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// decodeTOML decodes a TOML document. TOML tables are unordered once
// decoded, so keys come out sorted.
func decodeTOML(data []byte) (*Branch, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return tomlTable(doc), nil
}

func tomlTable(m map[string]any) *Branch {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewBranch()
	for _, k := range keys {
		b.Set(k, tomlValue(m[k]))
	}
	return b
}

func tomlValue(v any) Node {
	switch v := v.(type) {
	case map[string]any:
		return tomlTable(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if _, ok := item.(map[string]any); ok {
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
		return &Leaf{Value: strings.Join(items, "\n")}
	case []map[string]any:
		return &Leaf{}
	case string:
		return &Leaf{Value: v}
	default:
		return &Leaf{Value: fmt.Sprint(v)}
	}
}
