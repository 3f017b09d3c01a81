package localefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// decodeJSON decodes a JSON document by walking its token stream so that
// object keys keep their document order.
func decodeJSON(data []byte) (*Branch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	t, err := dec.Token()
	if err == io.EOF {
		return NewBranch(), nil
	}
	if err != nil {
		return nil, err
	}

	var root *Branch
	switch v := t.(type) {
	case json.Delim:
		if v != '{' {
			return nil, fmt.Errorf("document root: %w", ErrNotMapping)
		}
		if root, err = jsonObject(dec); err != nil {
			return nil, err
		}
	case nil:
		root = NewBranch()
	default:
		return nil, fmt.Errorf("document root: %w", ErrNotMapping)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return nil, err
	}
	return root, nil
}

// jsonObject reads object members up to and including the closing brace.
// The opening brace has already been consumed.
func jsonObject(dec *json.Decoder) (*Branch, error) {
	b := NewBranch()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}
		if b.Has(key) {
			return nil, fmt.Errorf("object key %q already defined", key)
		}
		n, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		b.Set(key, n)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return b, nil
}

func jsonValue(dec *json.Decoder) (Node, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			return jsonObject(dec)
		case '[':
			items, err := jsonArray(dec)
			if err != nil {
				return nil, err
			}
			return &Leaf{Value: strings.Join(items, "\n")}, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return &Leaf{Value: v}, nil
	case json.Number:
		return &Leaf{Value: v.String()}, nil
	case bool:
		return &Leaf{Value: fmt.Sprint(v)}, nil
	case nil:
		return &Leaf{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", t)
}

// jsonArray collects the scalar items of an array; nested containers are
// consumed and dropped.
func jsonArray(dec *json.Decoder) ([]string, error) {
	var items []string
	for dec.More() {
		n, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		if leaf, ok := n.(*Leaf); ok {
			items = append(items, leaf.Value)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}
