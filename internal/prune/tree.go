// Package prune provides a generic deep-prune over a tagged JSON tree.
// Absent values (null, "", empty arrays, empty objects) are removed at every depth
// so that documents express "no value" by omission only.
package prune

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the shape of a Node
type Kind int

// Node kinds
const (
	Absent Kind = iota
	Object
	Array
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case Scalar:
		return "scalar"
	default:
		return "absent"
	}
}

// Field is one key/value pair of an Object node. Fields keep document order.
type Field struct {
	Key   string
	Value Node
}

// Node is a tagged JSON value: object, array, scalar, or absent (null)
type Node struct {
	Kind   Kind
	Fields []Field
	Items  []Node
	// Value holds a string, json.Number or bool for Scalar nodes
	Value any
}

// FromJSON decodes raw JSON into a Node, preserving object key order
func FromJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return Node{}, fmt.Errorf("failed to decode JSON tree: %w", err)
	}
	if dec.More() {
		return Node{}, fmt.Errorf("failed to decode JSON tree: trailing data")
	}
	return n, nil
}

// FromValue converts any JSON-marshalable value into a Node
func FromValue(v any) (Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Node{}, fmt.Errorf("failed to marshal value: %w", err)
	}
	return FromJSON(data)
}

func decodeNode(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := Node{Kind: Object}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Node{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeNode(dec)
				if err != nil {
					return Node{}, err
				}
				n.Fields = append(n.Fields, Field{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return n, nil
		case '[':
			n := Node{Kind: Array}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return Node{}, err
				}
				n.Items = append(n.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return n, nil
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Node{Kind: Absent}, nil
	default:
		return Node{Kind: Scalar, Value: t}, nil
	}
}

// Prune returns a copy of n with every absent value removed recursively.
// Empty strings, empty arrays and empty objects count as absent.
func Prune(n Node) Node {
	switch n.Kind {
	case Object:
		fields := make([]Field, 0, len(n.Fields))
		for _, f := range n.Fields {
			v := Prune(f.Value)
			if v.Kind == Absent {
				continue
			}
			fields = append(fields, Field{Key: f.Key, Value: v})
		}
		if len(fields) == 0 {
			return Node{Kind: Absent}
		}
		return Node{Kind: Object, Fields: fields}
	case Array:
		items := make([]Node, 0, len(n.Items))
		for _, item := range n.Items {
			v := Prune(item)
			if v.Kind == Absent {
				continue
			}
			items = append(items, v)
		}
		if len(items) == 0 {
			return Node{Kind: Absent}
		}
		return Node{Kind: Array, Items: items}
	case Scalar:
		if s, ok := n.Value.(string); ok && s == "" {
			return Node{Kind: Absent}
		}
		return n
	default:
		return Node{Kind: Absent}
	}
}

// MarshalJSON encodes the node, keeping object keys in document order
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) encode(buf *bytes.Buffer) error {
	switch n.Kind {
	case Object:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Scalar:
		raw, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(raw)
	default:
		buf.WriteString("null")
	}
	return nil
}

// Walk calls fn for every object key in the tree with its JSON-path style location
// (e.g. "$.basics.profiles[0].url").
func Walk(n Node, fn func(path, key string)) {
	walk(n, "$", fn)
}

func walk(n Node, path string, fn func(path, key string)) {
	switch n.Kind {
	case Object:
		for _, f := range n.Fields {
			child := path + "." + f.Key
			fn(child, f.Key)
			walk(f.Value, child, fn)
		}
	case Array:
		for i, item := range n.Items {
			walk(item, path+"["+strconv.Itoa(i)+"]", fn)
		}
	}
}
