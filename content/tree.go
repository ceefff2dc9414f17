package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrNoSuchField     = errors.New("no such field")
	ErrInvalidIndex    = errors.New("list index must be a non-negative integer")
	ErrIndexOutOfRange = errors.New("list index out of range")
	ErrNotContainer    = errors.New("cannot descend into a scalar")
	ErrTypeMismatch    = errors.New("value does not fit the field")
)

// Kind tags the variant held by a Node.
type Kind uint8

const (
	Scalar Kind = iota
	Map
	List
)

func (k Kind) String() string {
	switch k {
	case Map:
		return "map"
	case List:
		return "list"
	default:
		return "scalar"
	}
}

// Node is a JSON-shaped tree: a map of named children, an ordered list of
// children, or a scalar (string, json.Number, bool or nil).
type Node struct {
	kind   Kind
	scalar any
	fields map[string]*Node
	items  []*Node
}

// ParseJSON decodes data into a tree. Numbers are kept as json.Number.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return NewNode(v)
}

// NewNode builds a tree from a Go value. Generic JSON values
// (map[string]any, []any, strings, numbers, bools, nil) convert directly;
// anything else goes through encoding/json first.
func NewNode(v any) (*Node, error) {
	switch t := v.(type) {
	case nil, string, bool, json.Number:
		return &Node{kind: Scalar, scalar: t}, nil
	case float64:
		return &Node{kind: Scalar, scalar: json.Number(strconv.FormatFloat(t, 'g', -1, 64))}, nil
	case int:
		return &Node{kind: Scalar, scalar: json.Number(strconv.Itoa(t))}, nil
	case int64:
		return &Node{kind: Scalar, scalar: json.Number(strconv.FormatInt(t, 10))}, nil
	case map[string]any:
		n := &Node{kind: Map, fields: make(map[string]*Node, len(t))}
		for k, fv := range t {
			child, err := NewNode(fv)
			if err != nil {
				return nil, err
			}
			n.fields[k] = child
		}
		return n, nil
	case []any:
		n := &Node{kind: List, items: make([]*Node, 0, len(t))}
		for _, iv := range t {
			child, err := NewNode(iv)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, child)
		}
		return n, nil
	case *Node:
		return t.Clone(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return ParseJSON(b)
	}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) Len() int {
	switch n.kind {
	case Map:
		return len(n.fields)
	case List:
		return len(n.items)
	}
	return 0
}

// Value converts the tree back to generic Go values. The result shares no
// maps or slices with n.
func (n *Node) Value() any {
	switch n.kind {
	case Map:
		m := make(map[string]any, len(n.fields))
		for k, c := range n.fields {
			m[k] = c.Value()
		}
		return m
	case List:
		s := make([]any, len(n.items))
		for i, c := range n.items {
			s[i] = c.Value()
		}
		return s
	default:
		return n.scalar
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value())
}

func (n *Node) Clone() *Node {
	cp := &Node{kind: n.kind, scalar: n.scalar}
	switch n.kind {
	case Map:
		cp.fields = make(map[string]*Node, len(n.fields))
		for k, c := range n.fields {
			cp.fields[k] = c.Clone()
		}
	case List:
		cp.items = make([]*Node, len(n.items))
		for i, c := range n.items {
			cp.items[i] = c.Clone()
		}
	}
	return cp
}

// Path is a parsed dotted path such as contact.address.city or
// homepage.features.0.title. Whether a segment is a field name or a list
// index depends on the node it is applied to.
type Path []string

// ParsePath splits s on dots. Empty paths and empty segments are rejected.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	p := Path(strings.Split(s, "."))
	for i, seg := range p {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrInvalidPath, i, s)
		}
	}
	return p, nil
}

func (p Path) String() string { return strings.Join(p, ".") }

// PathError reports the segment at which resolution failed.
type PathError struct {
	Path    Path
	Segment int
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q at %q: %v", e.Path.String(), e.Path[e.Segment], e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Get returns the node at path.
func (n *Node) Get(path Path) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	cur := n
	for i, seg := range path {
		next, err := cur.child(seg)
		if err != nil {
			return nil, &PathError{Path: path, Segment: i, Err: err}
		}
		cur = next
	}
	return cur, nil
}

// Set returns a copy of n with the node at path replaced by a copy of value.
// Every segment but the last must resolve to an existing map field or an
// in-range list index, and so must the last: Set replaces leaves, it does not
// add fields or grow lists. The replacement must have the same kind as the
// leaf it replaces unless that leaf is null. Neither n nor value is modified,
// and the result shares no structure with either.
func (n *Node) Set(path Path, value *Node) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	root := n.Clone()
	parent := root
	for i, seg := range path[:len(path)-1] {
		next, err := parent.child(seg)
		if err != nil {
			return nil, &PathError{Path: path, Segment: i, Err: err}
		}
		parent = next
	}

	last := len(path) - 1
	old, err := parent.child(path[last])
	if err != nil {
		return nil, &PathError{Path: path, Segment: last, Err: err}
	}
	if !(old.kind == Scalar && old.scalar == nil) && old.kind != value.kind {
		return nil, &PathError{Path: path, Segment: last,
			Err: fmt.Errorf("%w: cannot replace %s with %s", ErrTypeMismatch, old.kind, value.kind)}
	}

	replacement := value.Clone()
	switch parent.kind {
	case Map:
		parent.fields[path[last]] = replacement
	case List:
		idx, _ := parseIndex(path[last], len(parent.items))
		parent.items[idx] = replacement
	}
	return root, nil
}

func (n *Node) child(seg string) (*Node, error) {
	switch n.kind {
	case Map:
		c, ok := n.fields[seg]
		if !ok {
			return nil, ErrNoSuchField
		}
		return c, nil
	case List:
		idx, err := parseIndex(seg, len(n.items))
		if err != nil {
			return nil, err
		}
		return n.items[idx], nil
	default:
		return nil, ErrNotContainer
	}
}

func parseIndex(seg string, length int) (int, error) {
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, ErrInvalidIndex
		}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, ErrInvalidIndex
	}
	if idx >= length {
		return 0, ErrIndexOutOfRange
	}
	return idx, nil
}
