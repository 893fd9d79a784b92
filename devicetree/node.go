// Package devicetree holds a hardware description as a tree of named nodes
// with ordered properties, and encodes it as device tree source or as a
// flattened device tree blob.
package devicetree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrNodeExists is returned when adding a subnode whose name is taken.
var ErrNodeExists = errors.New("devicetree: node already exists")

// ErrInvalidName is returned for node names that cannot be encoded.
var ErrInvalidName = errors.New("devicetree: invalid node name")

// A Property is a named value. Values are raw bytes; cells are big-endian.
type Property struct {
	Name  string
	Value []byte
}

// Cells interprets the value as 32-bit big-endian cells. It returns nil if
// the value length is not a multiple of 4.
func (p Property) Cells() []uint32 {
	if len(p.Value)%4 != 0 {
		return nil
	}

	cells := make([]uint32, len(p.Value)/4)
	for i := range cells {
		cells[i] = binary.BigEndian.Uint32(p.Value[i*4:])
	}

	return cells
}

// Strings interprets the value as a list of NUL-terminated strings. It
// returns nil if the value is not such a list.
func (p Property) Strings() []string {
	if len(p.Value) == 0 || p.Value[len(p.Value)-1] != 0 {
		return nil
	}

	parts := strings.Split(string(p.Value[:len(p.Value)-1]), "\x00")
	for _, s := range parts {
		if s == "" || !isPrintable(s) {
			return nil
		}
	}

	return parts
}

func isPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}

	return true
}

// A Node is a device tree node. Properties and children keep the order in
// which they were added.
type Node struct {
	Name       string
	Properties []Property
	Children   []*Node
}

// NewNode creates a node without properties or children.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// AddSubnode appends a new child node.
func (n *Node) AddSubnode(name string) (*Node, error) {
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if _, found := n.Subnode(name); found {
		return nil, fmt.Errorf("%w: %s/%s", ErrNodeExists, n.Name, name)
	}

	child := NewNode(name)
	n.Children = append(n.Children, child)

	return child, nil
}

// Subnode returns the direct child with the given name.
func (n *Node) Subnode(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// Prop returns the property with the given name.
func (n *Node) Prop(name string) (Property, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return Property{}, false
}

// SetProp sets a property. An existing property keeps its position and gets
// the new value; a new property is appended. The value is copied.
func (n *Node) SetProp(name string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)

	for i := range n.Properties {
		if n.Properties[i].Name == name {
			n.Properties[i].Value = v
			return
		}
	}

	n.Properties = append(n.Properties, Property{Name: name, Value: v})
}

// SetPropCell sets a property holding a single 32-bit cell.
func (n *Node) SetPropCell(name string, value uint32) {
	n.SetPropCells(name, value)
}

// SetPropCells sets a property holding a list of 32-bit cells.
func (n *Node) SetPropCells(name string, values ...uint32) {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint32(buf[i*4:], v)
	}

	n.SetProp(name, buf)
}

// SetPropU64s sets a property holding a list of 64-bit values, each encoded
// as two cells.
func (n *Node) SetPropU64s(name string, values ...uint64) {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint64(buf[i*8:], v)
	}

	n.SetProp(name, buf)
}

// SetPropStrings sets a property holding a list of NUL-terminated strings.
func (n *Node) SetPropStrings(name string, values ...string) {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v)
		sb.WriteByte(0)
	}

	n.SetProp(name, []byte(sb.String()))
}

// SetPropFlag sets an empty property.
func (n *Node) SetPropFlag(name string) {
	n.SetProp(name, nil)
}

// UnitAddress returns the part of the name after '@', if any.
func (n *Node) UnitAddress() string {
	_, addr, found := strings.Cut(n.Name, "@")
	if !found {
		return ""
	}

	return addr
}

// Walk visits the node and its descendants depth first. The path of the root
// is "/".
func (n *Node) Walk(visit func(path string, node *Node)) {
	n.walk("", visit)
}

func (n *Node) walk(parent string, visit func(path string, node *Node)) {
	path := "/"
	if parent != "" {
		path = strings.TrimSuffix(parent, "/") + "/" + n.Name
	}

	visit(path, n)

	for _, c := range n.Children {
		c.walk(path, visit)
	}
}

// Lookup finds a node by absolute path, for example
// "/xscom@603fc00000000/pbcq@4010c00".
func (n *Node) Lookup(path string) (*Node, bool) {
	if path == "/" {
		return n, true
	}

	cur := n
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		next, found := cur.Subnode(part)
		if !found {
			return nil, false
		}

		cur = next
	}

	return cur, true
}
