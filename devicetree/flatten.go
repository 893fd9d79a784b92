package devicetree

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/u-root/u-root/pkg/dt"
)

// Flattened device tree versions written by Flatten.
const (
	fdtMagic        = 0xd00dfeed
	fdtVersion      = 17
	fdtLastCompVers = 16
)

// ErrMalformed is returned when a blob is not a valid flattened device tree.
var ErrMalformed = errors.New("devicetree: malformed blob")

// Flatten encodes the tree rooted at root as a version 17 flattened device
// tree blob with an empty memory reservation map.
func Flatten(root *Node, bootCPU uint32) ([]byte, error) {
	rootNode, err := toFDTNode(root, true)
	if err != nil {
		return nil, err
	}

	fdt := &dt.FDT{
		Header: dt.Header{
			Magic:           fdtMagic,
			Version:         fdtVersion,
			LastCompVersion: fdtLastCompVers,
			BootCpuidPhys:   bootCPU,
		},
		RootNode: rootNode,
	}

	var out bytes.Buffer
	if _, err := fdt.Write(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func toFDTNode(n *Node, root bool) (*dt.Node, error) {
	name := n.Name
	if root {
		name = ""
	} else if name == "" {
		return nil, fmt.Errorf("%w: empty name below the root", ErrInvalidName)
	}

	out := &dt.Node{Name: name}

	for _, p := range n.Properties {
		out.Properties = append(out.Properties,
			dt.Property{Name: p.Name, Value: p.Value})
	}

	for _, c := range n.Children {
		child, err := toFDTNode(c, false)
		if err != nil {
			return nil, err
		}

		out.Children = append(out.Children, child)
	}

	return out, nil
}

// Unflatten decodes a flattened device tree blob.
func Unflatten(blob []byte) (*Node, error) {
	fdt, err := dt.ReadFDT(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if fdt.RootNode == nil {
		return nil, fmt.Errorf("%w: missing root node", ErrMalformed)
	}

	return fromFDTNode(fdt.RootNode), nil
}

func fromFDTNode(n *dt.Node) *Node {
	out := NewNode(n.Name)

	for _, p := range n.Properties {
		out.SetProp(p.Name, p.Value)
	}

	for _, c := range n.Children {
		out.Children = append(out.Children, fromFDTNode(c))
	}

	return out
}
