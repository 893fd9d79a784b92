package pec

import (
	"fmt"

	"github.com/sarchlab/pnvpec/devicetree"
)

// AppendDeviceTree adds the description of the PEC under parent, with one
// child per active stack in position order, and returns the PEC node. The
// PEC must be active.
func (c *Controller) AppendDeviceTree(
	parent *devicetree.Node,
) (*devicetree.Node, error) {
	nbase := c.NestBase()
	pbase := c.PCIBase()

	node, err := parent.AddSubnode(fmt.Sprintf("pbcq@%x", nbase))
	if err != nil {
		return nil, err
	}

	node.SetPropCells("reg",
		nbase, c.profile.NestSize,
		pbase, c.profile.PCISize)
	node.SetPropCell("ibm,pec-index", c.Spec.Index)
	node.SetPropCell("#address-cells", 1)
	node.SetPropCell("#size-cells", 0)
	node.SetProp("compatible", c.profile.Compat)

	for _, s := range c.Stacks() {
		stk, err := node.AddSubnode(fmt.Sprintf("stack@%x", s.StackNo()))
		if err != nil {
			return nil, err
		}

		stk.SetProp("compatible", c.profile.StackCompat)
		stk.SetPropCell("reg", uint32(s.StackNo()))
		stk.SetPropCell("ibm,phb-index", s.BridgeIndex())
	}

	return node, nil
}
