// Package chip models a processor chip that owns an XSCOM bus and a set of
// PECs.
package chip

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pnvpec/devicetree"
	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/phb"
	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/xscom"
)

// Spec holds the identity of a chip.
type Spec struct {
	ChipID         uint32
	DefaultDevices bool
}

// DefaultSpec returns the Spec of chip 0 with default devices.
func DefaultSpec() Spec {
	return Spec{DefaultDevices: true}
}

// Chip is a processor chip.
type Chip struct {
	*sim.ComponentBase

	Spec Spec

	profile Profile
	bus     *xscom.Bus
	bridges *phb.Factory
	pecs    []*pec.Controller
}

// NumPECs returns the PEC capacity of the chip.
func (c *Chip) NumPECs() int {
	return c.profile.NumPECs
}

// Profile returns the generation profile of the chip.
func (c *Chip) Profile() Profile {
	return c.profile
}

// Bus returns the XSCOM bus of the chip.
func (c *Chip) Bus() *xscom.Bus {
	return c.bus
}

// PECs returns all PECs of the chip in index order.
func (c *Chip) PECs() []*pec.Controller {
	return c.pecs
}

// PEC returns the PEC with the given index.
func (c *Chip) PEC(index int) (*pec.Controller, bool) {
	if index < 0 || index >= len(c.pecs) {
		return nil, false
	}

	return c.pecs[index], true
}

// Bridges returns the bridges that realized.
func (c *Chip) Bridges() []*phb.Bridge {
	return c.bridges.Bridges()
}

// XscomBase returns the MMIO base of the XSCOM window.
func (c *Chip) XscomBase() uint64 {
	return c.profile.XscomBase(c.Spec.ChipID)
}

// Realize realizes all PECs. A fatal PEC error stops realizing and is
// returned as is. Bridge failures are joined and returned once all PECs are
// realized.
func (c *Chip) Realize() error {
	if c.Realized() {
		return fmt.Errorf("%s: already realized", c.Name())
	}

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: sim.HookPosBeforeRealize})

	var errs []error

	for _, p := range c.pecs {
		err := p.Realize()
		if pec.IsFatal(err) {
			return err
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	c.MarkRealized()

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: sim.HookPosAfterRealize})

	return errors.Join(errs...)
}

// AppendDeviceTree adds the XSCOM node of the chip with its PECs under root,
// followed by the bridges of the chip. It returns the XSCOM node.
func (c *Chip) AppendDeviceTree(
	root *devicetree.Node,
) (*devicetree.Node, error) {
	base := c.XscomBase()

	node, err := root.AddSubnode(fmt.Sprintf("xscom@%x", base))
	if err != nil {
		return nil, err
	}

	node.SetPropCell("ibm,chip-id", c.Spec.ChipID)
	node.SetPropCell("#address-cells", 1)
	node.SetPropCell("#size-cells", 1)
	node.SetPropU64s("reg", base, c.profile.XscomSize)
	node.SetPropStrings("compatible", c.profile.XscomCompat...)
	node.SetPropFlag("scom-controller")

	for _, p := range c.pecs {
		if !p.Active() {
			continue
		}

		if _, err := p.AppendDeviceTree(node); err != nil {
			return nil, err
		}
	}

	for _, b := range c.Bridges() {
		if _, err := b.AppendDeviceTree(root); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// Components returns the chip, its PECs and its bridges.
func (c *Chip) Components() []sim.Component {
	comps := []sim.Component{c}

	for _, p := range c.pecs {
		comps = append(comps, p)
	}

	for _, b := range c.bridges.Bridges() {
		comps = append(comps, b)
	}

	return comps
}
