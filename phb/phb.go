// Package phb provides the PCI host bridge that each active PEC stack builds
// when default devices are enabled. The bridge only carries its identity; no
// PCI traffic is modeled.
package phb

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pnvpec/devicetree"
	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/sim"
)

// Version majors of the supported bridge generations.
const (
	VersionPHB4 = 0xa4
	VersionPHB5 = 0xa5
)

var (
	// ErrInvalidIndex is returned when a bridge index is beyond the chip.
	ErrInvalidIndex = errors.New("invalid PHB index")

	// ErrUnknownVersion is returned for unsupported version tags.
	ErrUnknownVersion = errors.New("unknown PHB version")
)

// Spec holds the identity of a bridge.
type Spec struct {
	ChipID  uint32
	Index   uint32
	Version uint64

	// MaxIndex is the number of bridges the chip supports.
	MaxIndex uint32
}

// Major returns the generation byte of the version tag.
func (s Spec) Major() uint8 {
	return uint8(s.Version >> 32)
}

// Validate checks the bridge identity.
func (s Spec) Validate() error {
	switch s.Major() {
	case VersionPHB4, VersionPHB5:
	default:
		return fmt.Errorf("%w: 0x%x", ErrUnknownVersion, s.Version)
	}

	if s.Index >= s.MaxIndex {
		return fmt.Errorf("%w: %d, chip has %d",
			ErrInvalidIndex, s.Index, s.MaxIndex)
	}

	return nil
}

// Bridge is a PCI host bridge.
type Bridge struct {
	*sim.ComponentBase

	Spec  Spec
	stack pec.StackRef
}

// Stack identifies the stack that built the bridge.
func (b *Bridge) Stack() pec.StackRef {
	return b.stack
}

// Realize validates the bridge identity.
func (b *Bridge) Realize() error {
	if b.Realized() {
		return fmt.Errorf("%s: already realized", b.Name())
	}

	b.InvokeHook(sim.HookCtx{Domain: b, Pos: sim.HookPosBeforeRealize})

	if err := b.Spec.Validate(); err != nil {
		return fmt.Errorf("%s: %w", b.Name(), err)
	}

	b.MarkRealized()

	b.InvokeHook(sim.HookCtx{Domain: b, Pos: sim.HookPosAfterRealize})

	return nil
}

// AppendDeviceTree adds the description of the bridge under parent. The
// unit address is the chip and the bridge index.
func (b *Bridge) AppendDeviceTree(
	parent *devicetree.Node,
) (*devicetree.Node, error) {
	node, err := parent.AddSubnode(
		fmt.Sprintf("pciex@%x,%x", b.Spec.ChipID, b.Spec.Index))
	if err != nil {
		return nil, err
	}

	node.SetPropStrings("device_type", "pciex")
	node.SetPropCell("ibm,phb-index", b.Spec.Index)
	node.SetPropCell("ibm,chip-id", b.Spec.ChipID)
	node.SetPropU64s("ibm,phb-version", b.Spec.Version)
	node.SetPropCells("ibm,pec-stack",
		b.stack.PECIndex, uint32(b.stack.StackNo))

	return node, nil
}
