package pec

import "github.com/sarchlab/pnvpec/xscom"

// Chip is the part of the owning chip a PEC needs: its PEC capacity.
type Chip interface {
	NumPECs() int
}

// Bus is the control bus the register windows are mapped on.
type Bus interface {
	IsFree(base uint32, size uint32) bool
	Map(r xscom.Region) error
	Unmap(name string) bool
}

// A Bridge is the host bridge device a stack builds when default devices are
// enabled.
type Bridge interface {
	Name() string
	Realize() error
}

// A BridgeFactory builds bridges for stacks.
type BridgeFactory interface {
	NewBridge(cfg BridgeConfig) Bridge
}

// BridgeConfig is what a stack hands to a new bridge.
type BridgeConfig struct {
	Name    string
	ChipID  uint32
	Index   uint32
	Version uint64
	Stack   StackRef
}

// A StackRef identifies a stack without holding on to it.
type StackRef struct {
	ChipID   uint32
	PECIndex uint32
	StackNo  int
}
