package pec

import (
	"errors"
	"fmt"
)

// MaxStacks is the number of stack slots every PEC allocates.
const MaxStacks = 3

// A Profile holds what differs between hardware generations of the PEC.
// Profiles are values; the package-level profiles must not be modified.
type Profile struct {
	Name string

	// Version is handed to the bridges built by the stacks.
	Version uint64

	// NestBase and PCIBase return the PCB address of the register windows
	// of the PEC with the given index.
	NestBase func(index uint32) uint32
	PCIBase  func(index uint32) uint32

	// NestSize and PCISize are the window sizes in registers.
	NestSize uint32
	PCISize  uint32

	// Compat and StackCompat are copied verbatim into the description,
	// terminators included.
	Compat      []byte
	StackCompat []byte

	// NumStacks is the number of active stacks, indexed by PEC index.
	NumStacks []uint32

	NestWritable []uint32
	PCIWritable  []uint32
}

// StridedBase returns an address base function that starts at base and moves
// by stride for each index. The stride may be negative.
func StridedBase(base uint32, stride int64) func(index uint32) uint32 {
	return func(index uint32) uint32 {
		return uint32(int64(base) + stride*int64(index))
	}
}

func cstring(s string) []byte {
	return append([]byte(s), 0)
}

// Validate checks that the profile is complete and consistent.
func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("profile name must be set")
	case p.NestBase == nil || p.PCIBase == nil:
		return fmt.Errorf("profile %s: address base functions must be set", p.Name)
	case p.NestSize == 0 || p.PCISize == 0:
		return fmt.Errorf("profile %s: window sizes must be > 0", p.Name)
	case len(p.Compat) == 0 || len(p.StackCompat) == 0:
		return fmt.Errorf("profile %s: compatible strings must be set", p.Name)
	case len(p.NumStacks) == 0:
		return fmt.Errorf("profile %s: stack table must not be empty", p.Name)
	}

	for i, n := range p.NumStacks {
		if n > MaxStacks {
			return fmt.Errorf("profile %s: PEC %d has %d stacks, max is %d",
				p.Name, i, n, MaxStacks)
		}
	}

	for _, r := range p.NestWritable {
		if r >= p.NestSize {
			return fmt.Errorf("profile %s: writable nest register 0x%x "+
				"outside of the window", p.Name, r)
		}
	}

	for _, r := range p.PCIWritable {
		if r >= p.PCISize {
			return fmt.Errorf("profile %s: writable pci register 0x%x "+
				"outside of the window", p.Name, r)
		}
	}

	return nil
}

// StackCount returns the number of active stacks of the PEC with the given
// index.
func (p Profile) StackCount(index uint32) (int, error) {
	if index >= uint32(len(p.NumStacks)) {
		return 0, fmt.Errorf("profile %s has no stack count for PEC %d",
			p.Name, index)
	}

	return int(p.NumStacks[index]), nil
}

// Phb4Profile describes the PECs of POWER9 chips.
//
//	PEC0 -> 1 stack
//	PEC1 -> 2 stacks
//	PEC2 -> 3 stacks
var Phb4Profile = Profile{
	Name:         "phb4",
	Version:      0x000000a400000002,
	NestBase:     StridedBase(0x4010c00, 0x400),
	PCIBase:      StridedBase(0xd010800, 0x1000000),
	NestSize:     0x100,
	PCISize:      0x200,
	Compat:       cstring("ibm,power9-pbcq"),
	StackCompat:  cstring("ibm,power9-phb-stack"),
	NumStacks:    []uint32{1, 2, 3},
	NestWritable: phb4NestWritable,
	PCIWritable:  phb4PCIWritable,
}

// Phb5Profile describes the PECs of POWER10 chips. Nest windows are laid
// out downwards from the base.
var Phb5Profile = Profile{
	Name:         "phb5",
	Version:      0x000000a500000001,
	NestBase:     StridedBase(0x3011800, -0x1000000),
	PCIBase:      StridedBase(0x8010800, 0x1000000),
	NestSize:     0x100,
	PCISize:      0x200,
	Compat:       cstring("ibm,power10-pbcq"),
	StackCompat:  cstring("ibm,power10-phb-stack"),
	NumStacks:    []uint32{3, 3},
	NestWritable: phb4NestWritable,
	PCIWritable:  phb4PCIWritable,
}

// NumBridges returns how many bridges all PECs of a chip can hold.
func (p Profile) NumBridges() uint32 {
	n := uint32(0)
	for _, s := range p.NumStacks {
		n += s
	}

	return n
}
