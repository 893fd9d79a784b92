package pec

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/xscom"
)

// State is the realize progress of a PEC.
type State int

// The states a PEC goes through while realizing.
const (
	StateConstructed State = iota
	StateIndexValidated
	StateStacksResolved
	StateRegistersMapped
	StateActive
	StateRejectedConfiguration
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateIndexValidated:
		return "IndexValidated"
	case StateStacksResolved:
		return "StacksResolved"
	case StateRegistersMapped:
		return "RegistersMapped"
	case StateActive:
		return "Active"
	case StateRejectedConfiguration:
		return "RejectedConfiguration"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HookPosGuestError triggers when a register access is ignored. The hook
// item is a GuestError.
var HookPosGuestError = &sim.HookPos{Name: "PECGuestError"}

// HookPosStackRealized triggers after each stack is realized. The hook item
// is the *Stack and the detail is the error of the stack, if any.
var HookPosStackRealized = &sim.HookPos{Name: "PECStackRealized"}

// Spec holds the identity of a PEC.
type Spec struct {
	ChipID uint32
	Index  uint32

	// DefaultDevices makes every active stack build its bridge.
	DefaultDevices bool
}

// DefaultSpec returns the Spec of PEC 0 on chip 0 with default devices.
func DefaultSpec() Spec {
	return Spec{DefaultDevices: true}
}

// Controller is a PCI Express controller (PEC). It owns the nest and pci
// register windows and up to MaxStacks stacks.
type Controller struct {
	*sim.ComponentBase

	Spec Spec

	profile Profile
	chip    Chip
	bus     Bus
	bridges BridgeFactory
	logger  *log.Logger

	state       State
	numStacks   int
	stacks      [MaxStacks]Stack
	nestRegs    *RegisterFile
	pciRegs     *RegisterFile
	guestErrors uint64
}

// Realize validates the identity of the PEC, realizes its active stacks, and
// maps its register windows. A *ConfigError is fatal and leaves nothing
// realized. Otherwise the PEC is active, and the returned error, if any,
// joins the *StackError of each bridge that failed.
func (c *Controller) Realize() error {
	if c.state != StateConstructed {
		return fmt.Errorf("%s: cannot realize in state %s", c.Name(), c.state)
	}

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: sim.HookPosBeforeRealize})

	numStacks, err := c.validate()
	if err != nil {
		c.state = StateRejectedConfiguration
		return err
	}

	c.state = StateIndexValidated

	c.numStacks = numStacks
	c.state = StateStacksResolved

	stackErr := c.realizeStacks()

	c.mapRegisters()
	c.state = StateRegistersMapped

	c.state = StateActive
	c.MarkRealized()

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: sim.HookPosAfterRealize})

	return stackErr
}

func (c *Controller) validate() (int, error) {
	if int64(c.Spec.Index) >= int64(c.chip.NumPECs()) {
		return 0, c.configError(
			fmt.Sprintf("invalid PEC index: %d", c.Spec.Index), nil)
	}

	numStacks, err := c.profile.StackCount(c.Spec.Index)
	if err != nil {
		return 0, c.configError("cannot resolve stacks", err)
	}

	if !c.bus.IsFree(c.NestBase(), c.profile.NestSize) {
		return 0, c.configError(fmt.Sprintf("nest window 0x%x is taken",
			c.NestBase()), nil)
	}

	if !c.bus.IsFree(c.PCIBase(), c.profile.PCISize) {
		return 0, c.configError(fmt.Sprintf("pci window 0x%x is taken",
			c.PCIBase()), nil)
	}

	return numStacks, nil
}

func (c *Controller) configError(reason string, err error) error {
	return &ConfigError{Component: c.Name(), Reason: reason, Err: err}
}

func (c *Controller) realizeStacks() error {
	var errs []error

	for i := range c.stacks {
		s := &c.stacks[i]

		if i >= c.numStacks {
			s.discard()
			continue
		}

		err := s.realize(stackSetup{
			stackNo:        i,
			parent:         c.ID(),
			bridgeIndex:    c.BridgeIndex(i),
			version:        c.profile.Version,
			defaultDevices: c.Spec.DefaultDevices,
			bridges:        c.bridges,
		})
		if err != nil {
			c.logger.Print(err)
			errs = append(errs, err)
		}

		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosStackRealized,
			Item:   s,
			Detail: err,
		})
	}

	return errors.Join(errs...)
}

func (c *Controller) mapRegisters() {
	c.nestRegs = NewRegisterFile(NestWindow,
		c.profile.NestSize, c.profile.NestWritable, c.reportGuestError)
	c.pciRegs = NewRegisterFile(PCIWindow,
		c.profile.PCISize, c.profile.PCIWritable, c.reportGuestError)

	nest := xscom.Region{
		Name: c.RegionName(NestWindow),
		Base: c.NestBase(),
		Size: c.nestRegs.NumRegs(),
		Ops:  c.nestRegs,
	}
	if err := c.bus.Map(nest); err != nil {
		log.Panicf("%s: mapping a validated window failed: %v", c.Name(), err)
	}

	pci := xscom.Region{
		Name: c.RegionName(PCIWindow),
		Base: c.PCIBase(),
		Size: c.pciRegs.NumRegs(),
		Ops:  c.pciRegs,
	}
	if err := c.bus.Map(pci); err != nil {
		c.bus.Unmap(nest.Name)
		log.Panicf("%s: mapping a validated window failed: %v", c.Name(), err)
	}
}

func (c *Controller) reportGuestError(e GuestError) {
	e.ChipID = c.Spec.ChipID
	e.Index = c.Spec.Index
	c.guestErrors++

	c.logger.Print(e)

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosGuestError, Item: e})
}

// RegionName returns the name of the bus region of a window.
func (c *Controller) RegionName(w Window) string {
	return fmt.Sprintf("xscom-pec-%d.%d-%s", c.Spec.ChipID, c.Spec.Index, w)
}

// ID returns the chip and index of the PEC.
func (c *Controller) ID() ControllerID {
	return ControllerID{ChipID: c.Spec.ChipID, Index: c.Spec.Index}
}

// State returns how far the PEC got in realizing.
func (c *Controller) State() State {
	return c.state
}

// Active tells if the PEC is realized.
func (c *Controller) Active() bool {
	return c.state == StateActive
}

// Profile returns the generation profile of the PEC.
func (c *Controller) Profile() Profile {
	return c.profile
}

// NestBase returns the PCB address of the nest window.
func (c *Controller) NestBase() uint32 {
	return c.profile.NestBase(c.Spec.Index)
}

// PCIBase returns the PCB address of the pci window.
func (c *Controller) PCIBase() uint32 {
	return c.profile.PCIBase(c.Spec.Index)
}

// BridgeIndex returns the machine-wide index of the bridge of a stack: the
// stacks of all lower-indexed PECs come first.
func (c *Controller) BridgeIndex(stackNo int) uint32 {
	offset := uint32(0)
	for i := uint32(0); i < c.Spec.Index && int(i) < len(c.profile.NumStacks); i++ {
		offset += c.profile.NumStacks[i]
	}

	return offset + uint32(stackNo)
}

// NumStacks returns the number of active stacks. It is 0 until the stacks
// are resolved.
func (c *Controller) NumStacks() int {
	return c.numStacks
}

// Stack returns the active stack at the position.
func (c *Controller) Stack(stackNo int) (*Stack, bool) {
	if stackNo < 0 || stackNo >= c.numStacks || !c.stacks[stackNo].Active() {
		return nil, false
	}

	return &c.stacks[stackNo], true
}

// Stacks returns the active stacks in position order.
func (c *Controller) Stacks() []*Stack {
	out := make([]*Stack, 0, c.numStacks)

	for i := 0; i < c.numStacks; i++ {
		if c.stacks[i].Active() {
			out = append(out, &c.stacks[i])
		}
	}

	return out
}

// Bridges returns the bridges built by the active stacks.
func (c *Controller) Bridges() []Bridge {
	var out []Bridge

	for _, s := range c.Stacks() {
		if s.Bridge() != nil {
			out = append(out, s.Bridge())
		}
	}

	return out
}

// NestRegs returns the nest register file. It is nil until mapped.
func (c *Controller) NestRegs() *RegisterFile {
	return c.nestRegs
}

// PCIRegs returns the pci register file. It is nil until mapped.
func (c *Controller) PCIRegs() *RegisterFile {
	return c.pciRegs
}

// GuestErrors returns how many register accesses were ignored.
func (c *Controller) GuestErrors() uint64 {
	return c.guestErrors
}
