package pec

import (
	"log"

	"github.com/sarchlab/pnvpec/sim"
)

type stackState int

const (
	stackInert stackState = iota
	stackActive
	stackDiscarded
)

// ControllerID identifies a PEC by chip and index.
type ControllerID struct {
	ChipID uint32
	Index  uint32
}

// A Stack is one bridge lane of a PEC. Stacks live in their PEC's slot array;
// only the first NumStacks slots are ever realized.
type Stack struct {
	name        string
	stackNo     int
	parent      ControllerID
	bridgeIndex uint32
	state       stackState
	bridge      Bridge
}

// Name returns the name of the stack.
func (s *Stack) Name() string {
	return s.name
}

// StackNo returns the position of the stack in its PEC.
func (s *Stack) StackNo() int {
	return s.stackNo
}

// Parent identifies the PEC that owns the stack.
func (s *Stack) Parent() ControllerID {
	return s.parent
}

// BridgeIndex returns the machine-wide index of the stack's bridge.
func (s *Stack) BridgeIndex() uint32 {
	return s.bridgeIndex
}

// Bridge returns the bridge built by the stack, or nil if default devices
// are disabled or the bridge failed to realize.
func (s *Stack) Bridge() Bridge {
	return s.bridge
}

// Ref returns a reference that identifies the stack.
func (s *Stack) Ref() StackRef {
	return StackRef{
		ChipID:   s.parent.ChipID,
		PECIndex: s.parent.Index,
		StackNo:  s.stackNo,
	}
}

// Active tells if the stack has been realized.
func (s *Stack) Active() bool {
	return s.state == stackActive
}

type stackSetup struct {
	stackNo        int
	parent         ControllerID
	bridgeIndex    uint32
	version        uint64
	defaultDevices bool
	bridges        BridgeFactory
}

func (s *Stack) realize(setup stackSetup) error {
	if s.state != stackInert {
		log.Panicf("%s: stack cannot be realized twice", s.name)
	}

	s.stackNo = setup.stackNo
	s.parent = setup.parent
	s.bridgeIndex = setup.bridgeIndex
	s.state = stackActive

	if !setup.defaultDevices {
		return nil
	}

	return s.realizeDefaultBridge(setup)
}

func (s *Stack) realizeDefaultBridge(setup stackSetup) error {
	bridge := setup.bridges.NewBridge(BridgeConfig{
		Name:    sim.BuildName(s.name, "PHB"),
		ChipID:  s.parent.ChipID,
		Index:   s.bridgeIndex,
		Version: setup.version,
		Stack:   s.Ref(),
	})

	if err := bridge.Realize(); err != nil {
		return &StackError{Stack: s.name, StackNo: s.stackNo, Err: err}
	}

	s.bridge = bridge

	return nil
}

func (s *Stack) discard() {
	s.state = stackDiscarded
}
