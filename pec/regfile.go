package pec

import (
	"fmt"
	"log"

	"github.com/sarchlab/pnvpec/xscom"
)

// Window identifies one of the two register windows of a PEC.
type Window int

// The register windows of a PEC.
const (
	NestWindow Window = iota
	PCIWindow
)

func (w Window) String() string {
	switch w {
	case NestWindow:
		return "nest"
	case PCIWindow:
		return "pci"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// GuestErrorKind classifies register accesses the hardware would not honor.
type GuestErrorKind int

// Kinds of guest errors.
const (
	RejectedWrite GuestErrorKind = iota
	OutOfRangeRead
	OutOfRangeWrite
)

func (k GuestErrorKind) String() string {
	switch k {
	case RejectedWrite:
		return "write to read-only register"
	case OutOfRangeRead:
		return "read beyond window"
	case OutOfRangeWrite:
		return "write beyond window"
	default:
		return fmt.Sprintf("guest error(%d)", int(k))
	}
}

// A GuestError describes a register access that was ignored. ChipID and
// Index are filled by the owning controller.
type GuestError struct {
	ChipID uint32
	Index  uint32
	Window Window
	Kind   GuestErrorKind
	Offset uint64
	Value  uint64
}

func (e GuestError) String() string {
	return fmt.Sprintf("phb4_pec[%d:%d]: %s %s @0x%x=%x",
		e.ChipID, e.Index, e.Window, e.Kind, e.Offset, e.Value)
}

// A RegisterFile is a window of 64-bit registers in which only whitelisted
// registers accept writes.
type RegisterFile struct {
	window   Window
	regs     []uint64
	writable map[uint32]struct{}
	report   func(GuestError)
}

// NewRegisterFile creates a register file with numRegs registers, all zero.
// report receives every ignored access; it may be nil.
func NewRegisterFile(
	window Window,
	numRegs uint32,
	writable []uint32,
	report func(GuestError),
) *RegisterFile {
	f := &RegisterFile{
		window:   window,
		regs:     make([]uint64, numRegs),
		writable: make(map[uint32]struct{}, len(writable)),
		report:   report,
	}

	for _, reg := range writable {
		if reg >= numRegs {
			log.Panicf("writable register 0x%x outside of %s window of %d registers",
				reg, window, numRegs)
		}

		f.writable[reg] = struct{}{}
	}

	return f
}

// Window returns which window the file backs.
func (f *RegisterFile) Window() Window {
	return f.window
}

// NumRegs returns the number of registers.
func (f *RegisterFile) NumRegs() uint32 {
	return uint32(len(f.regs))
}

// ByteSize returns the size of the file in bytes.
func (f *RegisterFile) ByteSize() uint64 {
	return uint64(len(f.regs)) * xscom.RegSize
}

// IsWritable tells if the register accepts writes.
func (f *RegisterFile) IsWritable(reg uint32) bool {
	_, found := f.writable[reg]
	return found
}

// Read returns the register at the byte offset. Registers that were never
// written read as zero. Offsets beyond the file read as zero and are
// reported.
func (f *RegisterFile) Read(offset uint64) uint64 {
	reg := offset / xscom.RegSize
	if reg >= uint64(len(f.regs)) {
		f.reportError(OutOfRangeRead, offset, 0)
		return 0
	}

	return f.regs[reg]
}

// Write stores the value at the byte offset if the register is writable.
// Other writes leave the file unchanged and are reported.
func (f *RegisterFile) Write(offset uint64, value uint64) {
	reg := offset / xscom.RegSize
	if reg >= uint64(len(f.regs)) {
		f.reportError(OutOfRangeWrite, offset, value)
		return
	}

	if !f.IsWritable(uint32(reg)) {
		f.reportError(RejectedWrite, offset, value)
		return
	}

	f.regs[reg] = value
}

func (f *RegisterFile) reportError(kind GuestErrorKind, offset, value uint64) {
	if f.report == nil {
		return
	}

	f.report(GuestError{
		Window: f.window,
		Kind:   kind,
		Offset: offset,
		Value:  value,
	})
}
