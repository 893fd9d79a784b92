// Package machine assembles chips into a PowerNV machine and exposes the
// whole-machine views: the device tree and XSCOM access by chip.
package machine

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/pnvpec/chip"
	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/devicetree"
	"github.com/sarchlab/pnvpec/monitoring"
	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/tracing"
	"github.com/sarchlab/pnvpec/xscom"
)

// ErrNoChip is returned when addressing a chip the machine does not have.
var ErrNoChip = errors.New("no such chip")

// ErrAlreadyRealized is returned when Realize is called more than once.
var ErrAlreadyRealized = errors.New("machine already realized")

// Machine is a set of chips sharing a device tree.
type Machine struct {
	id         string
	profile    chip.Profile
	chips      []*chip.Chip
	simulation *sim.Simulation
	recorder   datarecording.DataRecorder
	monitor    *monitoring.Monitor
	realized   bool

	traceAccesses    bool
	guestErrorTracer *tracing.GuestErrorTracer
	accessTracer     *tracing.AccessTracer
}

// ID returns the unique ID of the machine.
func (m *Machine) ID() string {
	return m.id
}

// Profile returns the processor generation of the chips.
func (m *Machine) Profile() chip.Profile {
	return m.profile
}

// Chips returns the chips in chip-id order.
func (m *Machine) Chips() []*chip.Chip {
	return m.chips
}

// Chip returns the chip with the given id.
func (m *Machine) Chip(chipID uint32) (*chip.Chip, error) {
	if int(chipID) >= len(m.chips) {
		return nil, fmt.Errorf("%w: %d", ErrNoChip, chipID)
	}

	return m.chips[chipID], nil
}

// Simulation returns the registry of the realized components.
func (m *Machine) Simulation() *sim.Simulation {
	return m.simulation
}

// GuestErrors returns the number of guest errors across all PECs.
func (m *Machine) GuestErrors() uint64 {
	n := uint64(0)

	for _, c := range m.chips {
		for _, p := range c.PECs() {
			n += p.GuestErrors()
		}
	}

	return n
}

// Realize realizes all chips and registers their components. A fatal error
// stops at the chip that failed. Bridge failures are joined and returned
// after every chip is realized. Realize runs once, even if it failed; later
// calls return ErrAlreadyRealized.
func (m *Machine) Realize() error {
	if m.realized {
		return fmt.Errorf("%w: %s", ErrAlreadyRealized, m.id)
	}

	m.realized = true

	var bar *monitoring.ProgressBar
	if m.monitor != nil {
		bar = m.monitor.CreateProgressBar("Realizing", uint64(len(m.chips)))
		defer m.monitor.CompleteProgressBar(bar)
	}

	m.attachTracers()

	var errs []error

	for _, c := range m.chips {
		if bar != nil {
			bar.IncrementInProgress(1)
		}

		err := c.Realize()
		if pec.IsFatal(err) {
			return err
		}

		if err != nil {
			errs = append(errs, err)
		}

		m.registerComponents(c)

		if bar != nil {
			bar.MoveInProgressToFinished(1)
		}
	}

	if m.monitor != nil {
		m.monitor.RegisterTarget(m)
	}

	return errors.Join(errs...)
}

func (m *Machine) attachTracers() {
	if m.recorder == nil {
		return
	}

	m.guestErrorTracer = tracing.NewGuestErrorTracer(m.recorder)
	if m.traceAccesses {
		m.accessTracer = tracing.NewAccessTracer(m.recorder)
	}

	for _, c := range m.chips {
		for _, p := range c.PECs() {
			p.AcceptHook(m.guestErrorTracer)
		}

		if m.accessTracer != nil {
			c.Bus().AcceptHook(m.accessTracer)
		}
	}
}

func (m *Machine) registerComponents(c *chip.Chip) {
	for _, comp := range c.Components() {
		m.simulation.RegisterComponent(comp)

		if m.monitor != nil {
			m.monitor.RegisterComponent(comp)
		}
	}
}

// DeviceTree builds the description of the machine.
func (m *Machine) DeviceTree() (*devicetree.Node, error) {
	root := devicetree.NewNode("")
	root.SetPropCell("#address-cells", 2)
	root.SetPropCell("#size-cells", 2)
	root.SetPropStrings("compatible", m.profile.MachineCompat...)
	root.SetPropStrings("model", "IBM PowerNV (emulated by pecsim)")

	for _, c := range m.chips {
		if _, err := c.AppendDeviceTree(root); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// WriteDeviceTreeSource writes the description as device tree source.
func (m *Machine) WriteDeviceTreeSource(w io.Writer) error {
	root, err := m.DeviceTree()
	if err != nil {
		return err
	}

	return devicetree.WriteSource(w, root)
}

// DeviceTreeBlob returns the description as a flattened device tree.
func (m *Machine) DeviceTreeBlob() ([]byte, error) {
	root, err := m.DeviceTree()
	if err != nil {
		return nil, err
	}

	return devicetree.Flatten(root, 0)
}

// ReadXSCOM reads a register of a chip by PCB address.
func (m *Machine) ReadXSCOM(chipID uint32, pcba uint32) (uint64, error) {
	c, err := m.Chip(chipID)
	if err != nil {
		return 0, err
	}

	return c.Bus().ReadReg(pcba)
}

// WriteXSCOM writes a register of a chip by PCB address.
func (m *Machine) WriteXSCOM(chipID uint32, pcba uint32, value uint64) error {
	c, err := m.Chip(chipID)
	if err != nil {
		return err
	}

	return c.Bus().WriteReg(pcba, value)
}

// ReadMMIO reads through the XSCOM window of whichever chip maps addr.
func (m *Machine) ReadMMIO(addr uint64, data []byte) error {
	c, offset, err := m.decodeMMIO(addr)
	if err != nil {
		return err
	}

	return c.Bus().Read(offset, data)
}

// WriteMMIO writes through the XSCOM window of whichever chip maps addr.
func (m *Machine) WriteMMIO(addr uint64, data []byte) error {
	c, offset, err := m.decodeMMIO(addr)
	if err != nil {
		return err
	}

	return c.Bus().Write(offset, data)
}

// XSCOMAddress returns the MMIO address of a register of a chip.
func (m *Machine) XSCOMAddress(chipID uint32, pcba uint32) (uint64, error) {
	c, err := m.Chip(chipID)
	if err != nil {
		return 0, err
	}

	return c.XscomBase() + xscom.PCBAToAddr(pcba), nil
}

func (m *Machine) decodeMMIO(addr uint64) (*chip.Chip, uint64, error) {
	for _, c := range m.chips {
		base := c.XscomBase()
		if addr >= base && addr-base < m.profile.XscomSize {
			return c, addr - base, nil
		}
	}

	return nil, 0, fmt.Errorf("%w: address 0x%x", xscom.ErrUnmapped, addr)
}

// Terminate flushes the recorder and stops the monitor.
func (m *Machine) Terminate() error {
	if m.monitor != nil {
		m.monitor.StopServer()
	}

	if m.recorder != nil {
		return m.recorder.Close()
	}

	return nil
}
