package xscom

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/sarchlab/pnvpec/sim"
)

// HookPosAccess triggers after every access that reached a region. The hook
// item is an Access.
var HookPosAccess = &sim.HookPos{Name: "XSCOMAccess"}

// Access describes one completed register access.
type Access struct {
	Region string
	PCBA   uint32
	Value  uint64
	Write  bool
}

// Bus dispatches register accesses to the mapped regions. Accesses are
// expected to be serialized by the caller.
type Bus struct {
	*sim.HookableBase

	name    string
	regions []Region
}

// NewBus creates an empty bus.
func NewBus(name string) *Bus {
	sim.NameMustBeValid(name)

	return &Bus{
		HookableBase: sim.NewHookableBase(),
		name:         name,
	}
}

// Name returns the name of the bus.
func (b *Bus) Name() string {
	return b.name
}

// IsFree tells if no mapped region intersects the given register range.
func (b *Bus) IsFree(base uint32, size uint32) bool {
	for _, r := range b.regions {
		if r.overlaps(base, size) {
			return false
		}
	}

	return true
}

// Map adds a region to the bus.
func (b *Bus) Map(r Region) error {
	if r.Size == 0 || r.Ops == nil {
		return fmt.Errorf("%w: %s", ErrInvalidRegion, r)
	}

	if r.End() > 1<<32 {
		return fmt.Errorf("%w: %s exceeds the PCB address space",
			ErrInvalidRegion, r)
	}

	for _, m := range b.regions {
		if m.overlaps(r.Base, r.Size) {
			return fmt.Errorf("%w: %s and %s", ErrOverlap, r, m)
		}
	}

	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].Base > r.Base
	})

	b.regions = append(b.regions, Region{})
	copy(b.regions[i+1:], b.regions[i:])
	b.regions[i] = r

	return nil
}

// Unmap removes the region with the given name. It returns false if no such
// region is mapped.
func (b *Bus) Unmap(name string) bool {
	for i, r := range b.regions {
		if r.Name == name {
			b.regions = append(b.regions[:i], b.regions[i+1:]...)
			return true
		}
	}

	return false
}

// Regions returns the mapped regions ordered by base address.
func (b *Bus) Regions() []Region {
	out := make([]Region, len(b.regions))
	copy(out, b.regions)

	return out
}

// FindRegion returns the region that contains the PCB address.
func (b *Bus) FindRegion(pcba uint32) (Region, bool) {
	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].End() > uint64(pcba)
	})

	if i < len(b.regions) && b.regions[i].Contains(pcba) {
		return b.regions[i], true
	}

	return Region{}, false
}

// Read performs a read at the byte address and stores the register value in
// data in big-endian order.
func (b *Bus) Read(addr uint64, data []byte) error {
	r, offset, err := b.decode(addr, data)
	if err != nil {
		return err
	}

	value := r.Ops.Read(offset)
	binary.BigEndian.PutUint64(data, value)

	b.traceAccess(r, addr, value, false)

	return nil
}

// Write performs a write of the big-endian register value in data at the
// byte address.
func (b *Bus) Write(addr uint64, data []byte) error {
	r, offset, err := b.decode(addr, data)
	if err != nil {
		return err
	}

	value := binary.BigEndian.Uint64(data)
	r.Ops.Write(offset, value)

	b.traceAccess(r, addr, value, true)

	return nil
}

// ReadReg reads the register at the PCB address.
func (b *Bus) ReadReg(pcba uint32) (uint64, error) {
	var data [RegSize]byte

	if err := b.Read(PCBAToAddr(pcba), data[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(data[:]), nil
}

// WriteReg writes the register at the PCB address.
func (b *Bus) WriteReg(pcba uint32, value uint64) error {
	var data [RegSize]byte

	binary.BigEndian.PutUint64(data[:], value)

	return b.Write(PCBAToAddr(pcba), data[:])
}

func (b *Bus) decode(addr uint64, data []byte) (Region, uint64, error) {
	if len(data) != RegSize {
		return Region{}, 0, fmt.Errorf("%w: %d bytes @0x%x",
			ErrAccessSize, len(data), addr)
	}

	if addr%RegSize != 0 {
		return Region{}, 0, fmt.Errorf("%w: @0x%x", ErrUnaligned, addr)
	}

	if addr>>3 > 0xffffffff {
		return Region{}, 0, fmt.Errorf("%w: @0x%x", ErrUnmapped, addr)
	}

	pcba := AddrToPCBA(addr)

	r, found := b.FindRegion(pcba)
	if !found {
		return Region{}, 0, fmt.Errorf("%w: pcba 0x%x", ErrUnmapped, pcba)
	}

	return r, uint64(pcba-r.Base) * RegSize, nil
}

func (b *Bus) traceAccess(r Region, addr uint64, value uint64, write bool) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosAccess,
		Item: Access{
			Region: r.Name,
			PCBA:   AddrToPCBA(addr),
			Value:  value,
			Write:  write,
		},
	})
}
