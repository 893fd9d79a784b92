package xscom

import "fmt"

// RegionOps serves the accesses that land in one mapped region. Offsets are
// byte offsets from the start of the region and are always multiples of
// RegSize and smaller than the region's byte size.
type RegionOps interface {
	Read(offset uint64) uint64
	Write(offset uint64, value uint64)
}

// A Region is a window of consecutive registers on the bus.
type Region struct {
	Name string

	// Base is the PCB address of the first register.
	Base uint32

	// Size is the number of registers.
	Size uint32

	Ops RegionOps
}

// End returns the PCB address right after the last register of the region.
func (r Region) End() uint64 {
	return uint64(r.Base) + uint64(r.Size)
}

// ByteSize returns the size of the region in bytes.
func (r Region) ByteSize() uint64 {
	return uint64(r.Size) * RegSize
}

// Contains tells if the PCB address falls into the region.
func (r Region) Contains(pcba uint32) bool {
	return pcba >= r.Base && uint64(pcba) < r.End()
}

func (r Region) overlaps(base uint32, size uint32) bool {
	end := uint64(base) + uint64(size)
	return uint64(r.Base) < end && uint64(base) < r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("%s[0x%x-0x%x)", r.Name, r.Base, r.End())
}
