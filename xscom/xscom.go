// Package xscom models the chip control bus (XSCOM). Registers on the bus are
// 64 bits wide and addressed by PCB address; the byte address seen by the
// processor is the PCB address shifted left by 3. Every access transfers
// exactly one register in big-endian byte order.
package xscom

import (
	"errors"
)

// RegSize is the width of an XSCOM register in bytes.
const RegSize = 8

var (
	// ErrUnmapped is returned when no region serves the accessed address.
	ErrUnmapped = errors.New("xscom: address not mapped")

	// ErrUnaligned is returned when the byte address is not register aligned.
	ErrUnaligned = errors.New("xscom: unaligned access")

	// ErrAccessSize is returned for accesses that are not 8 bytes wide.
	ErrAccessSize = errors.New("xscom: invalid access size")

	// ErrOverlap is returned when a region overlaps an already mapped region.
	ErrOverlap = errors.New("xscom: region overlaps a mapped region")

	// ErrInvalidRegion is returned for empty regions or regions without ops.
	ErrInvalidRegion = errors.New("xscom: invalid region")
)

// PCBAToAddr converts a PCB address to a bus byte address.
func PCBAToAddr(pcba uint32) uint64 {
	return uint64(pcba) << 3
}

// AddrToPCBA converts a bus byte address to a PCB address.
func AddrToPCBA(addr uint64) uint32 {
	return uint32(addr >> 3)
}
