package chip

import "github.com/sarchlab/pnvpec/pec"

// Profile holds what differs between processor generations.
type Profile struct {
	Name string

	// NumPECs is the PEC capacity of the chip.
	NumPECs int

	// XscomBase returns the MMIO base of the XSCOM window of a chip.
	XscomBase   func(chipID uint32) uint64
	XscomSize   uint64
	XscomCompat []string

	// MachineCompat is the compatible list of the root node.
	MachineCompat []string

	PEC pec.Profile
}

// Power9 describes POWER9 chips.
var Power9 = Profile{
	Name:    "power9",
	NumPECs: 3,
	XscomBase: func(chipID uint32) uint64 {
		return 0x000603fc00000000 + uint64(chipID)<<42
	},
	XscomSize:     0x0000000400000000,
	XscomCompat:   []string{"ibm,power9-xscom", "ibm,xscom"},
	MachineCompat: []string{"qemu,powernv9", "ibm,powernv"},
	PEC:           pec.Phb4Profile,
}

// Power10 describes POWER10 chips.
var Power10 = Profile{
	Name:    "power10",
	NumPECs: 2,
	XscomBase: func(chipID uint32) uint64 {
		return 0x000603fc00000000 + uint64(chipID)<<44
	},
	XscomSize:     0x0000000400000000,
	XscomCompat:   []string{"ibm,power10-xscom", "ibm,xscom"},
	MachineCompat: []string{"qemu,powernv10", "ibm,powernv"},
	PEC:           pec.Phb5Profile,
}

// ProfileByName looks up a built-in profile. It accepts both the processor
// and the bridge generation names.
func ProfileByName(name string) (Profile, bool) {
	switch name {
	case "power9", "p9", "phb4":
		return Power9, true
	case "power10", "p10", "phb5":
		return Power10, true
	default:
		return Profile{}, false
	}
}
