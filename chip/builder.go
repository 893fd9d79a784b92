package chip

import (
	"log"

	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/phb"
	"github.com/sarchlab/pnvpec/sim"
	"github.com/sarchlab/pnvpec/xscom"
)

// Builder can build chips.
type Builder struct {
	spec    Spec
	profile Profile
	logger  *log.Logger
}

// MakeBuilder returns a Builder for a POWER9 chip.
func MakeBuilder() Builder {
	return Builder{
		spec:    DefaultSpec(),
		profile: Power9,
		logger:  log.Default(),
	}
}

// WithSpec sets the identity of the chip.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithChipID sets the chip identifier.
func (b Builder) WithChipID(id uint32) Builder {
	b.spec.ChipID = id
	return b
}

// WithDefaultDevices sets whether PEC stacks build their bridges.
func (b Builder) WithDefaultDevices(enabled bool) Builder {
	b.spec.DefaultDevices = enabled
	return b
}

// WithProfile sets the processor generation.
func (b Builder) WithProfile(p Profile) Builder {
	b.profile = p
	return b
}

// WithLogger sets the logger the PECs report guest errors to.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build creates a chip with its bus and one PEC per index the chip supports.
func (b Builder) Build(name string) *Chip {
	if b.profile.NumPECs <= 0 || b.profile.XscomBase == nil {
		log.Panicf("chip profile %q is incomplete", b.profile.Name)
	}

	c := &Chip{
		ComponentBase: sim.NewComponentBase(name),
		Spec:          b.spec,
		profile:       b.profile,
		bus:           xscom.NewBus(sim.BuildName(name, "XSCOM")),
		bridges:       phb.NewFactory(b.profile.PEC.NumBridges()),
	}

	for i := 0; i < b.profile.NumPECs; i++ {
		p := pec.MakeBuilder().
			WithProfile(b.profile.PEC).
			WithChipID(b.spec.ChipID).
			WithIndex(uint32(i)).
			WithDefaultDevices(b.spec.DefaultDevices).
			WithChip(c).
			WithBus(c.bus).
			WithBridgeFactory(c.bridges).
			WithLogger(b.logger).
			Build(sim.BuildNameWithIndex(name, "PEC", i))

		c.pecs = append(c.pecs, p)
	}

	return c
}
