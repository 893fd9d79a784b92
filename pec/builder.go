package pec

import (
	"log"

	"github.com/sarchlab/pnvpec/sim"
)

// Builder constructs a Controller either from a Spec or per-field setters.
type Builder struct {
	spec    Spec
	profile Profile
	chip    Chip
	bus     Bus
	bridges BridgeFactory
	logger  *log.Logger
}

// MakeBuilder returns a new Builder for a POWER9 PEC with DefaultSpec.
func MakeBuilder() Builder {
	return Builder{
		spec:    DefaultSpec(),
		profile: Phb4Profile,
		logger:  log.Default(),
	}
}

// WithSpec sets the identity of the PEC.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithChipID sets the chip identifier.
func (b Builder) WithChipID(chipID uint32) Builder {
	b.spec.ChipID = chipID
	return b
}

// WithIndex sets the index of the PEC in its chip.
func (b Builder) WithIndex(index uint32) Builder {
	b.spec.Index = index
	return b
}

// WithDefaultDevices sets whether stacks build their bridges.
func (b Builder) WithDefaultDevices(enabled bool) Builder {
	b.spec.DefaultDevices = enabled
	return b
}

// WithProfile sets the generation profile.
func (b Builder) WithProfile(p Profile) Builder {
	b.profile = p
	return b
}

// WithChip sets the chip that owns the PEC.
func (b Builder) WithChip(chip Chip) Builder {
	b.chip = chip
	return b
}

// WithBus sets the bus the register windows are mapped on.
func (b Builder) WithBus(bus Bus) Builder {
	b.bus = bus
	return b
}

// WithBridgeFactory sets the factory stacks use to build their bridges.
func (b Builder) WithBridgeFactory(f BridgeFactory) Builder {
	b.bridges = f
	return b
}

// WithLogger sets where guest errors are logged.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build creates the PEC with all of its stack slots. Nothing is validated
// against the chip or mapped until Realize.
func (b Builder) Build(name string) *Controller {
	b.mustBeComplete()

	c := &Controller{
		ComponentBase: sim.NewComponentBase(name),
		Spec:          b.spec,
		profile:       b.profile,
		chip:          b.chip,
		bus:           b.bus,
		bridges:       b.bridges,
		logger:        b.logger,
	}

	for i := range c.stacks {
		c.stacks[i] = Stack{
			name:    sim.BuildNameWithIndex(name, "Stack", i),
			stackNo: i,
		}
	}

	return c
}

func (b Builder) mustBeComplete() {
	if b.chip == nil {
		log.Panic("pec: chip is not set")
	}

	if b.bus == nil {
		log.Panic("pec: bus is not set")
	}

	if b.spec.DefaultDevices && b.bridges == nil {
		log.Panic("pec: default devices need a bridge factory")
	}

	if b.logger == nil {
		log.Panic("pec: logger is not set")
	}

	if err := b.profile.Validate(); err != nil {
		log.Panic(err)
	}
}
