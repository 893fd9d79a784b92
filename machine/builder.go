package machine

import (
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/pnvpec/chip"
	"github.com/sarchlab/pnvpec/datarecording"
	"github.com/sarchlab/pnvpec/monitoring"
	"github.com/sarchlab/pnvpec/sim"
)

// Builder can be used to build a machine.
type Builder struct {
	profile        chip.Profile
	numChips       int
	defaultDevices bool
	recorder       datarecording.DataRecorder
	traceAccesses  bool
	monitor        *monitoring.Monitor
	logger         *log.Logger
}

// MakeBuilder creates a builder for a single-chip POWER9 machine.
func MakeBuilder() Builder {
	return Builder{
		profile:        chip.Power9,
		numChips:       1,
		defaultDevices: true,
		logger:         log.Default(),
	}
}

// WithProfile sets the processor generation of all chips.
func (b Builder) WithProfile(p chip.Profile) Builder {
	b.profile = p
	return b
}

// WithNumChips sets the number of chips.
func (b Builder) WithNumChips(n int) Builder {
	b.numChips = n
	return b
}

// WithoutDefaultDevices makes stacks skip building their bridges.
func (b Builder) WithoutDefaultDevices() Builder {
	b.defaultDevices = false
	return b
}

// WithDataRecorder records guest errors into the recorder.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithAccessTracing also records every XSCOM access. It needs a data
// recorder.
func (b Builder) WithAccessTracing() Builder {
	b.traceAccesses = true
	return b
}

// WithMonitor registers the machine and its components with the monitor.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

// WithLogger sets the logger guest errors are reported to.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build builds the machine. Nothing is realized until Realize.
func (b Builder) Build() *Machine {
	if b.numChips <= 0 {
		log.Panicf("machine needs at least one chip, got %d", b.numChips)
	}

	if b.traceAccesses && b.recorder == nil {
		log.Panic("access tracing needs a data recorder")
	}

	m := &Machine{
		id:            xid.New().String(),
		profile:       b.profile,
		simulation:    sim.NewSimulation(),
		recorder:      b.recorder,
		monitor:       b.monitor,
		traceAccesses: b.traceAccesses,
	}

	for i := 0; i < b.numChips; i++ {
		c := chip.MakeBuilder().
			WithProfile(b.profile).
			WithChipID(uint32(i)).
			WithDefaultDevices(b.defaultDevices).
			WithLogger(b.logger).
			Build(sim.BuildNameWithIndex("", "Chip", i))

		m.chips = append(m.chips, c)
	}

	return m
}
