package phb

import (
	"github.com/sarchlab/pnvpec/pec"
	"github.com/sarchlab/pnvpec/sim"
)

// Builder can build bridges.
type Builder struct {
	spec  Spec
	stack pec.StackRef
}

// MakeBuilder returns a Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithSpec sets the bridge identity.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithStack sets the stack that owns the bridge.
func (b Builder) WithStack(ref pec.StackRef) Builder {
	b.stack = ref
	return b
}

// Build creates a bridge. The identity is checked by Realize.
func (b Builder) Build(name string) *Bridge {
	return &Bridge{
		ComponentBase: sim.NewComponentBase(name),
		Spec:          b.spec,
		stack:         b.stack,
	}
}
