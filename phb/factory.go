package phb

import "github.com/sarchlab/pnvpec/pec"

// Factory builds the bridges of one chip and keeps track of them.
type Factory struct {
	maxIndex uint32
	bridges  []*Bridge
}

// NewFactory creates a factory for a chip that supports maxIndex bridges.
func NewFactory(maxIndex uint32) *Factory {
	return &Factory{maxIndex: maxIndex}
}

// NewBridge builds a bridge for a stack.
func (f *Factory) NewBridge(cfg pec.BridgeConfig) pec.Bridge {
	b := MakeBuilder().
		WithSpec(Spec{
			ChipID:   cfg.ChipID,
			Index:    cfg.Index,
			Version:  cfg.Version,
			MaxIndex: f.maxIndex,
		}).
		WithStack(cfg.Stack).
		Build(cfg.Name)

	f.bridges = append(f.bridges, b)

	return b
}

// Bridges returns the bridges that realized, in build order.
func (f *Factory) Bridges() []*Bridge {
	var out []*Bridge

	for _, b := range f.bridges {
		if b.Realized() {
			out = append(out, b)
		}
	}

	return out
}
