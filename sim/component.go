package sim

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a piece of simulated hardware that becomes usable once it is
// realized. Realize is called once by the owner of the component.
type Component interface {
	Named
	Hookable

	Realize() error
	Realized() bool
}

// ComponentBase provides the name, the hooks, and the realized flag that
// components share.
type ComponentBase struct {
	*HookableBase

	name     string
	realized bool
}

// NewComponentBase creates a new ComponentBase. The name must follow the
// hierarchical naming convention.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.HookableBase = NewHookableBase()
	c.name = name

	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// Realized returns true after MarkRealized has been called.
func (c *ComponentBase) Realized() bool {
	return c.realized
}

// MarkRealized records that the component finished realizing.
func (c *ComponentBase) MarkRealized() {
	c.realized = true
}
