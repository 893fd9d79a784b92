package sim

import (
	"sort"
)

// A Simulation keeps track of the components that make up a simulated
// machine, so that tools can find them by name.
type Simulation struct {
	components []Component
	byName     map[string]Component
}

// NewSimulation creates a new simulation.
func NewSimulation() *Simulation {
	return &Simulation{
		byName: make(map[string]Component),
	}
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c Component) {
	name := c.Name()
	if _, found := s.byName[name]; found {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.byName[name] = c
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) (Component, bool) {
	c, found := s.byName[name]
	return c, found
}

// Components returns the registered components in registration order.
func (s *Simulation) Components() []Component {
	out := make([]Component, len(s.components))
	copy(out, s.components)

	return out
}

// ComponentNames returns the names of all components, sorted.
func (s *Simulation) ComponentNames() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}
