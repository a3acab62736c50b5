package core

// Universe defines the minimal contract a Life engine must implement.
type Universe interface {
	Name() string
	Step(n uint64)
	Points() []Point
	Population() uint64
	Generation() uint64
}

// Factory constructs a Universe holding the given live cells, using an
// optional configuration map.
type Factory func(cfg map[string]string, points []Point) Universe

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}
