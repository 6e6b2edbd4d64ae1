package tap

// ArgumentSet is a named, unordered grouping of arguments. It behaves
// like an optional Any constraint but exists for organization: the
// parser uses sets as its top-level lookup scope, the help renderer as
// sections. The flat list of contained arguments is cached and lazily
// rebuilt after mutations.
type ArgumentSet struct {
	Constraint

	name  string
	cache []Arg
	stale bool
}

// NewArgumentSet creates a named set holding clones of the given
// arguments and constraints.
func NewArgumentSet(name string, children ...BaseArgument) *ArgumentSet {
	s := &ArgumentSet{
		Constraint: Constraint{kind: Any},
		name:       name,
		stale:      true,
	}
	s.Add(children...)
	return s
}

// Name returns the name of the set.
func (s *ArgumentSet) Name() string {
	return s.name
}

// Add clones each child into the set and invalidates the cache.
func (s *ArgumentSet) Add(children ...BaseArgument) *ArgumentSet {
	s.Constraint.Add(children...)
	s.stale = true
	return s
}

// Args returns the flattened list of arguments reachable under this
// set. Clones sharing one occurrence cell count as one argument and
// are reported once.
func (s *ArgumentSet) Args() []Arg {
	if s.stale {
		var all []Arg
		s.findArguments(&all)
		seen := make(map[*cell]bool, len(all))
		s.cache = s.cache[:0]
		for _, arg := range all {
			if seen[arg.sharedCell()] {
				continue
			}
			seen[arg.sharedCell()] = true
			s.cache = append(s.cache, arg)
		}
		s.stale = false
	}
	return s.cache
}

// Clone returns an owned deep copy of the set.
func (s *ArgumentSet) Clone() BaseArgument {
	dup := &ArgumentSet{
		Constraint: s.cloneNode(),
		name:       s.name,
		stale:      true,
	}
	return dup
}
