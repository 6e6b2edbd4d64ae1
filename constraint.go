package tap

// ConstraintKind enumerates the satisfaction policies a Constraint can
// enforce over its children.
type ConstraintKind int

const (
	// None: no child may be set.
	None ConstraintKind = iota
	// One: exactly one child must be set (when the node is required;
	// an optional One node also accepts zero set children).
	One
	// Any: at least one child must be set if the node is required;
	// required children must be set regardless.
	Any
	// All: all children must be set, or none when the node is
	// optional.
	All
	// Implies: every set child requires its successor to be set.
	Implies
)

// joinString returns the token placed between child usages.
func (k ConstraintKind) joinString() string {
	switch k {
	case One:
		return " | "
	case Implies:
		return " -> "
	default:
		return " "
	}
}

// constraintNode lets usage composition and validation recognize
// nested nodes behind the BaseArgument interface.
type constraintNode interface {
	Kind() ConstraintKind
	Size() int
}

// Constraint is a combinator over a list of children, each either a
// declared argument or another Constraint. Children are cloned on
// insertion, so a constraint tree is a forest of owned copies; clones
// of one logical argument still share its occurrence cell. The usage
// string is assembled incrementally as children are added and is
// immutable afterwards.
type Constraint struct {
	kind     ConstraintKind
	required bool
	children []BaseArgument
	usage    string
}

// NewConstraint creates a constraint of the given kind holding clones
// of the given children.
func NewConstraint(kind ConstraintKind, children ...BaseArgument) *Constraint {
	c := &Constraint{kind: kind}
	c.Add(children...)
	return c
}

// Add clones each child, appends it and extends the usage string.
func (c *Constraint) Add(children ...BaseArgument) *Constraint {
	for _, child := range children {
		dup := child.Clone()
		if len(c.children) > 0 {
			c.usage += c.kind.joinString()
		}
		c.usage += c.childUsage(dup)
		c.children = append(c.children, dup)
	}
	return c
}

// Kind returns the constraint kind.
func (c *Constraint) Kind() ConstraintKind {
	return c.kind
}

// Size returns the number of children.
func (c *Constraint) Size() int {
	return len(c.children)
}

// SetRequired marks the constraint as required or optional.
func (c *Constraint) SetRequired(required bool) *Constraint {
	c.required = required
	return c
}

// Required reports whether the constraint must be satisfied by at
// least one set child.
func (c *Constraint) Required() bool {
	return c.required
}

// Count reports the number of children that are set.
func (c *Constraint) Count() int {
	n := 0
	for _, child := range c.children {
		if child.IsSet() {
			n++
		}
	}
	return n
}

// IsSet reports whether any child is set.
func (c *Constraint) IsSet() bool {
	return c.Count() > 0
}

// Usage returns the precomputed usage string.
func (c *Constraint) Usage() string {
	return c.usage
}

// CheckValid evaluates the kind-specific satisfaction policy, walking
// children left to right.
func (c *Constraint) CheckValid() error {
	switch c.kind {
	case None:
		return c.checkNone()
	case One:
		return c.checkOne()
	case Any:
		return c.checkAny()
	case All:
		return c.checkAll()
	case Implies:
		return c.checkImplies()
	}
	return nil
}

func (c *Constraint) checkNone() error {
	var offending []BaseArgument
	for _, child := range c.children {
		if err := child.CheckValid(); err != nil {
			return err
		}
		if child.IsSet() {
			offending = append(offending, child)
		}
	}
	if len(offending) == 1 {
		return &ConstraintError{Reason: "cannot set the argument ", Args: offending}
	}
	if len(offending) > 1 {
		return &ConstraintError{Reason: "not allowed to set the following arguments: ", Args: offending}
	}
	return nil
}

func (c *Constraint) checkOne() error {
	set := 0
	for _, child := range c.children {
		if !child.IsSet() {
			continue
		}
		if err := child.CheckValid(); err != nil {
			return err
		}
		set++
	}
	if set > 1 || (set == 0 && c.required) {
		return &ConstraintError{Reason: "must set exactly one argument from ", Args: c.children}
	}
	return nil
}

// checkAny validates set children recursively, collects required but
// unset leaf children into one error, recurses into required unset
// nodes so they report their own policy, and finally enforces the
// at-least-one rule when the node itself is required.
func (c *Constraint) checkAny() error {
	set := 0
	var missing []BaseArgument
	for _, child := range c.children {
		if child.IsSet() {
			if err := child.CheckValid(); err != nil {
				return err
			}
			set++
			continue
		}
		if !child.Required() {
			continue
		}
		if _, ok := child.(constraintNode); ok {
			if err := child.CheckValid(); err != nil {
				return err
			}
			continue
		}
		missing = append(missing, child)
	}
	if len(missing) > 0 {
		return &ConstraintError{Reason: "the following required arguments are missing: ", Args: missing}
	}
	if set == 0 && c.required {
		return &ConstraintError{Reason: "at least one of the following arguments must be set ", Args: c.children}
	}
	return nil
}

func (c *Constraint) checkAll() error {
	set := 0
	var unset []BaseArgument
	for _, child := range c.children {
		if child.IsSet() {
			if err := child.CheckValid(); err != nil {
				return err
			}
			set++
		} else {
			unset = append(unset, child)
		}
	}
	if set < len(c.children) && (set != 0 || c.required) {
		return &ConstraintError{Reason: "the following arguments are missing ", Args: unset}
	}
	return nil
}

func (c *Constraint) checkImplies() error {
	for _, child := range c.children {
		if !child.IsSet() {
			continue
		}
		if err := child.CheckValid(); err != nil {
			return err
		}
	}
	for i := 0; i+1 < len(c.children); i++ {
		if c.children[i].IsSet() && !c.children[i+1].IsSet() {
			return &ConstraintError{
				Reason: "the argument " + c.children[i].Usage() + " also requires ",
				Args:   []BaseArgument{c.children[i+1]},
			}
		}
	}
	return nil
}

// childUsage renders one child for the usage string. Optional children
// wrap themselves in brackets inside an Any context; children needing
// disambiguation wrap themselves in parentheses.
func (c *Constraint) childUsage(child BaseArgument) string {
	sub, nested := child.(constraintNode)
	if !nested {
		switch {
		case c.kind == None:
			return "!" + child.Usage()
		case c.kind == Any && !child.Required():
			return "[ " + child.Usage() + " ]"
		default:
			return child.Usage()
		}
	}
	if c.kind == None {
		if sub.Size() > 0 {
			return "!( " + child.Usage() + " )"
		}
		return "!" + child.Usage()
	}
	paren := c.kind == One ||
		(c.kind == Any && sub.Kind() != Any) ||
		((c.kind == All || c.kind == Implies) && sub.Kind() == One)
	if !child.Required() && c.kind == Any && sub.Kind() != Any {
		return "[ " + child.Usage() + " ]"
	}
	if paren && sub.Size() > 0 {
		return "( " + child.Usage() + " )"
	}
	return child.Usage()
}

// Clone returns an owned deep copy of the node; leaf state stays
// shared through the children's own clones.
func (c *Constraint) Clone() BaseArgument {
	dup := c.cloneNode()
	return &dup
}

func (c *Constraint) cloneNode() Constraint {
	dup := Constraint{kind: c.kind, required: c.required, usage: c.usage}
	dup.children = make([]BaseArgument, 0, len(c.children))
	for _, child := range c.children {
		dup.children = append(dup.children, child.Clone())
	}
	return dup
}

func (c *Constraint) findArguments(collector *[]Arg) {
	for _, child := range c.children {
		child.findArguments(collector)
	}
}
