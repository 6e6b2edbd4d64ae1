package tap

import "unicode/utf8"

// BaseArgument is the common interface of declared arguments and
// constraint nodes. Constraint trees own clones of everything added to
// them, so the interface carries the clone operation; clones of one
// logical argument share a single occurrence cell.
type BaseArgument interface {
	// Count reports how often the argument occurred. For constraint
	// nodes it reports the number of set children.
	Count() int
	// IsSet reports whether the argument occurred at least once.
	IsSet() bool
	// Required reports whether the argument must be set.
	Required() bool
	// CheckValid reports whether all occurrence and constraint rules
	// hold after parsing.
	CheckValid() error
	// Usage renders how the argument appears on the command line.
	Usage() string
	// Clone returns an owned copy sharing the occurrence cell.
	Clone() BaseArgument

	findArguments(collector *[]Arg)
}

// Arg is the interface of declared (leaf) arguments as seen by the
// parser and by argument sets.
type Arg interface {
	BaseArgument

	Description() string
	Matches() bool
	MatchesFlag(flag rune) bool
	MatchesName(name string) bool
	CanSet() bool
	Set() error
	TakesValue() bool
	Ident() string

	sharedCell() *cell
}

// ValueAcceptor is implemented by arguments whose TakesValue reports
// true. The parser dispatches value tokens through it.
type ValueAcceptor interface {
	SetValue(value string) error
}

// cell is the mutable state shared by all clones of one logical
// argument. Constraint trees clone their children, so the occurrence
// count lives behind a pointer that every clone keeps.
type cell struct {
	count int
}

// Argument is an option identified by a flag ("-a") or a name
// ("--alpha"). Value-typed arguments may also be positional. An
// Argument is optional by default and allowed to occur once; use
// SetRequired, Min, Max and Many to change that.
//
// Arguments and the trees built from them are not safe for concurrent
// use; a parse is a single caller-serialized call.
type Argument struct {
	flags       []rune
	names       []string
	positional  bool
	description string
	required    bool
	min, max    int
	count       *cell
	checkFunc   func(*Argument) error
}

// NewArgument creates an argument with the given description,
// identified by the given aliases. A single-character alias is a flag,
// a longer alias is a name. At least one alias is required: a plain
// Argument takes no value and therefore cannot be positional.
func NewArgument(description string, aliases ...string) *Argument {
	if len(aliases) == 0 {
		panic(panicNoAlias)
	}
	return newArgument(description, aliases)
}

// newArgument is the construction path shared with the value-typed
// constructors, which are allowed to be positional.
func newArgument(description string, aliases []string) *Argument {
	a := &Argument{
		description: description,
		positional:  len(aliases) == 0,
		min:         1,
		max:         1,
		count:       &cell{},
	}
	a.Alias(aliases...)
	return a
}

// Alias appends identifiers to the argument. Single-character aliases
// become flags, longer ones names. Positional status is fixed at
// construction and not affected.
func (a *Argument) Alias(aliases ...string) *Argument {
	for _, alias := range aliases {
		if utf8.RuneCountInString(alias) == 1 {
			r, _ := utf8.DecodeRuneInString(alias)
			a.flags = append(a.flags, r)
		} else {
			a.names = append(a.names, alias)
		}
	}
	return a
}

// Description returns the help text of the argument.
func (a *Argument) Description() string {
	return a.description
}

// Check installs a callback invoked after every occurrence. An error
// returned by the callback aborts the parse.
func (a *Argument) Check(checkFunc func(*Argument) error) *Argument {
	a.checkFunc = checkFunc
	return a
}

// SetRequired marks the argument as required or optional.
func (a *Argument) SetRequired(required bool) *Argument {
	a.required = required
	return a
}

// Required reports whether the argument must be set.
func (a *Argument) Required() bool {
	return a.required
}

// Many allows the argument to occur an arbitrary number of times, or
// restores a bounded maximum of at least one.
func (a *Argument) Many(many bool) *Argument {
	if many {
		a.max = 0
	} else if a.max < 1 {
		// a finite maximum above 1 is kept, it already bounds the count
		a.max = 1
	}
	return a
}

// Min sets the minimum number of occurrences required once the
// argument is set. Zero is programmer misuse and panics. Raising the
// minimum above a finite maximum raises the maximum along with it.
func (a *Argument) Min(min int) *Argument {
	if min == 0 {
		panic(panicZeroMin)
	}
	a.min = min
	if min > a.max && a.max != 0 {
		a.max = min
	}
	return a
}

// Max sets the maximum number of occurrences. Zero means unbounded.
func (a *Argument) Max(max int) *Argument {
	a.max = max
	return a
}

// Count reports the current occurrence count, read from the cell all
// clones of this argument share.
func (a *Argument) Count() int {
	return a.count.count
}

// IsSet reports whether the argument occurred at least once.
func (a *Argument) IsSet() bool {
	return a.Count() > 0
}

// CanSet reports whether the argument may still occur.
func (a *Argument) CanSet() bool {
	return a.max == 0 || a.count.count < a.max
}

// Set marks the argument as occurred and runs the check callback.
func (a *Argument) Set() error {
	a.count.count++
	return a.check()
}

func (a *Argument) check() error {
	if a.checkFunc != nil {
		return a.checkFunc(a)
	}
	return nil
}

// TakesValue reports whether the argument requires a value when it
// occurs. This is a fixed property of the argument kind, not related
// to the occurrence count.
func (a *Argument) TakesValue() bool {
	return false
}

// Matches reports whether the argument matches as positional.
func (a *Argument) Matches() bool {
	return a.positional
}

// MatchesFlag reports whether any flag alias equals the given flag.
func (a *Argument) MatchesFlag(flag rune) bool {
	for _, f := range a.flags {
		if f == flag {
			return true
		}
	}
	return false
}

// MatchesName reports whether any name alias equals the given name.
func (a *Argument) MatchesName(name string) bool {
	for _, n := range a.names {
		if n == name {
			return true
		}
	}
	return false
}

// CheckValid verifies the occurrence count against the declared
// bounds. An unset optional argument is valid.
func (a *Argument) CheckValid() error {
	c := a.Count()
	if c == 0 {
		if a.required {
			return countMismatchErr(a, c, 1)
		}
		return nil
	}
	if c < a.min {
		return countMismatchErr(a, c, a.min)
	}
	if a.max != 0 && c > a.max {
		return countMismatchErr(a, c, a.max)
	}
	return nil
}

// Usage renders the first flag or name alias with its prefix. A pure
// positional Argument has no rendering of its own; value-typed
// arguments override this.
func (a *Argument) Usage() string {
	if len(a.flags) > 0 {
		// first flag only, aliases generally not needed
		return DefaultSyntax.FlagPrefix + string(a.flags[0])
	}
	if len(a.names) > 0 {
		return DefaultSyntax.NamePrefix + a.names[0]
	}
	panic(panicBaseUsage)
}

// Ident renders the first flag and first name, used as the left column
// of help text.
func (a *Argument) Ident() string {
	var ident string
	if len(a.flags) > 0 {
		ident = DefaultSyntax.FlagPrefix + string(a.flags[0])
	}
	if len(a.names) > 0 {
		if ident != "" {
			ident += ", "
		}
		ident += DefaultSyntax.NamePrefix + a.names[0]
	}
	return ident
}

// Clone returns an owned copy. The copy carries its own alias lists
// but shares the occurrence cell, so setting one clone is observed by
// all of them.
func (a *Argument) Clone() BaseArgument {
	dup := a.cloneBase()
	return &dup
}

func (a *Argument) cloneBase() Argument {
	dup := *a
	dup.flags = append([]rune(nil), a.flags...)
	dup.names = append([]string(nil), a.names...)
	return dup
}

func (a *Argument) findArguments(collector *[]Arg) {
	*collector = append(*collector, a)
}

func (a *Argument) sharedCell() *cell {
	return a.count
}
