package tap

import (
	"fmt"
	"strconv"
	"time"
)

// Parse is the extension point for custom value types. A type
// implementing Parse decodes itself from a command line token.
// FromString must not leave the receiver partially mutated on failure.
// Example returns a sample input shown in help text.
type Parse interface {
	FromString(s string) error
	Example() string
}

// decodeValue converts a token into the destination type. The decode
// is transactional: on failure the destination is untouched. Booleans
// are never decoded from text, SwitchArg covers them.
func decodeValue[T any](token string, dst *T) error {
	switch p := any(dst).(type) {
	case Parse:
		return p.FromString(token)
	case *string:
		*p = token
	case *bool:
		panic(panicBoolValue)
	case *int:
		v, err := strconv.ParseInt(token, 0, 0)
		if err != nil {
			return err
		}
		*p = int(v)
	case *int64:
		v, err := strconv.ParseInt(token, 0, 64)
		if err != nil {
			return err
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(token, 0, 0)
		if err != nil {
			return err
		}
		*p = uint(v)
	case *uint64:
		v, err := strconv.ParseUint(token, 0, 64)
		if err != nil {
			return err
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return err
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(token)
		if err != nil {
			return err
		}
		*p = v
	default:
		// last resort, scan into a scratch value and commit on success
		var scratch T
		if _, err := fmt.Sscan(token, &scratch); err != nil {
			return err
		}
		*dst = scratch
	}
	return nil
}

// exampleFor returns the sample input of a custom Parse type, or the
// empty string for built-in types.
func exampleFor(v any) string {
	if p, ok := v.(Parse); ok {
		return p.Example()
	}
	return ""
}

// ValueArg is an argument holding a single typed value. Each
// occurrence overwrites the stored value. The storage is either
// internal (NewValueArg) or a caller-owned variable (NewVarArg); in
// both cases clones share it, like the occurrence cell.
type ValueArg[T any] struct {
	Argument
	storage    *T
	valueName  string
	checkValue func(*ValueArg[T], T) error
}

// NewValueArg creates a value argument with internal storage,
// initialized to def. Without aliases the argument is positional.
func NewValueArg[T any](description string, def T, aliases ...string) *ValueArg[T] {
	storage := def
	return NewVarArg(description, &storage, aliases...)
}

// NewVarArg creates a value argument decoding into the caller-owned
// variable. Without aliases the argument is positional. Custom Parse
// types contribute their Example as the initial value name.
func NewVarArg[T any](description string, storage *T, aliases ...string) *ValueArg[T] {
	valueName := "value"
	if example := exampleFor(storage); example != "" {
		valueName = example
	}
	return &ValueArg[T]{
		Argument:  *newArgument(description, aliases),
		storage:   storage,
		valueName: valueName,
	}
}

// ValueName assigns a human readable name for the value, used in usage
// and help text. Default is "value".
func (v *ValueArg[T]) ValueName(name string) *ValueArg[T] {
	v.valueName = name
	return v
}

// CheckValue installs a callback invoked after each decoded value is
// committed. An error returned by the callback aborts the parse.
func (v *ValueArg[T]) CheckValue(checkValue func(*ValueArg[T], T) error) *ValueArg[T] {
	v.checkValue = checkValue
	return v
}

// Value returns the currently stored value.
func (v *ValueArg[T]) Value() T {
	return *v.storage
}

// TakesValue reports true except for boolean storage, which is never
// decoded from text.
func (v *ValueArg[T]) TakesValue() bool {
	_, isBool := any(v.storage).(*bool)
	return !isBool
}

// Set without a value is programmer misuse on a valued argument.
func (v *ValueArg[T]) Set() error {
	panic(panicSetValued)
}

// SetValue decodes the token and commits it. The decode happens on a
// scratch value; a failed decode reports InvalidValueError and leaves
// the stored value untouched. On success the value is committed, the
// value check callback runs, and the occurrence is counted.
func (v *ValueArg[T]) SetValue(value string) error {
	if !v.TakesValue() {
		panic(panicBoolValue)
	}
	if err := decodeValue(value, v.storage); err != nil {
		return invalidValueErr(v, value)
	}
	if v.checkValue != nil {
		if err := v.checkValue(v, *v.storage); err != nil {
			return err
		}
	}
	return v.Argument.Set()
}

// Usage renders the alias followed by the value name, or just the
// value name for positionals ("..." appended when unbounded).
func (v *ValueArg[T]) Usage() string {
	return valueUsage(&v.Argument, v.valueName)
}

// Ident renders the aliases, or the value name for positionals.
func (v *ValueArg[T]) Ident() string {
	return valueIdent(&v.Argument, v.valueName)
}

// Clone returns an owned copy sharing the occurrence cell and the
// value storage.
func (v *ValueArg[T]) Clone() BaseArgument {
	dup := *v
	dup.Argument = v.Argument.cloneBase()
	return &dup
}

func (v *ValueArg[T]) findArguments(collector *[]Arg) {
	*collector = append(*collector, v)
}

// MultiValueArg is an argument accumulating one typed value per
// occurrence, in order. It is unbounded by default.
type MultiValueArg[T any] struct {
	Argument
	storage    *[]T
	valueName  string
	checkValue func(*MultiValueArg[T], T) error
}

// NewMultiValueArg creates a multi-value argument with internal
// storage. Without aliases the argument is positional.
func NewMultiValueArg[T any](description string, aliases ...string) *MultiValueArg[T] {
	var storage []T
	return NewMultiVarArg(description, &storage, aliases...)
}

// NewMultiVarArg creates a multi-value argument appending into the
// caller-owned slice. Without aliases the argument is positional.
func NewMultiVarArg[T any](description string, storage *[]T, aliases ...string) *MultiValueArg[T] {
	arg := newArgument(description, aliases)
	arg.max = 0
	return &MultiValueArg[T]{
		Argument:  *arg,
		storage:   storage,
		valueName: "value",
	}
}

// ValueName assigns a human readable name for the value, used in usage
// and help text. Default is "value".
func (v *MultiValueArg[T]) ValueName(name string) *MultiValueArg[T] {
	v.valueName = name
	return v
}

// CheckValue installs a callback invoked with each appended value.
func (v *MultiValueArg[T]) CheckValue(checkValue func(*MultiValueArg[T], T) error) *MultiValueArg[T] {
	v.checkValue = checkValue
	return v
}

// Value returns the accumulated values, one per occurrence.
func (v *MultiValueArg[T]) Value() []T {
	return *v.storage
}

// TakesValue reports true except for boolean storage.
func (v *MultiValueArg[T]) TakesValue() bool {
	var zero T
	_, isBool := any(zero).(bool)
	return !isBool
}

// Set without a value is programmer misuse on a valued argument.
func (v *MultiValueArg[T]) Set() error {
	panic(panicSetValued)
}

// SetValue decodes the token into a scratch value and appends it. A
// failed decode reports InvalidValueError and leaves the accumulated
// values untouched.
func (v *MultiValueArg[T]) SetValue(value string) error {
	if !v.TakesValue() {
		panic(panicBoolValue)
	}
	var scratch T
	if err := decodeValue(value, &scratch); err != nil {
		return invalidValueErr(v, value)
	}
	*v.storage = append(*v.storage, scratch)
	if v.checkValue != nil {
		if err := v.checkValue(v, scratch); err != nil {
			return err
		}
	}
	return v.Argument.Set()
}

func (v *MultiValueArg[T]) Usage() string {
	return valueUsage(&v.Argument, v.valueName)
}

func (v *MultiValueArg[T]) Ident() string {
	return valueIdent(&v.Argument, v.valueName)
}

// Clone returns an owned copy sharing the occurrence cell and the
// value storage.
func (v *MultiValueArg[T]) Clone() BaseArgument {
	dup := *v
	dup.Argument = v.Argument.cloneBase()
	return &dup
}

func (v *MultiValueArg[T]) findArguments(collector *[]Arg) {
	*collector = append(*collector, v)
}

// ConstArg acts as a switch on the command line but stores a fixed
// constant in the given variable when set. Practical for enumerations.
type ConstArg[T any] struct {
	Argument
	storage *T
	value   T
}

// NewConstArg creates a constant argument storing value into the
// caller-owned variable on every occurrence. It never takes a value,
// so at least one alias is required.
func NewConstArg[T any](description string, storage *T, value T, aliases ...string) *ConstArg[T] {
	if len(aliases) == 0 {
		panic(panicNoAlias)
	}
	return &ConstArg[T]{
		Argument: *newArgument(description, aliases),
		storage:  storage,
		value:    value,
	}
}

// Value returns the currently stored value.
func (c *ConstArg[T]) Value() T {
	return *c.storage
}

// TakesValue reports false; the constant ignores any input token.
func (c *ConstArg[T]) TakesValue() bool {
	return false
}

// Set marks the occurrence and copies the constant into storage.
func (c *ConstArg[T]) Set() error {
	if err := c.Argument.Set(); err != nil {
		return err
	}
	*c.storage = c.value
	return nil
}

// Clone returns an owned copy sharing the occurrence cell and the
// value storage.
func (c *ConstArg[T]) Clone() BaseArgument {
	dup := *c
	dup.Argument = c.Argument.cloneBase()
	return &dup
}

func (c *ConstArg[T]) findArguments(collector *[]Arg) {
	*collector = append(*collector, c)
}

// SwitchArg toggles a boolean on every occurrence; repeated
// occurrences alternate the value. It never accepts a value.
type SwitchArg struct {
	Argument
	storage *bool
}

// NewSwitchArg creates a switch with internal storage starting at
// false. At least one alias is required.
func NewSwitchArg(description string, aliases ...string) *SwitchArg {
	storage := false
	return NewSwitchVar(description, &storage, aliases...)
}

// NewSwitchVar creates a switch toggling the caller-owned variable.
// At least one alias is required.
func NewSwitchVar(description string, storage *bool, aliases ...string) *SwitchArg {
	if len(aliases) == 0 {
		panic(panicNoAlias)
	}
	return &SwitchArg{
		Argument: *newArgument(description, aliases),
		storage:  storage,
	}
}

// Value returns the current switch state.
func (s *SwitchArg) Value() bool {
	return *s.storage
}

// TakesValue reports false; switches never decode text.
func (s *SwitchArg) TakesValue() bool {
	return false
}

// Set marks the occurrence and inverts the stored boolean.
func (s *SwitchArg) Set() error {
	if err := s.Argument.Set(); err != nil {
		return err
	}
	*s.storage = !*s.storage
	return nil
}

// Clone returns an owned copy sharing the occurrence cell and the
// switch storage.
func (s *SwitchArg) Clone() BaseArgument {
	dup := *s
	dup.Argument = s.Argument.cloneBase()
	return &dup
}

func (s *SwitchArg) findArguments(collector *[]Arg) {
	*collector = append(*collector, s)
}

// valueUsage renders the usage of a value-taking argument: alias plus
// value name, or the value name alone for positionals, with "..."
// appended when an unbounded positional.
func valueUsage(a *Argument, valueName string) string {
	var usage string
	if !a.positional {
		if len(a.flags) > 0 {
			usage = DefaultSyntax.FlagPrefix + string(a.flags[0]) + " "
		} else {
			usage = DefaultSyntax.NamePrefix + a.names[0] + " "
		}
	}
	usage += valueName
	if a.positional && a.max != 1 {
		usage += "..."
	}
	return usage
}

// valueIdent renders the help-text identifier of a value-taking
// argument; positionals are identified by the value name alone.
func valueIdent(a *Argument, valueName string) string {
	if a.positional {
		return valueName
	}
	return a.Ident()
}
